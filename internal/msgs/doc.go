// Package msgs is a small hand-written schema in the style of the RAN
// application protocols. It exercises the per package the way generated
// schema code does and gives cmd/perdump something to decode.
//
// Module definitions, abridged:
//
//	Criticality ::= ENUMERATED { reject, ignore, notify }
//
//	Cause ::= CHOICE {
//		radioNetwork  CauseRadioNetwork,
//		transport     CauseTransport,
//		...,
//		misc          CauseMisc
//	}
//
//	ServedCell ::= SEQUENCE {
//		plmn      PLMNIdentity,
//		cellId    NRCellIdentity,
//		tac       TAC                                  OPTIONAL,
//		name      PrintableString (SIZE (1..150))      OPTIONAL,
//		...,
//		[[ band   INTEGER (1..1024) ]],
//		[[ barred BOOLEAN,
//		   neighbours SEQUENCE (SIZE (1..16)) OF NRCellIdentity OPTIONAL ]]
//	}
//
//	SetupRequest ::= SEQUENCE {
//		transactionId  INTEGER (0..255),
//		nodeId         INTEGER (0..4294967295),
//		nodeName       UTF8String                                 OPTIONAL,
//		servedCells    SEQUENCE (SIZE (1..16)) OF ServedCell,
//		criticality    Criticality                                DEFAULT reject,
//		...
//	}
//
//	ErrorIndication ::= SEQUENCE {
//		transactionId  INTEGER (0..255)  OPTIONAL,
//		cause          Cause             OPTIONAL,
//		criticality    Criticality       OPTIONAL,
//		...
//	}
//
//	Condition ::= SEQUENCE {
//		test   TestCondition,
//		value  INTEGER     OPTIONAL,
//		and    Condition   OPTIONAL,
//		...
//	}
package msgs
