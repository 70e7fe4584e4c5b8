// Package asn1per is a Go implementation of the unaligned variant of the
// ASN.1 Packed Encoding Rules (ITU-T X.691), the wire format of the RAN
// application protocols.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	asn1per/
//	├── bitstream/       MSB-first bit Writer and Reader with depth accounting
//	├── per/             PER building blocks and the Marshal/Unmarshal entry points
//	├── errors/          Structured error types with phase, kind and field path
//	├── internal/msgs/   Sample schema exercising the codec as generated code would
//	└── cmd/perdump/     Decoder CLI with an interactive mode
//
// # Quick Start
//
// Encode and decode a schema value:
//
//	data, err := per.Marshal(&msgs.SetupRequest{
//	    TransactionID: 1,
//	    NodeID:        0x1234,
//	    ServedCells:   cells,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req, err := per.Decode[msgs.SetupRequest](data, per.WithStrictTrailing())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Types
//
//   - Primitives: BOOLEAN, NULL, INTEGER (constrained, semi-constrained,
//     unconstrained, extensible), ENUMERATED
//   - Strings: BIT STRING, OCTET STRING, PrintableString, VisibleString,
//     IA5String, UTF8String
//   - Compound: SEQUENCE with OPTIONAL and DEFAULT fields and extension
//     addition groups, SEQUENCE OF, CHOICE with extension alternatives
//   - Open types and recursive types through per.Box
//
// Lengths of 16K and above need fragmentation, which is not supported.
//
// # Thread Safety
//
// Writers, Readers and schema values are not safe for concurrent use. The
// per package logger is set once at startup with per.SetLogger.
package asn1per
