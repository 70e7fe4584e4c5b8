package msgs

import (
	"strconv"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

func enumName(names []string, v int) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return "unknown(" + strconv.Itoa(v) + ")"
}

func parseEnum(typ string, names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, errors.New(errors.PhaseValidate, errors.KindInvalidArgument).
		Type(typ).
		Value(s).
		Detail("unknown option %q", s).
		Build()
}

// Criticality tells the receiver how to react to an IE it does not
// comprehend.
type Criticality uint8

const (
	CriticalityReject Criticality = iota
	CriticalityIgnore
	CriticalityNotify
)

var criticalityNames = []string{"reject", "ignore", "notify"}

var criticalityEnum = per.Enumerated{Root: len(criticalityNames)}

func (c Criticality) String() string { return enumName(criticalityNames, int(c)) }

func (c Criticality) MarshalYAML() (any, error) { return c.String(), nil }

// ParseCriticality returns the Criticality named s.
func ParseCriticality(s string) (Criticality, error) {
	v, err := parseEnum("Criticality", criticalityNames, s)
	return Criticality(v), err
}

func (c Criticality) encode(w *bitstream.Writer) error {
	return per.WriteEnumerated(w, int(c), criticalityEnum)
}

func decodeCriticality(r *bitstream.Reader) (Criticality, error) {
	v, err := per.ReadEnumerated(r, criticalityEnum)
	return Criticality(v), err
}

// CauseRadioNetwork lists radio network layer causes. Values beyond the
// known options can arrive from newer peers and are kept as is.
//
// The extensible enumerations below are 32 bits wide so that any ordinal
// per.ReadEnumerated can return survives a decode and re-encode unchanged.
type CauseRadioNetwork uint32

const (
	RadioNetworkUnspecified CauseRadioNetwork = iota
	RadioNetworkRLFailureRLC
	RadioNetworkRANFunctionIDInvalid
	RadioNetworkHandoverDesirable
	RadioNetworkLoadBalancing
	// extension
	RadioNetworkCellNotAvailable
)

var radioNetworkNames = []string{
	"unspecified",
	"rl-failure-rlc",
	"ran-function-id-invalid",
	"handover-desirable",
	"load-balancing",
	"cell-not-available",
}

var radioNetworkEnum = per.Enumerated{Root: 5, Extensions: 1, Extensible: true}

func (c CauseRadioNetwork) String() string { return enumName(radioNetworkNames, int(c)) }

func (c CauseRadioNetwork) MarshalYAML() (any, error) { return c.String(), nil }

// Known reports whether c is an option of this schema revision.
func (c CauseRadioNetwork) Known() bool { return radioNetworkEnum.Known(int(c)) }

// ParseCauseRadioNetwork returns the CauseRadioNetwork named s.
func ParseCauseRadioNetwork(s string) (CauseRadioNetwork, error) {
	v, err := parseEnum("CauseRadioNetwork", radioNetworkNames, s)
	return CauseRadioNetwork(v), err
}

// CauseTransport lists transport layer causes.
type CauseTransport uint32

const (
	TransportUnspecified CauseTransport = iota
	TransportResourceUnavailable
)

var transportNames = []string{"unspecified", "transport-resource-unavailable"}

var transportEnum = per.Enumerated{Root: 2, Extensible: true}

func (c CauseTransport) String() string { return enumName(transportNames, int(c)) }

func (c CauseTransport) MarshalYAML() (any, error) { return c.String(), nil }

// Known reports whether c is an option of this schema revision.
func (c CauseTransport) Known() bool { return transportEnum.Known(int(c)) }

// CauseMisc lists causes outside the radio network and transport layers.
type CauseMisc uint32

const (
	MiscControlProcessingOverload CauseMisc = iota
	MiscHardwareFailure
	MiscOMIntervention
	MiscUnspecified
)

var miscNames = []string{
	"control-processing-overload",
	"hardware-failure",
	"om-intervention",
	"unspecified",
}

var miscEnum = per.Enumerated{Root: 4, Extensible: true}

func (c CauseMisc) String() string { return enumName(miscNames, int(c)) }

func (c CauseMisc) MarshalYAML() (any, error) { return c.String(), nil }

// Known reports whether c is an option of this schema revision.
func (c CauseMisc) Known() bool { return miscEnum.Known(int(c)) }

// TestCondition is the comparison a Condition applies.
type TestCondition uint32

const (
	TestEqual TestCondition = iota
	TestGreaterThan
	TestLessThan
	TestContains
	TestPresent
)

var testConditionNames = []string{"equal", "greaterthan", "lessthan", "contains", "present"}

var testConditionEnum = per.Enumerated{Root: len(testConditionNames), Extensible: true}

func (c TestCondition) String() string { return enumName(testConditionNames, int(c)) }

func (c TestCondition) MarshalYAML() (any, error) { return c.String(), nil }

// Known reports whether c is a comparison this schema revision defines.
func (c TestCondition) Known() bool { return testConditionEnum.Known(int(c)) }
