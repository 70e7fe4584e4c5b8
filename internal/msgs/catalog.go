package msgs

import (
	"sort"

	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

// Factory returns a fresh value of one message type.
type Factory func() per.Message

var catalog = map[string]Factory{
	"Condition":       func() per.Message { return new(Condition) },
	"ErrorIndication": func() per.Message { return new(ErrorIndication) },
	"ServedCell":      func() per.Message { return new(ServedCell) },
	"SetupRequest":    func() per.Message { return new(SetupRequest) },
}

// Names returns the catalog's message type names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a fresh value of the named message type.
func New(name string) (per.Message, error) {
	f, ok := catalog[name]
	if !ok {
		return nil, errors.New(errors.PhaseValidate, errors.KindInvalidArgument).
			Value(name).
			Detail("unknown message type %q", name).
			Build()
	}
	return f(), nil
}

// Decode decodes data as the named message type.
func Decode(name string, data []byte, opts ...per.DecodeOption) (per.Message, error) {
	m, err := New(name)
	if err != nil {
		return nil, err
	}
	if err := per.Unmarshal(data, m, opts...); err != nil {
		return nil, err
	}
	return m, nil
}
