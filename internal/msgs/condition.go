package msgs

import (
	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

var conditionSeq = per.Sequence{Extensible: true}

// Condition is a chain of tests joined by logical AND, as used in event
// trigger definitions.
type Condition struct {
	Test  TestCondition
	Value *int64
	And   per.Box[Condition]
}

// Clone returns a deep copy of c.
func (c Condition) Clone() Condition {
	out := Condition{Test: c.Test, And: c.And.Clone()}
	if c.Value != nil {
		v := *c.Value
		out.Value = &v
	}
	return out
}

// Len returns the number of tests in the chain.
func (c *Condition) Len() int {
	n := 0
	for ; c != nil; c = c.And.Get() {
		n++
	}
	return n
}

// EncodePER implements per.Marshaler.
func (c *Condition) EncodePER(w *bitstream.Writer) error {
	if err := conditionSeq.EncodePreamble(w, false, c.Value != nil, c.And.Present()); err != nil {
		return err
	}
	if err := per.WriteEnumerated(w, int(c.Test), testConditionEnum); err != nil {
		return errors.WithField(err, "test")
	}
	if c.Value != nil {
		if err := per.WriteInteger(w, *c.Value, per.Unconstrained()); err != nil {
			return errors.WithField(err, "value")
		}
	}
	if next := c.And.Get(); next != nil {
		if err := next.EncodePER(w); err != nil {
			return errors.WithField(err, "and")
		}
	}
	return nil
}

// DecodePER implements per.Unmarshaler. Nesting counts against the
// reader's depth limit.
func (c *Condition) DecodePER(r *bitstream.Reader) error {
	*c = Condition{}
	pre, err := conditionSeq.DecodePreamble(r, 2)
	if err != nil {
		return err
	}
	t, err := per.ReadEnumerated(r, testConditionEnum)
	if err != nil {
		return errors.WithField(err, "test")
	}
	c.Test = TestCondition(t)
	if pre.Present(0) {
		v, err := per.ReadInteger(r, per.Unconstrained())
		if err != nil {
			return errors.WithField(err, "value")
		}
		c.Value = &v
	}
	if pre.Present(1) {
		if err := c.And.DecodeWith(r, (*Condition).DecodePER); err != nil {
			return errors.WithField(err, "and")
		}
	}
	if pre.Extended {
		return per.DecodeExtensions(r)
	}
	return nil
}

func (c *Condition) MarshalYAML() (any, error) {
	var out []map[string]any
	for n := c; n != nil; n = n.And.Get() {
		m := map[string]any{"test": n.Test.String()}
		if n.Value != nil {
			m["value"] = *n.Value
		}
		out = append(out, m)
	}
	return out, nil
}
