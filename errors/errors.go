package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // value to bits
	PhaseDecode   Phase = "decode"   // bits to value
	PhaseValidate Phase = "validate" // value checks outside a codec pass
)

// Kind categorizes the error
type Kind string

const (
	KindUnderflow       Kind = "underflow"
	KindOutOfRange      Kind = "out_of_range"
	KindInvalidChoice   Kind = "invalid_choice"
	KindSizeBound       Kind = "size_bound"
	KindNotInitialized  Kind = "not_initialized"
	KindInvalidChar     Kind = "invalid_char"
	KindUnsupported     Kind = "unsupported"
	KindOverflow        Kind = "overflow"
	KindInvalidArgument Kind = "invalid_argument"
	KindDepthExceeded   Kind = "depth_exceeded"
	KindTrailingData    Kind = "trailing_data"
	KindInvalidData     Kind = "invalid_data"
)

// Error is the structured error type used by the codec packages
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // ASN.1 type, e.g. "INTEGER (0..7)"
	Detail string
	Path   []string
	BitPos int // stream offset in bits, -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.BitPos >= 0 {
		fmt.Fprintf(&b, " (bit %d)", e.BitPos)
	}

	if e.Type != "" {
		b.WriteString(": ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			BitPos: -1,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the ASN.1 type description
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// At sets the bit position
func (b *Builder) At(bitPos int) *Builder {
	b.err.BitPos = bitPos
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Underflow creates an error for a read past the end of the input
func Underflow(bitPos, want, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnderflow,
		BitPos: bitPos,
		Detail: fmt.Sprintf("need %d bits, %d remaining", want, have),
		Value:  want,
	}
}

// OutOfRange creates an error for a number outside its declared bounds
func OutOfRange(phase Phase, value any, lb, ub any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		BitPos: -1,
		Type:   fmt.Sprintf("(%v..%v)", lb, ub),
		Detail: fmt.Sprintf("value %v outside %v..%v", value, lb, ub),
		Value:  value,
	}
}

// InvalidChoice creates an error for a choice index outside a closed tag space
func InvalidChoice(phase Phase, index, count int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidChoice,
		BitPos: -1,
		Type:   "CHOICE",
		Detail: fmt.Sprintf("alternative %d out of range (%d alternatives)", index, count),
		Value:  index,
	}
}

// SizeBound creates an error for a length outside its SIZE constraint
func SizeBound(phase Phase, n int, lb int, ub string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeBound,
		BitPos: -1,
		Type:   fmt.Sprintf("SIZE (%d..%s)", lb, ub),
		Detail: fmt.Sprintf("length %d outside %d..%s", n, lb, ub),
		Value:  n,
	}
}

// NotInitialized creates an error for a value that cannot be encoded because
// nothing was set, such as a CHOICE without an active alternative
func NotInitialized(typ string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindNotInitialized,
		BitPos: -1,
		Type:   typ,
		Detail: "no value set",
	}
}

// InvalidChar creates an error for a character outside a string's alphabet
func InvalidChar(phase Phase, typ string, c rune, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidChar,
		BitPos: -1,
		Type:   typ,
		Detail: fmt.Sprintf("character %q at index %d not permitted", c, index),
		Value:  c,
	}
}

// Unsupported creates an unsupported construct error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		BitPos: -1,
		Detail: what,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		BitPos: -1,
		Type:   target,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// InvalidArgument creates an error for a caller mistake such as a bad bit count
func InvalidArgument(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		BitPos: -1,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// DepthExceeded creates an error for nesting deeper than the configured limit
func DepthExceeded(limit int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindDepthExceeded,
		BitPos: -1,
		Detail: fmt.Sprintf("nesting deeper than %d", limit),
		Value:  limit,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		BitPos: -1,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		BitPos: -1,
		Detail: detail,
		Cause:  cause,
	}
}

// WithField prepends a field name to the path of a structured error.
// Other errors are returned unchanged. A nil error stays nil.
func WithField(err error, name string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	path := make([]string, 0, len(e.Path)+1)
	path = append(path, name)
	e.Path = append(path, e.Path...)
	return err
}

// KindOf returns the Kind of a structured error, or "" for other errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
