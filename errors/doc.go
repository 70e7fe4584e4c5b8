// Package errors provides structured error types for the PER codec packages.
//
// Errors are categorized by Phase (encode or decode) and Kind (error category).
// The Error type includes rich context: field path, ASN.1 type, bit position
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfRange).
//		Path("servedCell", "pci").
//		Type("INTEGER (0..1007)").
//		At(37).
//		Detail("value %d exceeds upper bound", 1010).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Underflow(pos, 12, 3)
//	err := errors.SizeBound(errors.PhaseDecode, 40, 1, "16")
//
// Composite codecs add the field they were working on with WithField, so the
// path reads outermost first:
//
//	[decode] size_bound at setupRequest.cells: SIZE (1..16) - length 40 outside 1..16
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only.
package errors
