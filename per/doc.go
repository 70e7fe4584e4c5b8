// Package per implements the unaligned variant of the ASN.1 Packed Encoding
// Rules (ITU-T X.691) on top of the bitstream package.
//
// The package provides the building blocks that schema code calls in field
// order: constrained and unconstrained integers, enumerations, strings and
// lists under SIZE constraints, CHOICE indices, SEQUENCE preambles and
// extension addition groups, open types and a Box for recursive types.
// Schema types implement Marshaler and Unmarshaler with these functions and
// are turned into complete encodings with Marshal and Unmarshal.
//
// # Encoding a SEQUENCE
//
//	func (v *Cell) EncodePER(w *bitstream.Writer) error {
//		ext := per.Extensions{{Present: v.Band != nil, Encode: v.encodeBand}}
//		if err := cellSeq.EncodePreamble(w, ext.Any(), v.Name != ""); err != nil {
//			return err
//		}
//		if err := per.WriteInteger(w, v.ID, cellID); err != nil {
//			return errors.WithField(err, "id")
//		}
//		// ...
//		if ext.Any() {
//			return ext.Encode(w)
//		}
//		return nil
//	}
//
// # Forward compatibility
//
// Decoders accept encodings produced by newer revisions of a schema: unknown
// extension groups are skipped by their length, unknown CHOICE alternatives
// are returned as UnknownAlternative and unknown enumeration ordinals are
// returned as is. These events are logged at debug level through Logger.
//
// # Failure model
//
// Every failure is an *errors.Error carrying the phase, the kind, the field
// path and, where known, the bit offset. Decoding never reads past its input
// and rejects lengths the remaining input cannot hold before allocating.
package per
