// Package bound provides the range arithmetic shared by the PER primitives:
// bit widths of constrained whole numbers, minimal octet counts and
// overflow-checked helpers.
//
// This package is internal to per.
package bound
