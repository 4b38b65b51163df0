// Package compare evaluates configured field-comparison rules over candidate
// record pairs and produces a similarity matrix.
//
// Rules are tagged variants: exact equality, normalized string similarity
// (Damerau-Levenshtein by default), and the reserved numeric and date methods
// which compute nothing yet but still hold their output column. Large pair
// lists are partitioned into contiguous, order-preserving batches of nearly
// equal size to bound memory; the resulting matrix rows follow batch
// concatenation order, which for more than one batch is a documented property
// of the output rather than a guarantee of matching the input pair order.
//
// A failure in any batch aborts the whole computation; no partial matrix is
// ever returned and nothing is retried.
package compare
