// Package standardize prepares raw person tables for matching: it normalizes
// names, derives the comparison and blocking fields, and computes the
// first-name rarity ranks the classifier merges into the comparison matrix.
//
// Normalization uppercases, strips diacritics, and collapses whitespace so
// spelling variants of the same name compare cleanly. The blocking key is the
// concatenation of the first and last name tokens, a cheap stand-in for a
// phonetic code. Rarity ranks bucket each first name's relative frequency
// into a 0..7 log scale where 0 is rarest; rank 7 therefore doubles as the
// "no information" bucket downstream.
package standardize
