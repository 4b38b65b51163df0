// Package annotation serializes classified record pairs into the paginated
// JSON format human reviewers annotate, and reconstructs a classification
// table from reviewed files.
//
// Each file holds at most a page of pair objects under a top-level "pairs"
// key; every object carries a sequential cod, the classification, field
// snapshots of both records, the pair identifiers, and an optional aggregate
// score snapshot. Existing files are never overwritten unless the caller sets
// the explicit override flag, and the annotation directory is flock-guarded
// during export so concurrent runs cannot interleave pages.
package annotation
