// Package records models the tabular person data the matching pipeline
// consumes: immutable tables of rows indexed by a unique string identifier,
// with dynamically typed field values.
//
// Tables are owned by the external standardization layer; the pipeline treats
// them as read-only. Construction validates the identifier field up front and
// fails with errs.ErrConfiguration on missing or duplicated identifiers.
// There is no mutation surface after construction, so derived results can
// never be corrupted by callers holding a table reference.
package records
