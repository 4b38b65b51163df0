// Package warehouse persists standardized person records and reviewed pair
// labels in SQLite so matching runs can be replayed and audited.
//
// The store applies its schema on open and keeps writes batched. Before
// inserting, it checks which identifiers are already present and drops those
// rows; a failure of that history check is logged as a warning and never
// aborts the insert, since it only defeats an optimization.
package warehouse
