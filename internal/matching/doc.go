// Package matching sequences one matching run: blocking, batched comparison,
// score censoring, and auxiliary rank merging, for deduplication within one
// table or linkage across two.
//
// Runners are scoped to a single run and discarded afterwards; every stage
// returns an immutable result, so rerunning on changed inputs means building
// a fresh runner. Batch progress is reported through the run's slog logger,
// tagged with a generated run id.
package matching
