// Package blocking generates candidate record pairs with the sorted
// neighbourhood method, cutting the quadratic pair space down to pairs that
// share (or nearly share) a cheap blocking key.
//
// Records are stably sorted by the blocking key, then paired within a sliding
// window of odd width w measured over key ranks: records sharing a key sit at
// rank distance zero and always pair, so widening the window only ever adds
// candidates. A window of 1 degenerates to exact blocking: only records with
// identical keys are paired. Rows whose blocking key is absent never enter
// the window. Empty inputs produce an empty candidate list, not an error.
package blocking
