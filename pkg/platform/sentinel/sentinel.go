package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Data sources and stores return these
// (optionally wrapped) so the resolver and dispatcher can branch on the fact
// without knowing which backend produced it.
//
// - ErrNotFound: the loan/subscription/watermark does not exist at the source.
//   A resolution miss is expected and never logged as an error.
// - ErrUnavailable: transient I/O fault (indexer outage, node timeout). Retried
//   by the caller or the scheduler, never by the layer that produced it.
// - ErrMalformed: the input or record shape cannot be decoded. Dropped and
//   reported, never retried.
// - ErrInvalidRecord: a structurally invalid resolved record (zero loan-asset
//   address). The resolver demotes this to a plain miss; partial data is worse
//   than no data for downstream notification correctness.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("unavailable")
	ErrMalformed     = errors.New("malformed")
	ErrInvalidRecord = errors.New("invalid record")
)
