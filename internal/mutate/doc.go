// Package mutate stamps an invalidation watermark onto outgoing documents.
//
// Three interchangeable strategies exist, tried in fixed priority order by
// [Chain]: external office automation, programmatic stamping via document
// object libraries, and a minimal in-place annotation. The first strategy
// that completes wins; when all three fail the caller records the failure
// as data and continues, because watermarking must never block archiving.
package mutate
