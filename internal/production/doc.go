// Package production defines the production record, its lifecycle status
// vocabulary, and the SQLite-backed store.
//
// A production is one generated-video unit of work. The record carries the
// script and render snapshot inputs, the five compliance artefacts as JSON
// columns, the most recent gate result set, and the accumulated quality score
// and flags. Older gate runs live only in the audit trail.
package production
