// Package knowledge provides the corpus lookup used by the truth gate.
//
// The corpus is a read-only collection of vetted reference entries. A claim
// is supported when an entry's keywords all occur in the normalized claim
// text. The file-backed implementation loads a JSON corpus at construction;
// the Corpus interface lets tests substitute failing or slow lookups.
package knowledge
