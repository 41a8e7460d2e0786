// Package artefact defines the five mandatory compliance documents attached
// to a production and their structural validators.
//
// Validators are pure functions over the snapshot: absence of an artefact is
// reported as a structural issue, never as an error. The Final QA gate treats
// a missing or malformed artefact as a blocking condition.
package artefact
