// Command greenlight is the CLI for the content quality gate pipeline: it
// imports production briefs, runs the seven quality gates, moves productions
// through the publication lifecycle, and inspects audit history.
package main
