package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// statusLabel renders a lifecycle status for display: "ready_for_publish"
// becomes "Ready For Publish".
func statusLabel(status string) string {
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}

// gateLabel renders a gate id for display: "visual_role" becomes "Visual Role".
func gateLabel(gate string) string {
	return titleCaser.String(strings.ReplaceAll(gate, "_", " "))
}

// verdictLabel renders a verdict in upper case for scanability in tables.
func verdictLabel(verdict string) string {
	return strings.ToUpper(verdict)
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// colorVerdict wraps a verdict label in ANSI color when writing to a terminal.
func colorVerdict(verdict string, colorize bool) string {
	label := verdictLabel(verdict)
	if !colorize {
		return label
	}
	switch verdict {
	case "pass":
		return ansiGreen + label + ansiReset
	case "warn":
		return ansiYellow + label + ansiReset
	case "fail":
		return ansiRed + label + ansiReset
	default:
		return label
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
