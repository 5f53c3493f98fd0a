package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// verdict classifies one line of a run or check report.
type verdict int

const (
	verdictNote verdict = iota
	verdictMatched
	verdictReview
	verdictInvalid
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

const (
	reportLabelWidth = 18
	verdictWidth     = 7
)

func (v verdict) String() string {
	switch v {
	case verdictMatched:
		return "MATCHED"
	case verdictReview:
		return "REVIEW"
	case verdictInvalid:
		return "INVALID"
	default:
		return "NOTE"
	}
}

func (v verdict) color() string {
	switch v {
	case verdictMatched:
		return ansiGreen
	case verdictReview:
		return ansiYellow
	case verdictInvalid:
		return ansiRed
	default:
		return ansiCyan
	}
}

// leftoverVerdict is MATCHED when nothing is left over and REVIEW otherwise.
func leftoverVerdict(leftover int) verdict {
	if leftover > 0 {
		return verdictReview
	}
	return verdictMatched
}

// reportLine renders "  Label              VERDICT  message". Only the
// verdict is coloured so labels stay aligned in a terminal.
func reportLine(label string, v verdict, message string, colorize bool) string {
	tag := fmt.Sprintf("%-*s", verdictWidth, v.String())
	if colorize {
		tag = v.color() + tag + ansiReset
	}
	line := fmt.Sprintf("  %-*s %s", reportLabelWidth, label, tag)
	if message != "" {
		line += "  " + message
	}
	return strings.TrimRight(line, " ")
}

// reportHeading underlines title with a rule of the same width.
func reportHeading(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("─", len([]rune(title)))
	if colorize {
		title = ansiBold + title + ansiReset
	}
	return []string{title, rule}
}

// useColor reports whether w is an interactive terminal and NO_COLOR is unset.
func useColor(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printLines(out io.Writer, lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
