package moredecimal

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code identifies a kind of status line reported during a decimal change.
type Code string

// Status line codes.
const (
	CodeNoChange     Code = "MDC02" // security already has the requested decimal places
	CodeUnexpected   Code = "MDC03" // unexpected transaction found, skipped
	CodeStaged       Code = "MDC04" // account verified and staged
	CodeInexact      Code = "MDC05" // a quantity or balance cannot be rescaled
	CodeReady        Code = "MDC06"
	CodeDiscarded    Code = "MDC07"
	CodeCommitted    Code = "MDC08"
	CodeCommitFailed Code = "MDC09"
)

// formats are the English message formats, indexed by code.
var formats = map[Code]string{
	CodeNoChange:     "No changes needed. %s already has %d decimal places.",
	CodeUnexpected:   "WARNING: Found unexpected transaction in %s: %v.",
	CodeStaged:       "Verified and staged %d relevant transaction%s in %s account.",
	CodeInexact:      "%v: cannot use %d decimal places for %s on %s.",
	CodeReady:        "Ready to change %s from %d to %d decimal places.",
	CodeDiscarded:    "Discarded the pending change of %s to %d decimal places.",
	CodeCommitted:    "Changed a total of %d transaction%s in %d account%s. Security %s now has %d decimal places.",
	CodeCommitFailed: "ERROR: %v. The ledger may be partially updated.",
}

// Message is one status line: a code and the parameters to interpolate.
type Message struct {
	Code Code
	Args []any
}

// Text renders the message for the given language. Unknown codes render as
// the code itself.
func (m Message) Text(tag language.Tag) string {
	format, ok := formats[m.Code]
	if !ok {
		return string(m.Code)
	}
	return message.NewPrinter(tag).Sprintf(format, m.Args...)
}

func (m Message) String() string { return m.Text(language.English) }

// Reporter receives the status lines of a decimal change.
type Reporter interface {
	Report(m Message)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(m Message)

func (f ReporterFunc) Report(m Message) { f(m) }

// Transcript is a Reporter that keeps every message.
type Transcript struct {
	Messages []Message
}

func (t *Transcript) Report(m Message) { t.Messages = append(t.Messages, m) }

// Lines renders every message in order.
func (t *Transcript) Lines(tag language.Tag) []string {
	lines := make([]string, 0, len(t.Messages))
	for _, m := range t.Messages {
		lines = append(lines, m.Text(tag))
	}
	return lines
}

// Count returns the number of messages with that code.
func (t *Transcript) Count(code Code) int {
	n := 0
	for _, m := range t.Messages {
		if m.Code == code {
			n++
		}
	}
	return n
}

// Reset forgets every message.
func (t *Transcript) Reset() { t.Messages = nil }

func report(r Reporter, code Code, args ...any) {
	if r != nil {
		r.Report(Message{Code: code, Args: args})
	}
}

// sUnless1 returns the letter 's' unless num is 1.
func sUnless1(num int) string {
	if num == 1 {
		return ""
	}
	return "s"
}
