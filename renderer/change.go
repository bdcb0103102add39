package renderer

import (
	"strings"

	"github.com/etnz/moredecimal"
	"golang.org/x/text/language"
)

// Change is the report of a decimal change: the staged operations, the
// status lines reported while validating and committing it.
type Change struct {
	Security string
	Ticker   string
	From, To int
	DryRun   bool
	Rows     []ChangeRow
	Lines    []string
}

// ChangeRow is one rescaled split transaction. Before and After display the
// same quantity at the old and new scale.
type ChangeRow struct {
	Date    string
	Account string
	Memo    string
	Before  string
	After   string
	Amount  string
}

// NewChange builds the report of a staged change. It must be called before
// the change is committed, while split quantities are still at the old scale.
func NewChange(c moredecimal.Change) *Change {
	r := &Change{
		Security: c.Security.Name(),
		Ticker:   c.Security.Ticker(),
		From:     c.From,
		To:       c.To,
	}
	for _, op := range c.Ops {
		s := op.Split()
		row := ChangeRow{
			Date:    s.When().Medium(),
			Account: s.Account().FullName(),
			Memo:    escapeCell(s.Parent().Memo()),
			Before:  moredecimal.FormatUnits(s.Quantity(), c.From),
			After:   moredecimal.FormatUnits(op.Quantity(), c.To),
		}
		if amount := s.Amount(); amount != nil {
			row.Amount = amount.Display()
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// AddTranscript appends the status lines of t rendered in tag's language.
func (r *Change) AddTranscript(t *moredecimal.Transcript, tag language.Tag) {
	r.Lines = append(r.Lines, t.Lines(tag)...)
}

// escapeCell makes s safe to print in a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderChange renders the report of a decimal change to markdown.
func RenderChange(c *Change) string {
	partials := map[string]string{
		"change_title":  "change_title.md",
		"change_status": "change_status.md",
	}
	// A change without operations has no table.
	if len(c.Rows) > 0 {
		partials["change_operations"] = "change_operations.md"
	} else {
		partials["change_operations"] = ""
	}
	return renderTemplate("change", "change.md", partials, c)
}
