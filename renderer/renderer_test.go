package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/moredecimal"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/language"
)

const book = `{"command":"security","ticker":"ACME","name":"Acme Corp","currency":"USD","decimals":2}
{"command":"security","ticker":"IDLE","name":"Idle Fund","currency":"EUR","decimals":3}
{"command":"account","name":"Brokerage","type":"investment","currency":"USD"}
{"command":"account","name":"Acme Corp","type":"security","currency":"USD","parent":"Brokerage"}
{"command":"txn","id":"t1","date":"2020-05-10","account":"Brokerage","memo":"buy","splits":[{"account":"Brokerage:Acme Corp","quantity":12345,"amount":-150000}]}
{"command":"txn","id":"t2","date":"2020-06-01","account":"Brokerage","memo":"sell","splits":[{"account":"Brokerage:Acme Corp","quantity":-345,"amount":4200}]}
`

// markdown is the structure of a rendered report.
type markdown struct {
	Headings []string
	Rows     [][]string
	Items    []string
	Emphasis int
}

// parse walks the markdown AST of src.
func parse(t *testing.T, src string) markdown {
	t.Helper()
	source := []byte(src)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var md markdown
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			md.Headings = append(md.Headings, inlineText(n, source))
			return ast.WalkSkipChildren, nil
		case *east.TableRow:
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, inlineText(c, source))
			}
			md.Rows = append(md.Rows, cells)
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			md.Items = append(md.Items, inlineText(n, source))
			return ast.WalkSkipChildren, nil
		case *ast.Emphasis:
			md.Emphasis++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}
	return md
}

// inlineText concatenates the text segments below n.
func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func loadBook(t *testing.T) *moredecimal.Book {
	t.Helper()
	b, err := moredecimal.DecodeBook(strings.NewReader(book))
	if err != nil {
		t.Fatalf("DecodeBook() error = %v", err)
	}
	return b
}

func TestRenderChange(t *testing.T) {
	b := loadBook(t)
	var tr moredecimal.Transcript
	s := moredecimal.NewSession(b, &tr)
	if got, err := s.BeginChange(b.Security("ACME"), 4); err != nil || got != moredecimal.Ready {
		t.Fatalf("BeginChange() = %v, %v, want Ready", got, err)
	}
	c, ok := s.Pending()
	if !ok {
		t.Fatal("Pending() = false after a successful BeginChange")
	}
	report := NewChange(c)
	report.DryRun = true
	report.AddTranscript(&tr, language.English)

	md := parse(t, RenderChange(report))

	wantHeadings := []string{"Acme Corp (ACME) from 2 to 4 decimal places", "Transactions", "Status"}
	if diff := cmp.Diff(wantHeadings, md.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	wantRows := [][]string{
		{"May 10, 2020", "Brokerage:Acme Corp", "buy", "123.45", "123.4500", "-$1,500.00"},
		{"Jun 1, 2020", "Brokerage:Acme Corp", "sell", "-3.45", "-3.4500", "$42.00"},
	}
	if diff := cmp.Diff(wantRows, md.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if len(md.Items) != len(tr.Messages) {
		t.Errorf("status items = %d, want %d", len(md.Items), len(tr.Messages))
	}
	if md.Emphasis != 1 {
		t.Errorf("emphasis = %d, want the dry run notice", md.Emphasis)
	}
}

func TestRenderChange_NoOperations(t *testing.T) {
	b := loadBook(t)
	var tr moredecimal.Transcript
	s := moredecimal.NewSession(b, &tr)
	if got, err := s.BeginChange(b.Security("IDLE"), 1); err != nil || got != moredecimal.Ready {
		t.Fatalf("BeginChange() = %v, %v, want Ready", got, err)
	}
	c, _ := s.Pending()
	report := NewChange(c)
	report.AddTranscript(&tr, language.English)

	md := parse(t, RenderChange(report))

	wantHeadings := []string{"Idle Fund (IDLE) from 3 to 1 decimal places", "Status"}
	if diff := cmp.Diff(wantHeadings, md.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if len(md.Rows) != 0 {
		t.Errorf("rows = %v, want none", md.Rows)
	}
	if md.Emphasis != 0 {
		t.Errorf("emphasis = %d, want no dry run notice", md.Emphasis)
	}
}

func TestRenderSecurities(t *testing.T) {
	md := parse(t, RenderSecurities(NewSecurities(loadBook(t))))

	want := [][]string{
		{"ACME", "Acme Corp", "USD", "2", "0.01", "Brokerage:Acme Corp"},
		{"IDLE", "Idle Fund", "EUR", "3", "0.001", ""},
	}
	if diff := cmp.Diff(want, md.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}
