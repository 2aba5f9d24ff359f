package bill

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"kharcha/internal/core"
	"kharcha/internal/report"
)

// headings returns "level:text" for every heading of a Markdown document.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	source := []byte(doc)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var b strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				b.Write(line.Value(source))
			}
			out = append(out, strings.Repeat("#", h.Level)+" "+strings.TrimSpace(b.String()))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return out
}

func juneLedger() core.Ledger {
	l := core.NewLedger()
	june := core.NewMonth(2025, time.June)
	l.Incomes[june] = core.NewMoney(30000)
	l.Expenses = []core.Expense{
		core.Expense{ID: "2", Title: "Bus", Amount: core.NewMoney(50), Date: core.NewDate(2025, 6, 6), Category: core.Transport}.Normalize(),
		core.Expense{ID: "1", Title: "Lunch", Amount: core.NewMoney(250), Date: core.NewDate(2025, 6, 5), Category: core.Food}.Normalize(),
	}
	return l
}

func TestMarkdownBill(t *testing.T) {
	june := core.NewMonth(2025, time.June)
	doc := Markdown(report.Overview(juneLedger(), june, core.NewDate(2025, 6, 30)), "USD")

	assert.Equal(t, []string{
		"# Monthly Bill 2025-06",
		"## Expenses",
		"## By category",
	}, headings(t, doc))

	for _, want := range []string{"$30,000.00", "$300.00", "$29,700.00", "Lunch", "Bus", "2025-06-05", "Food", "Transport"} {
		assert.Contains(t, doc, want)
	}
	assert.NotContains(t, doc, NoExpensesText)
	assert.Less(t, strings.Index(doc, "Bus"), strings.Index(doc, "Lunch"), "rows keep ledger order")
}

func TestMarkdownBillEmptyMonth(t *testing.T) {
	july := core.NewMonth(2025, time.July)
	doc := Markdown(report.Overview(juneLedger(), july, core.NewDate(2025, 7, 31)), "USD")

	assert.Equal(t, []string{"# Monthly Bill 2025-07", "## Expenses"}, headings(t, doc))
	assert.Contains(t, doc, NoExpensesText)
	assert.Contains(t, doc, "$0.00")
}
