package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/core"
)

func expense(id string, amount float64, y, m, d int) core.Expense {
	return core.Expense{ID: id, Title: "t-" + id, Amount: core.NewMoney(amount), Date: core.NewDate(y, m, d)}.Normalize()
}

func ids(l core.Ledger) []string {
	out := make([]string, 0, len(l.Expenses))
	for _, e := range l.Expenses {
		out = append(out, e.ID)
	}
	return out
}

func TestMergeRestoreKeepsLocalData(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{doc: []byte(`{
		"incomes": {"2025-06": 30000},
		"expenses": [{"id":"1","title":"Lunch","amount":100,"date":"2025-06-05","category":"Food"}]
	}`)}
	s := openTestStore(t, p)

	res, err := s.MergeRestore(ctx, []byte(`{
		"incomes": {"2025-06": 1, "2025-05": 25000},
		"expenses": [
			{"id":"1","title":"Changed","amount":999,"date":"2025-06-05","category":"Rent"},
			{"id":"2","title":"Cinema","amount":50,"date":"2025-06-07","category":"entertainment"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, MergeResult{IncomesAdded: 1, ExpensesAdded: 1}, res)

	snap := s.Snapshot()
	require.Len(t, snap.Expenses, 2)
	assert.Equal(t, []string{"2", "1"}, ids(snap))

	local, ok := s.Expense("1")
	require.True(t, ok)
	assert.Equal(t, "Lunch", local.Title)
	assert.True(t, local.Amount.Equal(core.NewMoney(100)))

	imported, ok := s.Expense("2")
	require.True(t, ok)
	assert.Equal(t, core.Entertainment, imported.Category)
	assert.Equal(t, core.MonthOf(imported.Date), imported.MonthKey)

	assert.True(t, snap.Incomes[june()].Equal(core.NewMoney(30000)))
	assert.True(t, snap.Incomes[core.NewMonth(2025, time.May)].Equal(core.NewMoney(25000)))
	assert.Equal(t, 1, p.saves)
}

func TestMergeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	s := openTestStore(t, p)
	backup := []byte(`{
		"incomes": {"2025-04": 100},
		"expenses": [
			{"id":"a","title":"A","amount":1,"date":"2025-04-02"},
			{"id":"b","title":"B","amount":2,"date":"2025-04-09"}
		]
	}`)

	_, err := s.MergeRestore(ctx, backup)
	require.NoError(t, err)
	once, err := EncodeDocument(s.Snapshot())
	require.NoError(t, err)

	res, err := s.MergeRestore(ctx, backup)
	require.NoError(t, err)
	assert.Equal(t, MergeResult{}, res)
	twice, err := EncodeDocument(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
}

func TestMergeSortsNewestFirstAndKeepsTies(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, &recordingPersister{})

	local := core.NewLedger()
	local.Expenses = []core.Expense{expense("a", 1, 2025, 6, 5), expense("b", 2, 2025, 6, 5)}
	_, err := s.MergeLedger(ctx, local)
	require.NoError(t, err)

	imported := core.NewLedger()
	imported.Expenses = []core.Expense{
		expense("c", 3, 2025, 6, 5),
		expense("d", 4, 2025, 6, 10),
		expense("e", 5, 2025, 5, 30),
	}
	_, err = s.MergeLedger(ctx, imported)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, []string{"d", "a", "b", "c", "e"}, ids(snap))
	for i := 1; i < len(snap.Expenses); i++ {
		assert.False(t, snap.Expenses[i].Date.After(snap.Expenses[i-1].Date.Time))
	}
}

func TestMergeDedupesWithinImport(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, &recordingPersister{})

	imported := core.NewLedger()
	imported.Expenses = []core.Expense{expense("x", 1, 2025, 6, 1), expense("x", 9, 2025, 6, 2)}
	res, err := s.MergeLedger(ctx, imported)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExpensesAdded)

	e, ok := s.Expense("x")
	require.True(t, ok)
	assert.True(t, e.Amount.Equal(core.NewMoney(1)))
}

func TestMergeRestoreRejectsBadShape(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	s := openTestStore(t, p)
	require.NoError(t, s.SetIncome(ctx, june(), money(t, "30000")))
	_, err := s.AddExpense(ctx, ExpenseInput{Title: "Lunch", Amount: money(t, "250"), Date: core.NewDate(2025, 6, 5)})
	require.NoError(t, err)

	before, err := EncodeDocument(s.Snapshot())
	require.NoError(t, err)
	stored := string(p.doc)

	for name, doc := range map[string]string{
		"missing incomes":  `{"expenses":[]}`,
		"missing expenses": `{"incomes":{}}`,
		"null incomes":     `{"incomes":null,"expenses":[]}`,
		"expenses object":  `{"incomes":{},"expenses":{}}`,
		"not json":         `incomes`,
		"bad amount":       `{"incomes":{},"expenses":[{"id":"1","title":"x","amount":"lots","date":"2025-06-01"}]}`,
		"bad month key":    `{"incomes":{"June":1},"expenses":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.MergeRestore(ctx, []byte(doc))
			assert.ErrorIs(t, err, ErrBadShape)

			after, err := EncodeDocument(s.Snapshot())
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
			assert.Equal(t, stored, string(p.doc))
			assert.Equal(t, 2, p.saves)
		})
	}
}

func TestMergeAcceptsUnvalidatedRecords(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, &recordingPersister{})

	_, err := s.MergeRestore(ctx, []byte(`{
		"incomes": {},
		"expenses": [{"id":"neg","title":"","amount":-5,"date":"2025-06-01","monthKey":""}]
	}`))
	require.NoError(t, err)

	e, ok := s.Expense("neg")
	require.True(t, ok)
	assert.Equal(t, "-5", e.Amount.String())
	assert.Equal(t, core.Other, e.Category)
	assert.Equal(t, june(), e.MonthKey)
}

const oddDateDocument = `{
	"incomes": {"2025-05": 100},
	"expenses": [
		{"id":"ok","title":"Tea","amount":20,"date":"2025-05-02","monthKey":"2025-05"},
		{"id":"odd","title":"Cab","amount":30,"date":"2025-5-3","monthKey":"2025-05"},
		{"id":"undated","title":"Gift","amount":40}
	]
}`

func TestMergeKeepsRecordsWithUnparsableDates(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	s := openTestStore(t, p)

	res, err := s.MergeRestore(ctx, []byte(oddDateDocument))
	require.NoError(t, err)
	assert.Equal(t, MergeResult{IncomesAdded: 1, ExpensesAdded: 3}, res)

	snap := s.Snapshot()
	require.Len(t, snap.Expenses, 3)
	assert.Equal(t, "ok", snap.Expenses[0].ID, "records without a usable date sort last")

	odd, ok := s.Expense("odd")
	require.True(t, ok)
	assert.True(t, odd.Date.IsZero())
	assert.Equal(t, "2025-5-3", odd.Date.String())
	assert.Equal(t, core.NewMonth(2025, time.May), odd.MonthKey, "imported month key is kept")

	undated, ok := s.Expense("undated")
	require.True(t, ok)
	assert.True(t, undated.Date.IsZero())
	assert.True(t, undated.MonthKey.IsZero())

	assert.Contains(t, string(p.doc), `"date":"2025-5-3"`)
}
