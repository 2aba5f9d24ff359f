package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"kharcha/internal/core"
)

// DecodeDocument parses a persisted or exported ledger.
//
// The top level must be an object holding an "incomes" object keyed by
// YYYY-MM and an "expenses" array; anything else is ErrBadShape. Records
// are not validated: a negative amount, an empty title or a date that is
// not YYYY-MM-DD is kept as-is. Only an amount that is not a number rejects
// the document. Categories are coerced and month keys recomputed from
// dates that parse.
func DecodeDocument(data []byte) (core.Ledger, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return core.Ledger{}, fmt.Errorf("%w: top level must be an object", ErrBadShape)
	}

	rawIncomes, ok := top["incomes"]
	if !ok || !isJSONKind(rawIncomes, '{') {
		return core.Ledger{}, fmt.Errorf("%w: missing incomes object", ErrBadShape)
	}
	rawExpenses, ok := top["expenses"]
	if !ok || !isJSONKind(rawExpenses, '[') {
		return core.Ledger{}, fmt.Errorf("%w: missing expenses array", ErrBadShape)
	}

	l := core.NewLedger()
	if err := json.Unmarshal(rawIncomes, &l.Incomes); err != nil {
		return core.Ledger{}, fmt.Errorf("%w: incomes: %v", ErrBadShape, err)
	}
	if _, ok := l.Incomes[core.Month{}]; ok {
		return core.Ledger{}, fmt.Errorf("%w: income with empty month", ErrBadShape)
	}

	var expenses []core.Expense
	if err := json.Unmarshal(rawExpenses, &expenses); err != nil {
		return core.Ledger{}, fmt.Errorf("%w: expenses: %v", ErrBadShape, err)
	}
	for _, e := range expenses {
		l.Expenses = append(l.Expenses, e.Normalize())
	}

	return l, nil
}

// EncodeDocument is the compact form written to the store.
func EncodeDocument(l core.Ledger) ([]byte, error) {
	return json.Marshal(withNonNil(l))
}

// EncodeBackup is the indented form handed to users as a backup file.
func EncodeBackup(l core.Ledger) ([]byte, error) {
	return json.MarshalIndent(withNonNil(l), "", "  ")
}

func withNonNil(l core.Ledger) core.Ledger {
	if l.Incomes == nil {
		l.Incomes = map[core.Month]core.Money{}
	}
	if l.Expenses == nil {
		l.Expenses = []core.Expense{}
	}
	return l
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}
