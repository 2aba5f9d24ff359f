package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

// reportMutation prints the outcome of a ledger change. A failed write-back
// is reported even though the in-memory change happened.
func reportMutation(e *env, err error, done string) subcommands.ExitStatus {
	if errors.Is(err, ledger.ErrPersist) {
		return e.failf("%s, but the change could not be saved: %v", done, err)
	}
	if err != nil {
		return e.failf("Error: %v", err)
	}
	fmt.Fprintln(e.out, done)
	return subcommands.ExitSuccess
}

// incomeCmd holds the flags for the 'income' subcommand.
type incomeCmd struct {
	env   *env
	month string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "set the income of a month" }
func (*incomeCmd) Usage() string {
	return `kharcha income [-month <YYYY-MM>] <amount>

  Records the income of a month, replacing any previous value.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month as YYYY-MM. Defaults to the current month.")
}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usagef("income takes exactly one amount")
	}
	month, err := c.env.month(c.month)
	if err != nil {
		return c.env.usagef("Error parsing month: %v", err)
	}
	amount, err := core.ParseMoney(f.Arg(0))
	if err != nil {
		return c.env.usagef("Error parsing amount %q: %v", f.Arg(0), err)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	err = s.Ledger.SetIncome(ctx, month, amount)
	return reportMutation(c.env, err, fmt.Sprintf("Income for %s set to %s", month, amount.Format(s.Prefs.Currency)))
}

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	env      *env
	date     string
	category string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an expense" }
func (*addCmd) Usage() string {
	return `kharcha add [-date <YYYY-MM-DD>] [-category <category>] <title> <amount>

  Records an expense and prints its id. Amounts accept '.' or ',' as the
  decimal separator. Unknown categories are filed under Other.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "date", "", "Date as YYYY-MM-DD. Defaults to today.")
	f.StringVar(&c.category, "category", string(core.Other), "Category of the expense.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return c.env.usagef("add takes a title and an amount")
	}
	in := ledger.ExpenseInput{Title: f.Arg(0), Category: c.category}
	amount, err := core.ParseMoney(f.Arg(1))
	if err != nil {
		return c.env.usagef("Error parsing amount %q: %v", f.Arg(1), err)
	}
	in.Amount = amount
	if c.date != "" {
		if in.Date, err = core.ParseDate(c.date); err != nil {
			return c.env.usagef("Error parsing date: %v", err)
		}
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	e, err := s.Ledger.AddExpense(ctx, in)
	if err != nil && !errors.Is(err, ledger.ErrPersist) {
		return c.env.failf("Error: %v", err)
	}
	return reportMutation(c.env, err, fmt.Sprintf("Added %s: %s %s on %s (%s)",
		e.ID, e.Title, e.Amount.Format(s.Prefs.Currency), e.Date, e.Category))
}

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	env      *env
	title    string
	amount   string
	date     string
	category string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change an expense" }
func (*editCmd) Usage() string {
	return `kharcha edit [-title <title>] [-amount <amount>] [-date <YYYY-MM-DD>] [-category <category>] <id>

  Changes only the fields given as flags.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "New title.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.date, "date", "", "New date as YYYY-MM-DD.")
	f.StringVar(&c.category, "category", "", "New category.")
}

func (c *editCmd) patch(f *flag.FlagSet) (ledger.ExpensePatch, error) {
	var p ledger.ExpensePatch
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "title":
			p.Title = &c.title
		case "category":
			p.Category = &c.category
		case "amount":
			var m core.Money
			if m, err = core.ParseMoney(c.amount); err == nil {
				p.Amount = &m
			}
		case "date":
			var d core.Date
			if d, err = core.ParseDate(c.date); err == nil {
				p.Date = &d
			}
		}
	})
	return p, err
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usagef("edit takes exactly one expense id")
	}
	patch, err := c.patch(f)
	if err != nil {
		return c.env.usagef("Error: %v", err)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	e, err := s.Ledger.UpdateExpense(ctx, f.Arg(0), patch)
	if err != nil && !errors.Is(err, ledger.ErrPersist) {
		return c.env.failf("Error: %v", err)
	}
	return reportMutation(c.env, err, fmt.Sprintf("Updated %s: %s %s on %s (%s)",
		e.ID, e.Title, e.Amount.Format(s.Prefs.Currency), e.Date, e.Category))
}

// rmCmd holds the flags for the 'rm' subcommand.
type rmCmd struct {
	env *env
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete an expense" }
func (*rmCmd) Usage() string {
	return `kharcha rm <id>

  Deletes an expense. Deleting an unknown id does nothing.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usagef("rm takes exactly one expense id")
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	removed, err := s.Ledger.DeleteExpense(ctx, f.Arg(0))
	if err == nil && !removed {
		fmt.Fprintf(c.env.out, "No expense with id %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	}
	return reportMutation(c.env, err, "Deleted "+f.Arg(0))
}
