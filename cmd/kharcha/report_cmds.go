package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"kharcha/internal/bill"
	"kharcha/internal/core"
	"kharcha/internal/report"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	env        *env
	month      string
	categories string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the expenses of a month" }
func (*listCmd) Usage() string {
	return `kharcha list [-month <YYYY-MM>] [-category <c1,c2,...>]

  Lists the expenses of a month, newest first, optionally restricted to some
  categories. "All" selects every category.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month as YYYY-MM. Defaults to the current month.")
	f.StringVar(&c.categories, "category", core.AllCategories, "Comma separated categories to keep.")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := c.env.month(c.month)
	if err != nil {
		return c.env.usagef("Error parsing month: %v", err)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	expenses := report.FilterByCategory(report.MonthExpenses(s.Ledger.Snapshot(), month), strings.Split(c.categories, ","))
	c.env.printMarkdown(expensesMarkdown(fmt.Sprintf("Expenses %s", month), expenses, s.Prefs.Currency))
	return subcommands.ExitSuccess
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	env   *env
	month string
	today string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the totals of a month" }
func (*summaryCmd) Usage() string {
	return `kharcha summary [-month <YYYY-MM>] [-today <YYYY-MM-DD>]

  Displays income, expenses, balance, the spend of the last seven days
  against the weekly limit, the category breakdown and the previous month.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month as YYYY-MM. Defaults to the month of -today.")
	f.StringVar(&c.today, "today", "", "Reference date for the weekly window. Defaults to today.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ref := c.env.today()
	if c.today != "" {
		var err error
		if ref, err = core.ParseDate(c.today); err != nil {
			return c.env.usagef("Error parsing date: %v", err)
		}
	}
	month := core.MonthOf(ref)
	if c.month != "" {
		var err error
		if month, err = core.ParseMonth(c.month); err != nil {
			return c.env.usagef("Error parsing month: %v", err)
		}
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	l := s.Ledger.Snapshot()
	cur := report.Overview(l, month, ref)
	prev := report.Overview(l, month.Prev(), ref)
	c.env.printMarkdown(summaryMarkdown(cur, prev, ref, s.Prefs.Currency))
	return subcommands.ExitSuccess
}

// trendCmd holds the flags for the 'trend' subcommand.
type trendCmd struct {
	env    *env
	month  string
	months int
}

func (*trendCmd) Name() string     { return "trend" }
func (*trendCmd) Synopsis() string { return "display income and expenses over several months" }
func (*trendCmd) Usage() string {
	return `kharcha trend [-month <YYYY-MM>] [-n <months>]

  Displays income and expenses of consecutive months ending at -month,
  oldest first.
`
}

func (c *trendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Last month as YYYY-MM. Defaults to the current month.")
	f.IntVar(&c.months, "n", 0, "Number of months. Defaults to the stored preference.")
}

func (c *trendCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := c.env.month(c.month)
	if err != nil {
		return c.env.usagef("Error parsing month: %v", err)
	}
	if c.months < 0 || c.months > report.MaxTrendMonths {
		return c.env.usagef("-n must be between 1 and %d", report.MaxTrendMonths)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	n := c.months
	if n == 0 {
		n = s.Prefs.TrendMonths
	}
	points := report.TrendSeries(s.Ledger.Snapshot(), month, n)
	c.env.printMarkdown(trendMarkdown(points, s.Prefs.Currency))
	return subcommands.ExitSuccess
}

// billCmd holds the flags for the 'bill' subcommand.
type billCmd struct {
	env   *env
	month string
	raw   bool
}

func (*billCmd) Name() string     { return "bill" }
func (*billCmd) Synopsis() string { return "print the monthly bill" }
func (*billCmd) Usage() string {
	return `kharcha bill [-month <YYYY-MM>] [-raw]

  Prints the bill of a month. With -raw the Markdown source is printed, ready
  to be saved or converted.
`
}

func (c *billCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month as YYYY-MM. Defaults to the current month.")
	f.BoolVar(&c.raw, "raw", false, "Print the Markdown source.")
}

func (c *billCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := c.env.month(c.month)
	if err != nil {
		return c.env.usagef("Error parsing month: %v", err)
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	doc := bill.Markdown(report.Overview(s.Ledger.Snapshot(), month, c.env.today()), s.Prefs.Currency)
	if c.raw {
		fmt.Fprint(c.env.out, doc)
		return subcommands.ExitSuccess
	}
	c.env.printMarkdown(doc)
	return subcommands.ExitSuccess
}
