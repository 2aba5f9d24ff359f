package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"kharcha/internal/ledger"
	"kharcha/internal/prefs"
	"kharcha/internal/services"
)

// backupCmd holds the flags for the 'backup' subcommand.
type backupCmd struct {
	env    *env
	output string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "export the ledger to a JSON file" }
func (*backupCmd) Usage() string {
	return `kharcha backup [-o <file>]

  Writes every income and expense to an indented JSON file that restore can
  merge back. An empty ledger is not exported.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the configured backup file.")
}

func (c *backupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	out := c.output
	if out == "" {
		out = s.Config.BackupFile
	}
	path, err := services.NewBackupService(s.Ledger, s.Logger).ExportFile(ctx, out)
	if errors.Is(err, ledger.ErrNothingToExport) {
		return c.env.failf("Nothing to back up: the ledger is empty")
	}
	if err != nil {
		return c.env.failf("Error writing backup: %v", err)
	}
	fmt.Fprintf(c.env.out, "Backup written to %s\n", path)
	return subcommands.ExitSuccess
}

// restoreCmd holds the flags for the 'restore' subcommand.
type restoreCmd struct {
	env *env
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "merge a JSON backup into the ledger" }
func (*restoreCmd) Usage() string {
	return `kharcha restore <file>

  Merges a backup into the ledger. Existing incomes and expenses are kept;
  only months and expense ids not present yet are added.
`
}

func (*restoreCmd) SetFlags(*flag.FlagSet) {}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.env.usagef("restore takes exactly one backup file")
	}

	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	res, err := services.NewBackupService(s.Ledger, s.Logger).RestoreFile(ctx, f.Arg(0))
	done := fmt.Sprintf("Restored %d incomes and %d expenses", res.IncomesAdded, res.ExpensesAdded)
	if errors.Is(err, ledger.ErrBadShape) {
		return c.env.failf("Invalid backup file: %v", err)
	}
	return reportMutation(c.env, err, done)
}

// prefsCmd holds the flags for the 'prefs' subcommand.
type prefsCmd struct {
	env      *env
	currency string
	trend    int
}

func (*prefsCmd) Name() string     { return "prefs" }
func (*prefsCmd) Synopsis() string { return "show or change display preferences" }
func (*prefsCmd) Usage() string {
	return `kharcha prefs [-currency <ISO code>] [-trend <months>]

  Without flags, prints the current preferences.
`
}

func (c *prefsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Display currency, an ISO 4217 code.")
	f.IntVar(&c.trend, "trend", 0, "Default number of months shown by trend.")
}

func (c *prefsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := c.env.open(ctx)
	if err != nil {
		return c.env.failf("Error opening ledger: %v", err)
	}
	defer s.Close()

	if c.currency != "" || c.trend != 0 {
		p := s.Prefs
		if c.currency != "" {
			p.Currency = c.currency
		}
		if c.trend != 0 {
			p.TrendMonths = c.trend
		}
		if err := s.SavePrefs(ctx, p); err != nil {
			if errors.Is(err, prefs.ErrInvalidCurrency) || errors.Is(err, prefs.ErrInvalidTrendMonths) {
				return c.env.usagef("Error: %v", err)
			}
			return c.env.failf("Error saving preferences: %v", err)
		}
	}
	fmt.Fprintf(c.env.out, "currency = %s\ntrend months = %d\n", s.Prefs.Currency, s.Prefs.TrendMonths)
	return subcommands.ExitSuccess
}
