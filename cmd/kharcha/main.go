// Command kharcha tracks monthly income and expenses from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"kharcha/internal/cli"
	"kharcha/internal/core"
	"kharcha/internal/ledger"
)

func main() {
	cli.LoadEnvFile()

	e := &env{out: os.Stdout, errOut: os.Stderr, now: time.Now}
	commander := newCommander(flag.CommandLine, path.Base(os.Args[0]), e)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// env is the state shared by every subcommand.
type env struct {
	out        io.Writer
	errOut     io.Writer
	configPath string
	plain      bool
	now        func() time.Time
}

// newCommander registers the global flags and the subcommands on fs.
func newCommander(fs *flag.FlagSet, name string, e *env) *subcommands.Commander {
	fs.StringVar(&e.configPath, "config", "", "Path to a TOML configuration file. Defaults to $KHARCHA_CONFIG.")
	fs.BoolVar(&e.plain, "plain", false, "Print Markdown output as-is, without terminal styling.")

	c := subcommands.NewCommander(fs, name)
	c.Output = e.out
	c.Error = e.errOut

	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&incomeCmd{env: e}, "ledger")
	c.Register(&addCmd{env: e}, "ledger")
	c.Register(&editCmd{env: e}, "ledger")
	c.Register(&rmCmd{env: e}, "ledger")

	c.Register(&listCmd{env: e}, "reports")
	c.Register(&summaryCmd{env: e}, "reports")
	c.Register(&trendCmd{env: e}, "reports")
	c.Register(&billCmd{env: e}, "reports")

	c.Register(&backupCmd{env: e}, "backup")
	c.Register(&restoreCmd{env: e}, "backup")

	c.Register(&prefsCmd{env: e}, "settings")
	return c
}

// open loads the configuration and opens the ledger it points at.
func (e *env) open(ctx context.Context) (*cli.Session, error) {
	cfg, err := cli.LoadAndValidateConfig(e.configPath)
	if err != nil {
		return nil, err
	}
	logger := cli.SetupLogger(cfg, e.errOut)
	return cli.Open(ctx, cfg, logger, ledger.WithClock(e.now))
}

func (e *env) today() core.Date {
	return core.DateOf(e.now())
}

// month parses s, or returns the current month when s is empty.
func (e *env) month(s string) (core.Month, error) {
	if s == "" {
		return core.MonthOf(e.today()), nil
	}
	return core.ParseMonth(s)
}

func (e *env) failf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, format+"\n", args...)
	return subcommands.ExitFailure
}

func (e *env) usagef(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, format+"\n", args...)
	return subcommands.ExitUsageError
}

// printMarkdown renders doc for the terminal unless plain output is asked.
func (e *env) printMarkdown(doc string) {
	if e.plain {
		fmt.Fprint(e.out, doc)
		return
	}
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Fprint(e.out, doc)
		return
	}
	fmt.Fprint(e.out, out)
}
