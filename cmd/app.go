// Package cmd implements the CLI application to manage the ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/moneystream"
	"github.com/etnz/moneystream/csvstore"
	"github.com/etnz/moneystream/sqlstore"
	"github.com/fatih/color"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&refundCmd{}, "transactions")
	c.Register(&reimburseCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")

	c.Register(&txCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&accountsCmd{}, "accounts")
	c.Register(&accountCmd{}, "accounts")

	c.Register(&categoryCmd{}, "categories")

	c.Register(&undoCmd{}, "maintenance")
	c.Register(&recomputeCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "moneystream.yaml", "Path to the config file")
var dataDir = flag.String("data", "", "Data directory, overrides the config file")

// app bundles the loaded config and session for a single command run.
type app struct {
	cfg     Config
	session *moneystream.Session
	closer  func() error
}

// openApp loads the config, opens the configured storage backend and loads
// the ledger into a session.
func openApp() (*app, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	var store moneystream.Store
	closer := func() error { return nil }
	switch cfg.Backend {
	case "", "csv":
		if _, err := os.Stat(cfg.DataDir); errors.Is(err, fs.ErrNotExist) {
			log.Println("warning, data directory does not exist, starting with an empty ledger")
		}
		store = csvstore.New(cfg.DataDir)
	case "sqlite":
		db, err := sqlstore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = db
		closer = db.Close
	default:
		return nil, fmt.Errorf("unknown backend %q, want csv or sqlite", cfg.Backend)
	}

	session, err := moneystream.NewSession(store)
	if err != nil {
		closer()
		return nil, err
	}
	return &app{cfg: cfg, session: session, closer: closer}, nil
}

func (a *app) Close() error { return a.closer() }

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func successf(format string, args ...any) {
	fmt.Println(color.GreenString(format, args...))
}

func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, color.RedString(format, args...))
	return subcommands.ExitFailure
}
