// Package main provides the entry point for Task Master.
//
// With no command it starts the terminal UI; otherwise it runs one of the
// subcommands in internal/cli against the same task store.
//
// Usage:
//
//	taskmaster [options] [command] [arguments]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/taskmaster/internal/app"
	"github.com/riordanpawley/taskmaster/internal/cli"
	"github.com/riordanpawley/taskmaster/internal/config"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rest, err := cli.ApplyGlobalFlags(cfg, args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	deps, err := cli.NewDependencies(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer deps.Close()

	if len(rest) > 0 {
		return cli.Run(ctx, deps, rest)
	}

	model := app.New(cfg, deps.Store, deps.Logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
