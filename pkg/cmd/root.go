package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/apexkit/plsqlfmt/pkg/config"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main plsqlfmt CLI application with the given
// version and command-line arguments.
//
// The function creates a CLI application with:
//   - Global --dir flag for specifying the working directory
//   - Command registration and routing
//   - Context propagation for cancellation support
//
// Project configuration is picked up from .plsqlfmt.yaml in the working
// directory when present; every command falls back to the default formatting
// options without it.
//
// Example usage:
//
//	# Format a file in the current directory
//	plsqlfmt fmt install.sql
//
//	# Run against another project
//	plsqlfmt --dir /path/to/project fmt -w src/
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "plsqlfmt",
		Usage: "A formatter and API explorer for Oracle PL/SQL source",
		Description: `plsqlfmt is a CLI tool that reformats PL/SQL source files: it splits
compressed statements onto separate lines, re-indents blocks, aligns query
clauses and call arguments, and normalizes keyword casing. It also ships
helpers for inspecting declared variables and the bundled API dictionaries.`,
		Version: p.Version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the working directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, os.Chdir(cmd.String("dir"))
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func requireConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfg == nil {
			return ctx, errors.New(".plsqlfmt.yaml not found")
		}

		return ctx, nil
	}
}
