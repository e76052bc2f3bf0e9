package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/apexkit/plsqlfmt/pkg/consts"
	"github.com/apexkit/plsqlfmt/pkg/format"
)

// sqlExtensions are the file suffixes treated as PL/SQL source when walking
// a directory.
var sqlExtensions = []string{".sql", ".pls", ".pks", ".pkb", ".plb"}

// fmtCmd creates the CLI command for formatting PL/SQL source. It provides
// gofmt-like behavior: format a file or a directory tree to stdout, or
// rewrite files in place with -w. With no path argument, stdin is formatted
// to stdout.
//
// Formatting never fails on malformed source; the formatter produces
// best-effort output, so the command only errors on I/O problems.
//
// Examples:
//
//	# Format a single file to stdout
//	plsqlfmt fmt install.sql
//
//	# Format a single file in-place
//	plsqlfmt fmt -w install.sql
//
//	# Format all PL/SQL files in a directory tree in-place
//	plsqlfmt fmt -w src/
//
//	# Format stdin
//	echo 'begin null; end;' | plsqlfmt fmt
func fmtCmd(f *format.Formatter) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format PL/SQL files",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("at most one path argument is allowed")
			}

			if cmd.Args().Len() == 0 || cmd.Args().First() == "-" {
				return formatStdin(f, cmd.Writer)
			}

			return formatPath(f, cmd.Args().First(), cmd.Bool("write"), cmd.Writer)
		},
	}
}

func formatStdin(f *format.Formatter, writer io.Writer) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return errors.Wrap(err, "failed to read stdin")
	}

	return errors.Wrap(f.Format(writer, string(src)), "failed to write formatted content")
}

// formatPath handles formatting of either a single file or directory
// recursively.
func formatPath(f *format.Formatter, path string, writeBack bool, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return formatDirectory(f, path, writeBack, writer)
	}

	return formatFile(f, path, writeBack, writer)
}

// formatDirectory recursively walks through a directory and formats every
// PL/SQL file. Files are processed in lexicographical order for consistent
// behavior across platforms.
func formatDirectory(f *format.Formatter, dir string, writeBack bool, writer io.Writer) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && isSQLFile(d.Name()) {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no PL/SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := formatFile(f, sqlFile, writeBack, writer); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

// formatFile formats a single file and either writes to the given writer or
// back to the file.
func formatFile(f *format.Formatter, path string, writeBack bool, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	formatted := f.FormatString(string(content))

	if writeBack {
		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
		return nil
	}

	if _, err := fmt.Fprint(writer, formatted); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}

func isSQLFile(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range sqlExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
