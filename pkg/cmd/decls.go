package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/apexkit/plsqlfmt/pkg/format"
	"github.com/apexkit/plsqlfmt/pkg/scanner"
)

// declsCmd creates the CLI command listing the variables declared in a
// PL/SQL file. The source is formatted first so the scanner sees
// one-statement-per-line input even for compressed files.
//
// Example:
//
//	$ plsqlfmt decls body.pkb
//	NAME     TYPE            ATTRIBUTES  DEFAULT
//	l_id     NUMBER
//	c_max    PLS_INTEGER     CONSTANT    10
func declsCmd(f *format.Formatter) *cli.Command {
	return &cli.Command{
		Name:      "decls",
		Usage:     "List variables declared in a PL/SQL file",
		ArgsUsage: "[path]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 1 {
				return errors.New("at most one path argument is allowed")
			}

			var content []byte
			var err error
			if cmd.Args().Len() == 0 || cmd.Args().First() == "-" {
				content, err = io.ReadAll(os.Stdin)
				if err != nil {
					return errors.Wrap(err, "failed to read stdin")
				}
			} else {
				content, err = os.ReadFile(cmd.Args().First())
				if err != nil {
					return errors.Wrapf(err, "failed to read file: %s", cmd.Args().First())
				}
			}

			vars := scanner.ScanDeclarations(f.FormatString(string(content)))
			return writeDecls(cmd.Writer, vars)
		},
	}
}

func writeDecls(w io.Writer, vars []scanner.Variable) error {
	if len(vars) == 0 {
		_, err := fmt.Fprintln(w, "no declarations found")
		return errors.Wrap(err, "failed to write output")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tATTRIBUTES\tDEFAULT")
	for _, v := range vars {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Name, v.DataType, attributes(v), v.Default)
	}

	return errors.Wrap(tw.Flush(), "failed to write output")
}

func attributes(v scanner.Variable) string {
	var attrs []string
	if v.Constant {
		attrs = append(attrs, "CONSTANT")
	}
	if v.NotNull {
		attrs = append(attrs, "NOT NULL")
	}
	return strings.Join(attrs, ", ")
}
