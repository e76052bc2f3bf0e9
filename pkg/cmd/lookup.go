package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/apexkit/plsqlfmt/pkg/config"
	"github.com/apexkit/plsqlfmt/pkg/dict"
)

// lookupCmd creates the CLI command searching the project's API
// dictionaries. Dictionaries are JSON files listed under "dictionaries" in
// .plsqlfmt.yaml, so the command requires a project config.
//
// Example:
//
//	$ plsqlfmt lookup apex_util.get
//	APEX_UTIL.GET_SESSION_ID RETURN NUMBER
func lookupCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Search the configured API dictionaries",
		ArgsUsage: "<prefix>",
		Before:    requireConfig(cfg),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one prefix argument is required")
			}

			if len(cfg.Dictionaries) == 0 {
				return errors.New("no dictionaries configured")
			}

			d, err := dict.LoadFiles(cfg.Dictionaries...)
			if err != nil {
				return errors.Wrap(err, "failed to load dictionaries")
			}

			matches := d.Lookup(cmd.Args().First())
			if len(matches) == 0 {
				return errors.Errorf("no entries match prefix: %s", cmd.Args().First())
			}

			for _, p := range matches {
				fmt.Fprintln(cmd.Writer, p.Signature)
			}

			return nil
		},
	}
}
