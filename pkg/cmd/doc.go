// Package cmd provides the CLI commands for the plsqlfmt tool.
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern, and is wired into the
// application through the fx command group in this package's Module.
//
// # Available Commands
//
//   - fmt: reformat PL/SQL files, directories, or stdin
//   - decls: list the variables declared in a PL/SQL file
//   - lookup: search the configured API dictionaries
//
// # Global Options
//
// All commands support global flags:
//   - --dir, -d: Specify the working directory (defaults to current directory)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	plsqlfmt fmt install.sql          # format a single file to stdout
//	plsqlfmt fmt -w src/              # rewrite every PL/SQL file in a tree
//	plsqlfmt decls pkg_body.pkb       # list declared variables
//	plsqlfmt lookup apex_util.        # search the API dictionaries
package cmd
