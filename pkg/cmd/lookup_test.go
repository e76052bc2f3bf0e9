package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/apexkit/plsqlfmt/pkg/config"
	"github.com/apexkit/plsqlfmt/pkg/consts"
)

const testDictionary = `{
  "packages": [
    {
      "name": "APEX_UTIL",
      "procedures": [
        {
          "label": "APEX_UTIL.GET_SESSION_ID",
          "detail": "WWV_FLOW_UTILITIES.GET_SESSION_ID",
          "kind": "function",
          "returnType": "NUMBER",
          "signature": "APEX_UTIL.GET_SESSION_ID RETURN NUMBER"
        }
      ]
    }
  ]
}`

func lookupApp(cfg *config.Config, buf *bytes.Buffer) *cli.Command {
	command := lookupCmd(cfg)
	app := &cli.Command{
		Name:   "test",
		Flags:  command.Flags,
		Before: command.Before,
		Action: command.Action,
	}
	if buf != nil {
		app.Writer = buf
	}
	return app
}

func TestLookupCommand(t *testing.T) {
	tmpDir := t.TempDir()

	dictFile := filepath.Join(tmpDir, "apex.json")
	require.NoError(t, os.WriteFile(dictFile, []byte(testDictionary), consts.ModeFile))

	cfg := &config.Config{Dictionaries: []string{dictFile}}

	t.Run("match", func(t *testing.T) {
		var buf bytes.Buffer
		app := lookupApp(cfg, &buf)

		require.NoError(t, app.Run(context.Background(), []string{"test", "apex_util.get"}))
		require.Equal(t, "APEX_UTIL.GET_SESSION_ID RETURN NUMBER\n", buf.String())
	})

	t.Run("no match", func(t *testing.T) {
		app := lookupApp(cfg, nil)
		err := app.Run(context.Background(), []string{"test", "dbms_"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no entries match prefix")
	})
}

func TestLookupCommand_RequiresConfig(t *testing.T) {
	app := lookupApp(nil, nil)
	err := app.Run(context.Background(), []string{"test", "apex_"})
	require.Error(t, err)
	require.Contains(t, err.Error(), ".plsqlfmt.yaml not found")
}

func TestLookupCommand_NoDictionaries(t *testing.T) {
	app := lookupApp(&config.Config{}, nil)
	err := app.Run(context.Background(), []string{"test", "apex_"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no dictionaries configured")
}

func TestLookupCommand_RequiresPrefix(t *testing.T) {
	app := lookupApp(&config.Config{Dictionaries: []string{"x.json"}}, nil)
	err := app.Run(context.Background(), []string{"test"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one prefix argument is required")
}
