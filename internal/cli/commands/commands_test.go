package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glushkov/querygen"
	"github.com/glushkov/querygen/internal/config"
	"github.com/glushkov/querygen/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	ctx := config.NewContext(context.Background(), cfg, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func newConfig(source string) *config.Config {
	return &config.Config{
		Source:     source,
		ID:         config.DefaultID,
		Statements: config.DefaultStatements,
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := testutil.SetupModelDir(t)

	tests := []struct {
		name    string
		cfg     func(*config.Config)
		args    []string
		wantOut string
	}{
		{
			name: "type argument",
			args: []string{"Person"},
			wantOut: "SELECT id, name FROM people;\n" +
				"SELECT id, name FROM people WHERE id = '1';\n" +
				"DELETE FROM people WHERE id = '1';\n",
		},
		{
			name: "type from config",
			cfg: func(cfg *config.Config) {
				cfg.Type = "Order"
				cfg.ID = "42"
				cfg.Statements = []string{"delete"}
			},
			wantOut: "DELETE FROM orders WHERE order_id = '42';\n",
		},
		{
			name: "argument over config",
			cfg: func(cfg *config.Config) {
				cfg.Type = "Order"
				cfg.Statements = []string{"select-all"}
			},
			args:    []string{"Person"},
			wantOut: "SELECT id, name FROM people;\n",
		},
		{
			name: "every struct with a table",
			cfg: func(cfg *config.Config) {
				cfg.Statements = []string{"select-all"}
			},
			wantOut: "-- model.Person\n" +
				"SELECT id, name FROM people;\n" +
				"\n" +
				"-- model.Order\n" +
				"SELECT order_id, total FROM orders;\n",
		},
		{
			name: "single file source",
			cfg: func(cfg *config.Config) {
				cfg.Source = filepath.Join(cfg.Source, "model.go")
				cfg.Statements = []string{"SELECT-ALL"}
			},
			args:    []string{"Order"},
			wantOut: "SELECT order_id, total FROM orders;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(dir)
			if tt.cfg != nil {
				tt.cfg(cfg)
			}

			out, err := run(t, NewGenerateCommand(), cfg, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestGenerateCommand_errors(t *testing.T) {
	dir := testutil.SetupModelDir(t)

	tests := []struct {
		name      string
		cfg       func(*config.Config)
		args      []string
		errSubstr string
		errIs     error
	}{
		{
			name:      "statement needing an instance",
			cfg:       func(cfg *config.Config) { cfg.Statements = []string{"insert"} },
			args:      []string{"Person"},
			errSubstr: "needs an instance",
		},
		{
			name:  "unknown statement",
			cfg:   func(cfg *config.Config) { cfg.Statements = []string{"upsert"} },
			args:  []string{"Person"},
			errIs: querygen.ErrInvalidInput,
		},
		{
			name:      "no statements",
			cfg:       func(cfg *config.Config) { cfg.Statements = nil },
			args:      []string{"Person"},
			errSubstr: "no statements",
		},
		{
			name:  "struct without table",
			args:  []string{"Address"},
			errIs: querygen.ErrNoTable,
		},
		{
			name:  "select-by-id without table",
			cfg:   func(cfg *config.Config) { cfg.Statements = []string{"select-by-id"} },
			args:  []string{"Address"},
			errIs: querygen.ErrNoTable,
		},
		{
			name:      "missing struct",
			args:      []string{"Missing"},
			errSubstr: "struct not found",
		},
		{
			name:      "missing source",
			cfg:       func(cfg *config.Config) { cfg.Source = filepath.Join(cfg.Source, "nope") },
			args:      []string{"Person"},
			errSubstr: "reading source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(dir)
			if tt.cfg != nil {
				tt.cfg(cfg)
			}

			_, err := run(t, NewGenerateCommand(), cfg, tt.args...)
			require.Error(t, err)
			if tt.errSubstr != "" {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestGenerateCommand_no_tables(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, NewGenerateCommand(), newConfig(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no structs with table metadata")
}

func TestListCommand(t *testing.T) {
	dir := testutil.SetupModelDir(t)

	out, err := run(t, NewListCommand(), newConfig(dir))
	require.NoError(t, err)

	// Headers are upper-cased by the table style.
	for _, want := range []string{"struct", "table", "columns", "primary key"} {
		assert.Contains(t, strings.ToLower(out), want)
	}
	for _, want := range []string{
		"Person", "people", "id, name",
		"Order", "orders", "order_id, total",
		"Address", "street",
		"(3 structs)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestListCommand_primary_key_without_column(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.go"), []byte(`package model

type Tag struct {
	Id    int64  `+"`pk:\"\"`"+`
	Label string `+"`db:\"label\"`"+`
}

type Note struct {
	Text string `+"`db:\"text\"`"+`
}
`), 0o600))

	out, err := run(t, NewListCommand(), newConfig(dir))
	require.NoError(t, err)

	var tagRow, noteRow string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Tag"):
			tagRow = line
		case strings.Contains(line, "Note"):
			noteRow = line
		}
	}
	assert.Contains(t, tagRow, "(no column)")
	assert.NotEmpty(t, noteRow)
	assert.NotContains(t, noteRow, "(no column)")
}

func TestListCommand_empty(t *testing.T) {
	out, err := run(t, NewListCommand(), newConfig(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "(0 structs)\n", out)
}

func TestNewVersionCommand(t *testing.T) {
	out, err := run(t, NewVersionCommand("1.2.3"), newConfig("."))
	require.NoError(t, err)
	assert.Equal(t, "querygen v1.2.3\n", out)
}

func TestCommandMetadata(t *testing.T) {
	for _, cmd := range []*cobra.Command{
		NewGenerateCommand(),
		NewListCommand(),
		NewVersionCommand("test"),
	} {
		assert.NotEmpty(t, cmd.Use)
		assert.NotEmpty(t, cmd.Short)
		assert.NotEmpty(t, cmd.Long)
	}
	assert.Contains(t, NewGenerateCommand().Aliases, "gen")
}
