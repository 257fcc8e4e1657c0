// Package testutil provides helpers shared by command tests.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ModelSource is a Go file declaring a few structs with query metadata.
const ModelSource = `package model

import "github.com/glushkov/querygen"

type Person struct {
	querygen.Table ` + "`table:\"people\"`" + `
	Id   int64  ` + "`db:\"id\" pk:\"\"`" + `
	Name string ` + "`db:\"name\"`" + `
}

type Order struct {
	Id    int64 ` + "`db:\"order_id\" pk:\"\"`" + `
	Total int64 ` + "`db:\"total\"`" + `
}

func (Order) TableName() string { return "orders" }

type Address struct {
	Street string ` + "`db:\"street\"`" + `
}
`

// SetupModelDir writes ModelSource into a temporary package directory and
// returns the directory.
func SetupModelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "model.go"), []byte(ModelSource), 0o600); err != nil {
		t.Fatalf("failed to create model.go: %v", err)
	}
	return dir
}
