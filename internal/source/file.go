package source

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

func parseFromDir(fset *token.FileSet, dir string) ([]*ast.File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, errors.Wrapf(err, "listing go files in %s", dir)
	}
	sort.Strings(paths)

	files := make([]*ast.File, 0, len(paths))
	for _, path := range paths {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		f, err := parseFromFile(fset, path)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func parseFromFile(fset *token.FileSet, path string) (*ast.File, error) {
	f, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return f, nil
}

func parseFromReader(fset *token.FileSet, name string, r io.Reader) (*ast.File, error) {
	f, err := parser.ParseFile(fset, name, r, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", name)
	}
	return f, nil
}
