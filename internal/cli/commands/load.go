package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/glushkov/querygen"
	"github.com/glushkov/querygen/internal/config"
	"github.com/glushkov/querygen/internal/source"
)

// loadStructs reads struct declarations from a Go file or a package
// directory.
func loadStructs(ctx context.Context, path string) ([]source.Struct, error) {
	log := config.Logger(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	var structs []source.Struct
	if info.IsDir() {
		structs, err = source.ExtractFromDir(path)
	} else {
		structs, err = source.ExtractFromFile(path)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("read source", "path", path, "dir", info.IsDir(), "structs", len(structs))
	return structs, nil
}

// describeStructs converts the named struct, or every struct with table
// metadata when name is empty.
func describeStructs(ctx context.Context, structs []source.Struct, name, pkgPath string) ([]querygen.Entity, error) {
	log := config.Logger(ctx)

	if name != "" {
		entity, err := source.Describe(structs, name, pkgPath)
		if err != nil {
			return nil, err
		}
		return []querygen.Entity{entity}, nil
	}

	var out []querygen.Entity
	for _, st := range structs {
		entity, err := source.Describe(structs, st.Name, pkgPath)
		if err != nil {
			return nil, err
		}
		if entity.Table == "" {
			log.Debug("skipping struct without table", "struct", st.Name, "pos", st.Pos.String())
			continue
		}
		out = append(out, entity)
	}
	return out, nil
}
