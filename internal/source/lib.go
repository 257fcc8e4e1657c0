package source

import (
	"go/ast"
	"go/token"
	"io"
	"strings"

	"github.com/glushkov/querygen"
	"github.com/pkg/errors"
)

// Import path that identifies the `querygen.Table` marker type.
const markerPkgPath = "github.com/glushkov/querygen"

// ErrNotFound is returned by Describe when no struct has the requested name.
var ErrNotFound = errors.New("struct not found")

// ExtractFromDir extracts struct info from every non-test go file in dir,
// in file name order, then declaration order.
//
// Unlike the compiler, this stops at the first file that fails to parse.
func ExtractFromDir(dir string) ([]Struct, error) {
	fset := token.NewFileSet()
	files, err := parseFromDir(fset, dir)
	if err != nil {
		return nil, err
	}
	return extractAll(fset, files), nil
}

// ExtractFromFile extracts struct info from the specified file.
func ExtractFromFile(path string) ([]Struct, error) {
	fset := token.NewFileSet()
	f, err := parseFromFile(fset, path)
	if err != nil {
		return nil, err
	}
	return extractAll(fset, []*ast.File{f}), nil
}

// ExtractFromReader extracts struct info from source read from r. The name is
// used in positions and error messages only.
func ExtractFromReader(name string, r io.Reader) ([]Struct, error) {
	fset := token.NewFileSet()
	f, err := parseFromReader(fset, name, r)
	if err != nil {
		return nil, err
	}
	return extractAll(fset, []*ast.File{f}), nil
}

// Methods may live in another file than their type, so they are attached
// only after every file has been read.
func extractAll(fset *token.FileSet, files []*ast.File) []Struct {
	var structs []Struct
	methods := map[string]string{}

	for _, f := range files {
		s, m := extractFromAst(fset, f)
		structs = append(structs, s...)
		for recv, table := range m {
			methods[recv] = table
		}
	}

	for i := range structs {
		table, ok := methods[structs[i].Name]
		structs[i].TableMethod = table
		structs[i].HasTableMethod = ok
	}
	return structs
}

// Find returns the struct with the given name.
func Find(structs []Struct, name string) (Struct, bool) {
	for _, st := range structs {
		if st.Name == name {
			return st, true
		}
	}
	return Struct{}, false
}

// Describe converts the named struct into a query descriptor. pkgPath is used
// for the default table name; when empty, the package name is used instead.
//
// The metadata rules match querygen.Describe. Embedded structs are flattened
// when they are declared among the given structs; embedded types from other
// packages contribute no columns. A struct without table metadata yields a
// descriptor with an empty table, which fails every statement with
// querygen.ErrNoTable.
func Describe(structs []Struct, name, pkgPath string) (querygen.Entity, error) {
	st, ok := Find(structs, name)
	if !ok {
		return querygen.Entity{}, errors.Wrapf(ErrNotFound, "describing %q", name)
	}

	if pkgPath == "" {
		pkgPath = st.Package
	}
	entity := querygen.Entity{Name: querygen.DefaultTableName(pkgPath, st.Name)}

	table, hasTable := st.TableMethod, st.HasTableMethod
	visit(structs, st, map[string]bool{}, func(field Field) {
		if isMarker(field) {
			if !hasTable {
				table, hasTable = querygen.TagTable(field.Tag), true
			}
			return
		}
		entity.Fields = append(entity.Fields, querygen.TagField(field.Name, field.Tag))
	})

	if hasTable {
		entity.Table = table
		if entity.Table == "" {
			entity.Table = entity.Name
		}
	}
	return entity, nil
}

func visit(structs []Struct, st Struct, seen map[string]bool, fun func(Field)) {
	seen[st.Name] = true
	defer delete(seen, st.Name)

	for _, field := range st.Fields {
		_, hasColumn := field.Tag.Lookup("db")
		if field.Embedded && !hasColumn && field.TypePkgPath == "" && !seen[field.TypeName] &&
			field.RawType == field.TypeName {
			if inner, ok := Find(structs, field.TypeName); ok {
				visit(structs, inner, seen, fun)
				continue
			}
		}
		fun(field)
	}
}

func isMarker(field Field) bool {
	return field.TypePkgPath == markerPkgPath && field.TypeName == "Table" && !strings.HasPrefix(field.RawType, "*")
}
