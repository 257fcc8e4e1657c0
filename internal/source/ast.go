package source

import (
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"
)

func extractFromAst(fset *token.FileSet, f *ast.File) (structs []Struct, methods map[string]string) {
	pkg := f.Name.Name
	imports := fileImports(f)
	methods = map[string]string{}

	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}
			for _, spec := range decl.Specs {
				spec := spec.(*ast.TypeSpec)
				st, ok := spec.Type.(*ast.StructType)
				if !ok || st.Incomplete {
					continue
				}
				structs = append(structs, Struct{
					Package: pkg,
					Name:    spec.Name.Name,
					Fields:  extractFields(st, imports),
					Pos:     fset.Position(spec.Pos()),
				})
			}

		case *ast.FuncDecl:
			recv, table, ok := tableMethod(decl)
			if ok {
				methods[recv] = table
			}
		}
	}

	return
}

func extractFields(st *ast.StructType, imports map[string]string) []Field {
	fields := make([]Field, 0, len(st.Fields.List))

	for _, f := range st.Fields.List {
		var tag reflect.StructTag
		if f.Tag != nil {
			raw, err := strconv.Unquote(f.Tag.Value)
			if err == nil {
				tag = reflect.StructTag(raw)
			}
		}

		pkgPath, typeName := resolveType(f.Type, imports)
		base := Field{
			Tag:         tag,
			RawType:     types.ExprString(f.Type),
			TypePkgPath: pkgPath,
			TypeName:    typeName,
		}

		if len(f.Names) == 0 {
			base.Name = typeName
			base.Embedded = true
			base.Exported = ast.IsExported(typeName)
			fields = append(fields, base)
			continue
		}

		for _, name := range f.Names {
			field := base
			field.Name = name.Name
			field.Exported = name.IsExported()
			fields = append(fields, field)
		}
	}

	return fields
}

// Resolves `pkg.Name`, `*pkg.Name`, `Name` and `*Name` type expressions.
func resolveType(expr ast.Expr, imports map[string]string) (pkgPath, name string) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	switch expr := expr.(type) {
	case *ast.Ident:
		return "", expr.Name
	case *ast.SelectorExpr:
		if x, ok := expr.X.(*ast.Ident); ok {
			return imports[x.Name], expr.Sel.Name
		}
	}
	return "", ""
}

func fileImports(f *ast.File) map[string]string {
	out := map[string]string{}
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path[strings.LastIndex(path, "/")+1:]
		if spec.Name != nil {
			name = spec.Name.Name
		}
		out[name] = path
	}
	return out
}

/*
Recognizes a `TableName() string` method whose body is a single return of a
string constant, which is the only shape that can be evaluated statically.
*/
func tableMethod(decl *ast.FuncDecl) (recv, table string, ok bool) {
	if decl.Name.Name != "TableName" || decl.Recv == nil || len(decl.Recv.List) != 1 {
		return
	}
	if decl.Type.Params.NumFields() != 0 || decl.Type.Results.NumFields() != 1 || decl.Body == nil {
		return
	}

	_, recv = resolveType(decl.Recv.List[0].Type, nil)
	if recv == "" || len(decl.Body.List) != 1 {
		return
	}

	ret, isReturn := decl.Body.List[0].(*ast.ReturnStmt)
	if !isReturn || len(ret.Results) != 1 {
		return
	}
	lit, isLit := ret.Results[0].(*ast.BasicLit)
	if !isLit || lit.Kind != token.STRING {
		return
	}

	table, err := strconv.Unquote(lit.Value)
	if err != nil {
		return
	}
	return recv, table, true
}
