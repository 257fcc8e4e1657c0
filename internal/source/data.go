// Package source reads struct definitions from Go source files and converts
// them into query descriptors, without compiling or loading the code.
package source

import (
	"go/token"
	"reflect"
)

// Struct records basic info about a struct type declared in Go source.
//
// For a declaration like this:
//
//	package model
//
//	type Person struct {
//		querygen.Table `table:"people"`
//		Id   int64  `db:"person_id" pk:""`
//		Name string `db:"name"`
//		Base
//	}
//
// the Struct is named "Person" in package "model", with four fields in
// declaration order. The marker field is recorded as embedded, with its type
// resolved to the querygen import path.
type Struct struct {
	Package string
	Name    string
	Fields  []Field
	Pos     token.Position

	// Set when a `TableName()` method with a constant result was found for
	// the type, with a value or pointer receiver.
	TableMethod    string
	HasTableMethod bool
}

// Field records one declared field. A declaration naming several fields,
// like `A, B int`, produces one Field per name.
type Field struct {
	Name     string
	Exported bool
	Embedded bool
	Tag      reflect.StructTag

	// Type expression as written, like "int64" or "*Base".
	RawType string

	// For selector types such as `querygen.Table`, the import path of the
	// package, resolved through the file's imports. Empty otherwise.
	TypePkgPath string
	TypeName    string
}
