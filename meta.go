package querygen

import (
	"reflect"

	"github.com/mitranim/refut"
)

/*
Marker for table metadata. Add it as a field, usually blank or embedded, and name
the table with the `table` tag:

	type Person struct {
		querygen.Table `table:"people"`
		Id   int64  `db:"person_id" pk:""`
		Name string `db:"name"`
	}

Without a `table` tag, or with an empty one, the table name defaults to the
fully-qualified type name, such as "github.com/acme/app/model.Person".
*/
type Table struct{}

/*
Alternative source of table metadata, compatible with the common `TableName()`
convention. The method is called on a zero value of the type and takes priority
over a `Table` marker field. Returning an empty string selects the default name.
*/
type TableNamer interface {
	TableName() string
}

/*
Derives the descriptor of a struct type from its metadata. The input may be a
`reflect.Type`, a value, or a pointer, including a nil typed pointer such as
`(*Person)(nil)`.

Fails with `ErrInvalidInput` for non-struct inputs and with `ErrNoTable` when the
type carries no table metadata; both are configuration errors.
*/
func Describe(typ interface{}) (Entity, error) {
	rtype, err := structRtype(typ, `describing entity`)
	if err != nil {
		return Entity{}, err
	}
	return describeRtype(rtype)
}

// Resolves the table name of the given type. See `Describe()`.
func TableName(typ interface{}) (string, error) {
	entity, err := Describe(typ)
	if err != nil {
		return "", err
	}
	return entity.Table, nil
}

/*
Resolves the column-mapped fields of the given type in declaration order. Does
not require table metadata.
*/
func Columns(typ interface{}) ([]Field, error) {
	rtype, err := structRtype(typ, `resolving columns`)
	if err != nil {
		return nil, err
	}
	return Entity{Fields: rtypeFields(rtype)}.Columns(), nil
}

/*
Resolves the primary key column of the given type. Does not require table
metadata. See `Entity.PrimaryKeyColumn()`.
*/
func PrimaryKeyColumn(typ interface{}) (string, error) {
	rtype, err := structRtype(typ, `resolving primary key`)
	if err != nil {
		return "", err
	}
	return Entity{Name: rtypeQualifiedName(rtype), Fields: rtypeFields(rtype)}.PrimaryKeyColumn()
}

/*
Derives field metadata from a field name and its struct tag:

	`db:"name"` column named "name"
	`db:""`     column named after the field
	`db:"-"`    no column metadata
	`pk:""`     primary key

The column name is the part of the `db` tag before the first comma. Used by
`Describe()`; exported for tools that read tags without reflection, such as
source code parsers.
*/
func TagField(name string, tag reflect.StructTag) Field {
	field := Field{Name: name}
	_, field.PrimaryKey = tag.Lookup(tagPrimaryKey)

	col, ok := tag.Lookup(tagColumn)
	if !ok || col == `-` {
		return field
	}

	field.HasColumn = true
	field.Column = refut.TagIdent(col)
	if field.Column == "" {
		field.Column = name
	}
	return field
}

/*
Reads table metadata from the tag of a `Table` marker field. Returns the
explicit table name, or an empty string when the default name applies.
*/
func TagTable(tag reflect.StructTag) string {
	return tag.Get(tagTable)
}

/*
Returns the default table name of a type: its fully-qualified identifier. The
package path may be empty for types that don't belong to a package.
*/
func DefaultTableName(pkgPath, typeName string) string {
	if pkgPath == "" {
		return typeName
	}
	return pkgPath + `.` + typeName
}
