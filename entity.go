package querygen

import (
	"github.com/pkg/errors"
)

/*
Describes how a type maps to a table. Usually obtained by calling `Describe()`,
but can also be constructed by hand or generated from source code, which avoids
reflection entirely. All statement builders are methods on `Entity`.

Descriptors are plain values and are never cached or mutated by this package.
*/
type Entity struct {
	// Fully-qualified type identifier, used in error messages.
	Name string

	// Resolved table name. Never empty in a valid descriptor.
	Table string

	// Every declared field, in declaration order, including fields without
	// column metadata. Those are excluded from all statements but still
	// participate in primary key resolution.
	Fields []Field
}

/*
Metadata of one declared field. `Column` is meaningful only when `HasColumn` is
true.
*/
type Field struct {
	Name       string
	Column     string
	HasColumn  bool
	PrimaryKey bool

	// Path to the field from the root struct, for `reflect.Value.FieldByIndex`.
	// Empty in descriptors that were not produced by reflection.
	Index []int
}

/*
Returns the column-mapped fields in declaration order. This is the
`FieldDescriptor` sequence: one entry per field carrying column metadata.
*/
func (self Entity) Columns() []Field {
	var out []Field
	for _, field := range self.Fields {
		if field.HasColumn {
			out = append(out, field)
		}
	}
	return out
}

// Returns the column names in declaration order.
func (self Entity) ColumnNames() []string {
	var out []string
	for _, field := range self.Fields {
		if field.HasColumn {
			out = append(out, field.Column)
		}
	}
	return out
}

/*
Resolves the primary key column. Fields are scanned in declaration order; when
several are marked, the last one wins. A marked field without column metadata
is a resolution error, as is the absence of any marked field.
*/
func (self Entity) PrimaryKeyColumn() (string, error) {
	field, err := self.primaryKeyField()
	if err != nil {
		return "", err
	}
	return field.Column, nil
}

func (self Entity) primaryKeyField() (Field, error) {
	index := -1
	for i, field := range self.Fields {
		if field.PrimaryKey {
			index = i
		}
	}

	if index < 0 {
		return Field{}, ErrNoPrimaryKey.
			while(`resolving primary key`).
			because(errors.WithMessagef(errNoPrimaryKey, `type %v`, self.Name))
	}

	field := self.Fields[index]
	if !field.HasColumn {
		return Field{}, ErrPrimaryKeyColumn.
			while(`resolving primary key`).
			because(errors.WithMessagef(errPrimaryKeyColumn, `field %q of type %v`, field.Name, self.Name))
	}
	return field, nil
}

func (self Entity) validate() error {
	if self.Table == "" {
		return ErrNoTable.
			while(`resolving table name`).
			because(errors.WithMessagef(errNoTable, `type %v`, self.Name))
	}
	return nil
}
