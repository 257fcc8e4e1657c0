package querygen

import (
	"reflect"

	"github.com/pkg/errors"
)

/*
Scans a struct, converting fields tagged with `db` into an ordered sequence of
`Values`. The input must be a struct or a non-nil struct pointer. Treats an
embedded struct as part of the enclosing struct. Does not require table
metadata.

Every column-mapped field must hold a value: nil pointers, interfaces, slices
and maps, as well as `driver.Valuer` implementations returning nil, fail with
`ErrNull`. Private fields of primitive kinds are readable; other private fields
fail with `ErrAccess`. Both are extraction errors.
*/
func Extract(instance interface{}) (Values, error) {
	rval := reflect.ValueOf(instance)
	if !rval.IsValid() {
		return nil, ErrInvalidInput.
			while(`extracting values`).
			because(errors.WithMessage(errInvalidInput, `expected a struct, got nil`))
	}
	for rval.Kind() == reflect.Ptr || rval.Kind() == reflect.Interface {
		if rval.IsNil() {
			return nil, ErrInvalidInput.
				while(`extracting values`).
				because(errors.WithMessagef(errInvalidInput, `expected a struct, got nil %v`, rval.Type()))
		}
		rval = rval.Elem()
	}

	rtype, err := structRtype(rval.Type(), `extracting values`)
	if err != nil {
		return nil, err
	}
	return extractFields(rval, rtypeQualifiedName(rtype), rtypeFields(rtype))
}

func extractFields(rval reflect.Value, typeName string, fields []Field) (Values, error) {
	var values Values

	for _, field := range fields {
		if !field.HasColumn {
			continue
		}

		literal, err := rvalLiteral(rval.FieldByIndex(field.Index))
		if err != nil {
			return nil, extractionErr(err, typeName, field)
		}
		values = append(values, Value{Column: field.Column, Literal: literal})
	}

	return values, nil
}

func extractionErr(cause error, typeName string, field Field) error {
	cause = errors.WithMessagef(cause, `field %q of type %v`, field.Name, typeName)
	base := ErrExtraction
	if errors.Is(cause, errNull) {
		base = ErrNull
	} else if errors.Is(cause, errAccess) {
		base = ErrAccess
	}
	return base.while(`extracting values`).because(cause)
}

/*
Ordered sequence of column values with utility methods for statement building.
Usually obtained by calling `Extract()`. Column names and literals are always
read from the same slice, so the Nth name corresponds to the Nth literal.
*/
type Values []Value

// One column with its literal.
type Value struct {
	Column  string
	Literal Literal
}

// Returns the column names.
func (self Values) Names() []string {
	var names []string
	for _, val := range self {
		names = append(names, val.Column)
	}
	return names
}

// Returns the literals.
func (self Values) Literals() []Literal {
	var literals []Literal
	for _, val := range self {
		literals = append(literals, val.Literal)
	}
	return literals
}

// Finds the literal of the given column.
func (self Values) Get(column string) (Literal, bool) {
	for _, val := range self {
		if val.Column == column {
			return val.Literal, true
		}
	}
	return Literal{}, false
}

/*
Returns comma-separated column names, suitable for an `insert` column list.
Example:

	vals := querygen.Values{{"one", querygen.IntLiteral(10)}, {"two", querygen.StringLiteral("x")}}

	vals.NamesString()

	// Output:
	`one, two`
*/
func (self Values) NamesString() string {
	return bytesToMutableString(self.appendNames(nil))
}

/*
Returns comma-separated literals, suitable for a `values` clause. Example:

	vals.LiteralsString()

	// Output:
	`10, 'x'`
*/
func (self Values) LiteralsString() string {
	return bytesToMutableString(self.appendLiterals(nil))
}

/*
Returns the string of assignments suitable for an `update set` clause. Example:

	vals.AssignmentsString()

	// Output:
	`one = 10, two = 'x'`
*/
func (self Values) AssignmentsString() string {
	return bytesToMutableString(self.appendAssignments(nil))
}

func (self Values) appendNames(buf []byte) []byte {
	for i, val := range self {
		if i > 0 {
			buf = append(buf, `, `...)
		}
		buf = append(buf, val.Column...)
	}
	return buf
}

func (self Values) appendLiterals(buf []byte) []byte {
	for i, val := range self {
		if i > 0 {
			buf = append(buf, `, `...)
		}
		buf = val.Literal.appendSql(buf)
	}
	return buf
}

func (self Values) appendAssignments(buf []byte) []byte {
	for i, val := range self {
		if i > 0 {
			buf = append(buf, `, `...)
		}
		buf = append(buf, val.Column...)
		buf = append(buf, ` = `...)
		buf = val.Literal.appendSql(buf)
	}
	return buf
}
