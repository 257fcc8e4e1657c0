package querygen

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mitranim/refut"
	"github.com/pkg/errors"
)

const (
	tagTable      = `table`
	tagColumn     = `db`
	tagPrimaryKey = `pk`
)

var tableRtype = reflect.TypeOf(Table{})
var tableNamerRtype = reflect.TypeOf((*TableNamer)(nil)).Elem()
var valuerRtype = reflect.TypeOf((*driver.Valuer)(nil)).Elem()

/*
Accepts a `reflect.Type`, a value or a pointer, possibly nil, and returns the
underlying struct type.
*/
func structRtype(typ interface{}, while string) (reflect.Type, error) {
	rtype, ok := typ.(reflect.Type)
	if !ok {
		rtype = reflect.TypeOf(typ)
	}
	if rtype == nil {
		return nil, ErrInvalidInput.while(while).because(errors.WithMessage(errInvalidInput, `expected a struct type, got nil`))
	}

	rtype = refut.RtypeDeref(rtype)
	if rtype.Kind() != reflect.Struct {
		return nil, ErrInvalidInput.while(while).because(errors.WithMessagef(errInvalidInput, `expected a struct type, got %v`, rtype))
	}
	return rtype, nil
}

func describeRtype(rtype reflect.Type) (Entity, error) {
	entity := Entity{Name: rtypeQualifiedName(rtype)}

	table, ok, err := rtypeTableName(rtype)
	if err != nil {
		return entity, ErrNoTable.
			while(`resolving table name`).
			because(errors.WithMessagef(errNoTable, `type %v: %v`, entity.Name, err))
	}
	if !ok {
		return entity, ErrNoTable.
			while(`resolving table name`).
			because(errors.WithMessagef(errNoTable, `type %v`, entity.Name))
	}
	if table == "" {
		table = entity.Name
	}
	entity.Table = table
	entity.Fields = rtypeFields(rtype)
	return entity, nil
}

/*
Table metadata comes from a `TableName()` method or from a `Table` marker field.
The second return value reports whether the type carries table metadata at all.
*/
func rtypeTableName(rtype reflect.Type) (string, bool, error) {
	ptrRtype := reflect.PtrTo(rtype)
	if ptrRtype.Implements(tableNamerRtype) {
		name, err := callTableName(reflect.New(rtype).Interface().(TableNamer))
		return name, true, err
	}

	var name string
	var found bool
	traverseStructRtype(rtype, nil, func(sfield reflect.StructField, _ []int) {
		if !found && sfield.Type == tableRtype {
			name, found = TagTable(sfield.Tag), true
		}
	})
	return name, found, nil
}

/*
The method is called on a zero value. A method promoted through a nil embedded
pointer panics there; that is reported as an error.
*/
func callTableName(namer TableNamer) (name string, err error) {
	defer func() {
		if val := recover(); val != nil {
			err = errors.Errorf(`TableName() failed on a zero value: %v`, val)
		}
	}()
	return namer.TableName(), nil
}

func rtypeFields(rtype reflect.Type) []Field {
	var fields []Field
	traverseStructRtype(rtype, nil, func(sfield reflect.StructField, index []int) {
		if sfield.Type == tableRtype {
			return
		}
		field := TagField(sfield.Name, sfield.Tag)
		field.Index = index
		fields = append(fields, field)
	})
	return fields
}

/*
Visits fields in declaration order. Embedded structs without column metadata are
treated as part of the enclosing struct. Unlike the usual struct traversal, this
also visits private fields, so that reading their values can be reported as an
access problem instead of silently dropping the column.
*/
func traverseStructRtype(rtype reflect.Type, path []int, fun func(reflect.StructField, []int)) {
	for i := 0; i < rtype.NumField(); i++ {
		sfield := rtype.Field(i)
		index := append(path[:len(path):len(path)], i)

		_, hasColumn := sfield.Tag.Lookup(tagColumn)
		if sfield.Anonymous && !hasColumn &&
			sfield.Type.Kind() == reflect.Struct && sfield.Type != tableRtype {
			traverseStructRtype(sfield.Type, index, fun)
			continue
		}

		fun(sfield, index)
	}
}

func rtypeQualifiedName(rtype reflect.Type) string {
	if rtype.Name() != "" {
		return DefaultTableName(rtype.PkgPath(), rtype.Name())
	}
	return rtype.String()
}

/*
Converts a field value to a literal. Pointers and interfaces are followed;
`driver.Valuer` takes priority over the value's own kind and is followed at most
once. Any nil along the way is a null column value.
*/
func rvalLiteral(rval reflect.Value) (Literal, error) {
	valued := false
	for {
		if refut.IsRkindNilable(rval.Kind()) && rval.IsNil() {
			return Literal{}, errNull
		}

		if rval.Type().Implements(valuerRtype) {
			if valued {
				return Literal{}, errors.WithMessagef(errValuerChain, `%v`, rval.Type())
			}
			if !rval.CanInterface() {
				return Literal{}, errAccess
			}
			valued = true
			val, err := rval.Interface().(driver.Valuer).Value()
			if err != nil {
				return Literal{}, err
			}
			if val == nil {
				return Literal{}, errNull
			}
			rval = reflect.ValueOf(val)
			continue
		}

		if rval.Kind() == reflect.Ptr || rval.Kind() == reflect.Interface {
			rval = rval.Elem()
			continue
		}
		break
	}

	switch rval.Kind() {
	case reflect.String:
		return StringLiteral(rval.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntLiteral(rval.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return UintLiteral(rval.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return FloatLiteral(rval.Float(), rval.Type().Bits()), nil
	case reflect.Bool:
		return BoolLiteral(rval.Bool()), nil
	case reflect.Slice:
		if rval.Type().Elem().Kind() == reflect.Uint8 {
			return StringLiteral(string(rval.Bytes())), nil
		}
	}

	if !rval.CanInterface() {
		return Literal{}, errAccess
	}
	return RawLiteral(fmt.Sprint(rval.Interface())), nil
}

func appendDelimited(buf []byte, prefix, infix, suffix string) []byte {
	buf = append(buf, prefix...)
	buf = append(buf, infix...)
	buf = append(buf, suffix...)
	return buf
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe as long as the slice is not modified
afterwards; every caller here passes a freshly built buffer.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}
