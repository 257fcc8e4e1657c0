package querygen

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

/*
Kind of generated statement. Used by `Entity.Build()` and by tools that choose
statements by name.
*/
type Statement uint8

const (
	StatementSelectAll Statement = iota + 1
	StatementSelectById
	StatementInsert
	StatementUpdate
	StatementUpdateById
	StatementDelete
)

var statementNames = [...]string{
	StatementSelectAll:  `select-all`,
	StatementSelectById: `select-by-id`,
	StatementInsert:     `insert`,
	StatementUpdate:     `update`,
	StatementUpdateById: `update-by-id`,
	StatementDelete:     `delete`,
}

func (self Statement) String() string {
	if int(self) < len(statementNames) && statementNames[self] != "" {
		return statementNames[self]
	}
	return fmt.Sprintf(`Statement(%d)`, uint8(self))
}

// Parses a statement name such as "select-all". Case-insensitive.
func ParseStatement(name string) (Statement, error) {
	for i, known := range statementNames {
		if known != "" && strings.EqualFold(known, name) {
			return Statement(i), nil
		}
	}
	return 0, ErrInvalidInput.
		while(`parsing statement name`).
		because(errors.WithMessagef(errInvalidInput, `unknown statement %q`, name))
}

// Reports whether the statement carries instance values.
func (self Statement) NeedsValues() bool {
	return self == StatementInsert || self == StatementUpdate || self == StatementUpdateById
}

/*
Generates:

	SELECT <col1>, <col2> FROM <table>;

Columns are listed in declaration order.
*/
func SelectAll(typ interface{}) (string, error) {
	entity, err := Describe(typ)
	if err != nil {
		return "", err
	}
	return entity.SelectAll()
}

/*
Generates:

	SELECT <col1>, <col2> FROM <table> WHERE <pk> = '<id>';

The id is always single-quoted, whatever its kind. Pointers and `driver.Valuer`
ids are rendered by their underlying value, like column values. A nil or null id
is `ErrInvalidInput`.
*/
func SelectById(typ interface{}, id interface{}) (string, error) {
	entity, err := Describe(typ)
	if err != nil {
		return "", err
	}
	return entity.SelectById(id)
}

/*
Generates:

	INSERT INTO <table> (<col1>, <col2>) VALUES (<val1>, <val2>);
*/
func Insert(instance interface{}) (string, error) {
	entity, vals, err := describeAndExtract(instance)
	if err != nil {
		return "", err
	}
	return entity.Insert(vals)
}

/*
Generates:

	UPDATE <table> SET <col1> = <val1>, <col2> = <val2>;

Note the absence of a WHERE clause: the statement targets every row of the
table. Use `UpdateById()` to target one row.
*/
func Update(instance interface{}) (string, error) {
	entity, vals, err := describeAndExtract(instance)
	if err != nil {
		return "", err
	}
	return entity.Update(vals)
}

/*
Generates:

	UPDATE <table> SET <col1> = <val1>, <col2> = <val2> WHERE <pk> = <pk val>;

The primary key value is taken from the instance and rendered like any other
literal.
*/
func UpdateById(instance interface{}) (string, error) {
	entity, vals, err := describeAndExtract(instance)
	if err != nil {
		return "", err
	}
	return entity.UpdateById(vals)
}

/*
Generates:

	DELETE FROM <table> WHERE <pk> = '<id>';

The id is always single-quoted, whatever its kind. Pointers and `driver.Valuer`
ids are rendered by their underlying value, like column values. A nil or null id
is `ErrInvalidInput`.
*/
func Delete(typ interface{}, id interface{}) (string, error) {
	entity, err := Describe(typ)
	if err != nil {
		return "", err
	}
	return entity.Delete(id)
}

// Generates a SELECT-all statement. See `SelectAll()`.
func (self Entity) SelectAll() (string, error) {
	err := self.validate()
	if err != nil {
		return "", err
	}

	buf := append([]byte(nil), `SELECT `...)
	buf = self.appendColumns(buf)
	buf = append(buf, ` FROM `...)
	buf = append(buf, self.Table...)
	buf = append(buf, `;`...)
	return bytesToMutableString(buf), nil
}

// Generates a SELECT-by-id statement. See `SelectById()`.
func (self Entity) SelectById(id interface{}) (string, error) {
	err := self.validate()
	if err != nil {
		return "", err
	}
	pk, err := self.PrimaryKeyColumn()
	if err != nil {
		return "", err
	}

	buf := append([]byte(nil), `SELECT `...)
	buf = self.appendColumns(buf)
	buf = append(buf, ` FROM `...)
	buf = append(buf, self.Table...)
	buf, err = appendWhereId(buf, pk, id)
	if err != nil {
		return "", err
	}
	return bytesToMutableString(buf), nil
}

// Generates an INSERT statement from previously extracted values.
func (self Entity) Insert(vals Values) (string, error) {
	err := self.validate()
	if err != nil {
		return "", err
	}

	buf := append([]byte(nil), `INSERT INTO `...)
	buf = append(buf, self.Table...)
	buf = append(buf, ` (`...)
	buf = vals.appendNames(buf)
	buf = append(buf, `) VALUES (`...)
	buf = vals.appendLiterals(buf)
	buf = append(buf, `);`...)
	return bytesToMutableString(buf), nil
}

// Generates an unscoped UPDATE statement. See `Update()`.
func (self Entity) Update(vals Values) (string, error) {
	err := self.validate()
	if err != nil {
		return "", err
	}

	buf := self.appendUpdate(nil, vals)
	buf = append(buf, `;`...)
	return bytesToMutableString(buf), nil
}

// Generates an UPDATE statement scoped by primary key. See `UpdateById()`.
func (self Entity) UpdateById(vals Values) (string, error) {
	err := self.validate()
	if err != nil {
		return "", err
	}
	pk, err := self.PrimaryKeyColumn()
	if err != nil {
		return "", err
	}
	literal, ok := vals.Get(pk)
	if !ok {
		return "", ErrResolution.
			while(`building update`).
			because(errors.Errorf(`no value for primary key column %q of type %v`, pk, self.Name))
	}

	buf := self.appendUpdate(nil, vals)
	buf = append(buf, ` WHERE `...)
	buf = append(buf, pk...)
	buf = append(buf, ` = `...)
	buf = literal.appendSql(buf)
	buf = append(buf, `;`...)
	return bytesToMutableString(buf), nil
}

// Generates a DELETE statement. See `Delete()`.
func (self Entity) Delete(id interface{}) (string, error) {
	err := self.validate()
	if err != nil {
		return "", err
	}
	pk, err := self.PrimaryKeyColumn()
	if err != nil {
		return "", err
	}

	buf := append([]byte(nil), `DELETE FROM `...)
	buf = append(buf, self.Table...)
	buf, err = appendWhereId(buf, pk, id)
	if err != nil {
		return "", err
	}
	return bytesToMutableString(buf), nil
}

/*
Generates the given statement. `id` is used by the by-id statements and `vals`
by the value-carrying ones; either may be nil when unused.
*/
func (self Entity) Build(stmt Statement, id interface{}, vals Values) (string, error) {
	switch stmt {
	case StatementSelectAll:
		return self.SelectAll()
	case StatementSelectById:
		return self.SelectById(id)
	case StatementInsert:
		return self.Insert(vals)
	case StatementUpdate:
		return self.Update(vals)
	case StatementUpdateById:
		return self.UpdateById(vals)
	case StatementDelete:
		return self.Delete(id)
	default:
		return "", ErrInvalidInput.
			while(`building statement`).
			because(errors.WithMessagef(errInvalidInput, `unknown statement %v`, stmt))
	}
}

func (self Entity) appendColumns(buf []byte) []byte {
	first := true
	for _, field := range self.Fields {
		if !field.HasColumn {
			continue
		}
		if !first {
			buf = append(buf, `, `...)
		}
		first = false
		buf = append(buf, field.Column...)
	}
	return buf
}

func (self Entity) appendUpdate(buf []byte, vals Values) []byte {
	buf = append(buf, `UPDATE `...)
	buf = append(buf, self.Table...)
	buf = append(buf, ` SET `...)
	return vals.appendAssignments(buf)
}

func appendWhereId(buf []byte, pk string, id interface{}) ([]byte, error) {
	literal, err := idLiteral(id)
	if err != nil {
		return nil, err
	}

	buf = append(buf, ` WHERE `...)
	buf = append(buf, pk...)
	buf = append(buf, ` = `...)
	buf = appendDelimited(buf, `'`, literal.Text, `'`)
	buf = append(buf, `;`...)
	return buf, nil
}

func idLiteral(id interface{}) (Literal, error) {
	if id == nil {
		return Literal{}, ErrInvalidInput.
			while(`rendering id`).
			because(errors.WithMessage(errInvalidInput, `id is nil`))
	}
	literal, err := rvalLiteral(reflect.ValueOf(id))
	if err != nil {
		return Literal{}, ErrInvalidInput.
			while(`rendering id`).
			because(errors.WithMessagef(errInvalidInput, `id %T: %v`, id, err))
	}
	return literal, nil
}

/*
Table metadata is resolved before values are read, so a misconfigured type is
reported as such even when its instance would also fail extraction.
*/
func describeAndExtract(instance interface{}) (Entity, Values, error) {
	entity, err := Describe(instance)
	if err != nil {
		return Entity{}, nil, err
	}
	vals, err := Extract(instance)
	if err != nil {
		return Entity{}, nil, err
	}
	return entity, vals, nil
}
