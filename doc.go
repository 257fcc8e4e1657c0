/*
Query generator: derives basic CRUD SQL text from annotated Go structs.
Generates statements; does NOT execute them, and does not use bind parameters.
Values are embedded as literals without escaping, so the output must only be
used with trusted data.

Key Features

• Five statement kinds: SELECT-all, SELECT-by-id, INSERT, UPDATE, DELETE. See
`SelectAll()`, `SelectById()`, `Insert()`, `Update()`, `Delete()`.

• Declarative metadata in struct tags; no registration step.

• Explicit descriptors. `Describe()` turns a type into an `Entity`, and every
statement is also available as a method on `Entity`, which can be built without
reflection.

• Ordered values. `Extract()` returns `Values`, an ordered sequence of columns
with their literals, so INSERT column and value lists always line up.

• Inspectable errors. See `ErrConfiguration`, `ErrExtraction`, `ErrResolution`.

• Stateless. Nothing is cached; every function is safe for concurrent use.

Metadata Rules

1. A type must carry table metadata: either a `Table` marker field, optionally
naming the table via the `table` tag, or a `TableName() string` method. Without
an explicit name, the table is named after the fully-qualified type name.
Example:

	type Person struct {
		querygen.Table `table:"people"`
		Id   int64  `db:"person_id" pk:""`
		Name string `db:""`
	}

2. Fields with a `db` tag are columns, in declaration order. The column name is
the tag value, or the field name when the tag value is empty. Fields without
`db`, or with `db:"-"`, are excluded from all statements.

3. The field with a `pk` tag is the primary key. It must also carry a `db` tag.
When several fields are marked, the last one wins.

4. Fields of embedded structs are treated as part of the enclosing struct.

Literal Rules

Strings and byte slices are wrapped in single quotes. Numbers and booleans are
rendered unquoted. Anything else is rendered unquoted in its natural textual
form, via `fmt.Sprint`. `driver.Valuer` implementations such as
`sql.NullString` are converted first. Null values are not supported and produce
`ErrNull`.

Ids given to `SelectById` and `Delete` are rendered by the same rules, then
always wrapped in single quotes. A nil or null id is `ErrInvalidInput`.

Worked Example

	querygen.SelectAll(Person{})
	// SELECT person_id, Name FROM people;

	querygen.SelectById(Person{}, 5)
	// SELECT person_id, Name FROM people WHERE person_id = '5';

	querygen.Insert(Person{Id: 5, Name: "Alice"})
	// INSERT INTO people (person_id, Name) VALUES (5, 'Alice');

	querygen.Delete(Person{}, 5)
	// DELETE FROM people WHERE person_id = '5';

Note that `Update()` has no WHERE clause and targets every row; `UpdateById()`
scopes the update by the instance's primary key.
*/
package querygen
