package querygen

import (
	"strconv"
)

// Kind of a `Literal`. Determines how the literal is rendered.
type Kind uint8

const (
	// Natural textual form of a value that has no dedicated kind, such as
	// `time.Time`. Rendered unquoted.
	KindRaw Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindNull
)

func (self Kind) String() string {
	switch self {
	case KindRaw:
		return `raw`
	case KindString:
		return `string`
	case KindInt:
		return `int`
	case KindUint:
		return `uint`
	case KindFloat:
		return `float`
	case KindBool:
		return `bool`
	case KindNull:
		return `null`
	default:
		return `Kind(` + strconv.Itoa(int(self)) + `)`
	}
}

/*
SQL text representation of one value. Only `KindString` is quoted. The text is
embedded verbatim: quote characters inside strings are NOT escaped, so literals
must never be built from untrusted input.
*/
type Literal struct {
	Kind Kind
	Text string
}

func StringLiteral(val string) Literal { return Literal{Kind: KindString, Text: val} }

func IntLiteral(val int64) Literal {
	return Literal{Kind: KindInt, Text: strconv.FormatInt(val, 10)}
}

func UintLiteral(val uint64) Literal {
	return Literal{Kind: KindUint, Text: strconv.FormatUint(val, 10)}
}

func FloatLiteral(val float64, bitSize int) Literal {
	return Literal{Kind: KindFloat, Text: strconv.FormatFloat(val, 'f', -1, bitSize)}
}

func BoolLiteral(val bool) Literal {
	return Literal{Kind: KindBool, Text: strconv.FormatBool(val)}
}

func NullLiteral() Literal { return Literal{Kind: KindNull} }

func RawLiteral(text string) Literal { return Literal{Kind: KindRaw, Text: text} }

// Renders the literal as SQL text.
func (self Literal) String() string {
	return bytesToMutableString(self.appendSql(nil))
}

func (self Literal) appendSql(buf []byte) []byte {
	switch self.Kind {
	case KindString:
		return appendDelimited(buf, `'`, self.Text, `'`)
	case KindNull:
		return append(buf, `NULL`...)
	default:
		return append(buf, self.Text...)
	}
}
