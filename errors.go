package querygen

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown       ErrCode = ""
	ErrCodeConfiguration ErrCode = "ErrConfiguration"
	ErrCodeExtraction    ErrCode = "ErrExtraction"
	ErrCodeResolution    ErrCode = "ErrResolution"
)

/*
Each error belongs to one of three kinds. Use the kind variables to branch on
the kind, and the finer variables to branch on the exact circumstance:

	if errors.Is(err, querygen.ErrExtraction) {
		// Any extraction failure.
	}
	if errors.Is(err, querygen.ErrNull) {
		// Specifically a null column value.
	}

Errors returned by this package can't be compared via `==` because they may
include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.
*/
var (
	ErrConfiguration = Err{Code: ErrCodeConfiguration, Cause: errors.New(`invalid entity configuration`)}
	ErrExtraction    = Err{Code: ErrCodeExtraction, Cause: errors.New(`failed to extract values`)}
	ErrResolution    = Err{Code: ErrCodeResolution, Cause: errors.New(`failed to resolve metadata`)}

	// Configuration.
	ErrNoTable      = Err{Code: ErrCodeConfiguration, Cause: errNoTable}
	ErrInvalidInput = Err{Code: ErrCodeConfiguration, Cause: errInvalidInput}

	// Extraction.
	ErrNull   = Err{Code: ErrCodeExtraction, Cause: errNull}
	ErrAccess = Err{Code: ErrCodeExtraction, Cause: errAccess}

	// Resolution.
	ErrNoPrimaryKey     = Err{Code: ErrCodeResolution, Cause: errNoPrimaryKey}
	ErrPrimaryKeyColumn = Err{Code: ErrCodeResolution, Cause: errPrimaryKeyColumn}
)

var (
	errNoTable          = errors.New(`table metadata is missing`)
	errInvalidInput     = errors.New(`invalid input`)
	errNull             = errors.New(`column value is null`)
	errAccess           = errors.New(`field value is not accessible`)
	errNoPrimaryKey     = errors.New(`no field is marked as primary key`)
	errPrimaryKeyColumn = errors.New(`primary key field has no column metadata`)
	errValuerChain      = errors.New(`driver.Valuer returned another driver.Valuer`)
)

// Describes an error returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}
	msg := `querygen error`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != "" {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

/*
Implement a hidden interface in "errors". A kind variable such as
`ErrExtraction` has its own cause, so matching against it falls through to the
code comparison and succeeds for every error of that kind.
*/
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	if !ok || err.Code != self.Code {
		return false
	}
	return err.Cause == nil || isKindCause(err.Cause) || errors.Is(self.Cause, err.Cause)
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

func isKindCause(cause error) bool {
	return cause == ErrConfiguration.Cause ||
		cause == ErrExtraction.Cause ||
		cause == ErrResolution.Cause
}
