package sevenm24

import "fmt"

// InvalidLengthError reports a register block whose length does not match the
// fixed requirement of the 7M.24 type being decoded. This is a precondition
// violation in the caller's read geometry, not a transient fault: the decode
// of that field is aborted rather than producing a silently wrong value.
type InvalidLengthError struct {
	Type string // the 7M.24 type name, e.g. "T5"
	Want int
	Got  int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("sevenm24: type %s expects %d register word(s), got %d", e.Type, e.Want, e.Got)
}
