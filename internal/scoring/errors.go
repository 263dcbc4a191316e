package scoring

import (
	"errors"
	"fmt"
)

// ErrMalformedNumericAnswer se usa con errors.Is sobre un *ParseError.
var ErrMalformedNumericAnswer = errors.New("malformed numeric answer")

// ErrAmountOutOfRange es la causa de un *ParseError cuando el entero supera
// MaxInvestingAmount en valor absoluto.
var ErrAmountOutOfRange = errors.New("investing amount out of range")

// ParseError indica que una respuesta numerica no es un entero.
type ParseError struct {
	Category Category
	Answer   string
	Err      error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, ErrAmountOutOfRange) {
		return fmt.Sprintf("%s: %q exceeds %d", e.Category, e.Answer, MaxInvestingAmount)
	}
	return fmt.Sprintf("%s: %q is not an integer", e.Category, e.Answer)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedNumericAnswer
}
