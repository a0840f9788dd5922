package cmd

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrWrongArity     = errors.New("wrong number of arguments")
	ErrNotInteger     = errors.New("value is not an integer or out of range")
	ErrUnbalanced     = errors.New("unbalanced quotes")
)

// MultiError collects the failures of a batch run.
type MultiError []error

func (m MultiError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors:")
	for _, err := range m {
		b.WriteString("\n- " + err.Error())
	}
	return b.String()
}

func (m MultiError) Unwrap() []error {
	return m
}
