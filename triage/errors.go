package triage

import "fmt"

type unknownClassCodeError struct {
	code int
}

func (e *unknownClassCodeError) Error() string {
	return fmt.Sprintf("classifier returned unrecognized class code %d", e.code)
}

func errUnknownClassCode(code int) error {
	return &unknownClassCodeError{code: code}
}
