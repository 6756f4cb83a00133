package qless

import "fmt"

// InputError reports that Solve's arguments were rejected at the
// boundary, before any search began: a wrong-length tile list, a
// non-letter or uppercase tile character, or a negative deadline
// (spec.md §7). Unsolvable input is not an InputError — that comes
// back as SolveResult{Success: false}, not an error.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("qless: invalid input: %s", e.Message)
}

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}
