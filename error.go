package gemd

import "fmt"

// Error pairs an underlying error with the status code that should be
// reported for it.
type Error struct {
	Err    error
	Status Code
}

func (e Error) Error() string {
	return fmt.Sprintf("Status %d: %v", int(e.Status), e.Err)
}

func (e Error) Unwrap() error {
	return e.Err
}
