package include

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircularInclude indicates that the include chain revisited a path.
	ErrCircularInclude = errors.New("circular include")
	// ErrFileNotFound indicates a missing include target.
	ErrFileNotFound = errors.New("include file not found")
	// ErrMaxDepthExceeded indicates that the recursion depth limit was hit.
	ErrMaxDepthExceeded = errors.New("max include depth exceeded")
)

// CircularIncludeError carries the ordered include chain from the first
// occurrence of the repeated path through the repeat.
type CircularIncludeError struct {
	Chain []string
}

func (e *CircularIncludeError) Error() string {
	return fmt.Sprintf("circular include: %s", strings.Join(e.Chain, " -> "))
}

func (e *CircularIncludeError) Unwrap() error {
	return ErrCircularInclude
}

// FileNotFoundError carries the resolved path of a missing include target.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("include file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// MaxDepthExceededError carries the depth limit and the include target that
// exceeded it.
type MaxDepthExceededError struct {
	Path  string
	Limit int
}

func (e *MaxDepthExceededError) Error() string {
	return fmt.Sprintf("max include depth %d exceeded at %s", e.Limit, e.Path)
}

func (e *MaxDepthExceededError) Unwrap() error {
	return ErrMaxDepthExceeded
}
