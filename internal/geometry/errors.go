package geometry

import "fmt"

// MalformedInputError reports missing or invalid raw geometry.
// Index is -1 when the problem concerns the collection as a whole.
type MalformedInputError struct {
	Collection string
	Index      int
	Reason     string
}

func (e *MalformedInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed input: %s: %s", e.Collection, e.Reason)
	}
	return fmt.Sprintf("malformed input: %s[%d]: %s", e.Collection, e.Index, e.Reason)
}

func malformed(collection string, index int, format string, args ...interface{}) error {
	return &MalformedInputError{Collection: collection, Index: index, Reason: fmt.Sprintf(format, args...)}
}
