package scene

import "fmt"

// GroupReferenceError reports a sprinkler or connector whose group id does not
// resolve to a pipe, or a connector whose group disagrees with the sprinkler
// it attaches to.
type GroupReferenceError struct {
	Kind    string // "sprinkler" or "connector"
	Ref     string // sprinkler label or connector index
	GroupID int
	Detail  string
}

func (e *GroupReferenceError) Error() string {
	return fmt.Sprintf("group reference error: %s %s references group %d: %s", e.Kind, e.Ref, e.GroupID, e.Detail)
}

// CardinalityMismatchError reports a connector count that differs from the
// sprinkler count.
type CardinalityMismatchError struct {
	Sprinklers int
	Connectors int
}

func (e *CardinalityMismatchError) Error() string {
	return fmt.Sprintf("cardinality mismatch: %d sprinklers but %d connectors", e.Sprinklers, e.Connectors)
}
