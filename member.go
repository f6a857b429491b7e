package wlsrest

import (
	"context"
	"fmt"
)

// MemberKind tags what a resolved member is.
type MemberKind int

const (
	// MemberValue is a plain document field.
	MemberValue MemberKind = iota
	// MemberResource is a link or collection item leading to another resource.
	MemberResource
	// MemberAction is a server-advertised operation.
	MemberAction
)

func (k MemberKind) String() string {
	switch k {
	case MemberValue:
		return "value"
	case MemberResource:
		return "resource"
	case MemberAction:
		return "action"
	default:
		return "unknown"
	}
}

// Member is a resolved member of a resource. Exactly one of Value, Resource
// and Action is meaningful, as selected by Kind.
type Member struct {
	Kind     MemberKind
	Name     string
	Value    any
	Resource *Object
	Action   *Action
}

// Object returns the member as a resource.
func (m Member) Object() (*Object, bool) {
	return m.Resource, m.Kind == MemberResource
}

// Invoke calls the member when it is an action.
func (m Member) Invoke(ctx context.Context, preferAsync bool, fields map[string]any) (any, error) {
	if m.Kind != MemberAction {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotCallable, m.Name, m.Kind)
	}
	return m.Action.Call(ctx, preferAsync, fields)
}

// String renders the value for plain members and the target otherwise.
func (m Member) String() string {
	switch m.Kind {
	case MemberResource:
		return m.Resource.String()
	case MemberAction:
		return m.Action.String()
	default:
		return fmt.Sprint(m.Value)
	}
}
