package wlsrest

import (
	"context"
	"fmt"
)

// Action is an operation advertised by a resource through a link with
// rel "action". It holds no state beyond its identity.
type Action struct {
	name    string
	url     string
	session Session
}

// NewAction binds an action to session.
func NewAction(session Session, name, url string) *Action {
	return &Action{name: name, url: url, session: session}
}

// Name returns the action title.
func (a *Action) Name() string { return a.name }

// URL returns the URL the action posts to.
func (a *Action) URL() string { return a.url }

func (a *Action) String() string {
	return fmt.Sprintf("action %s (%s)", a.name, a.url)
}

// Call posts fields as the JSON payload, or {} when there are none, and
// returns the interpreted result.
func (a *Action) Call(ctx context.Context, preferAsync bool, fields map[string]any) (any, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	return a.session.Post(ctx, a.url, preferAsync, Options{JSON: fields})
}
