package wlsrest

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Session is the round-trip capability resources and actions navigate
// through. *Client implements it.
type Session interface {
	// Get returns the decoded body of url, never wrapped in an *Object.
	Get(ctx context.Context, url string, opts Options) (any, error)
	// Post returns the interpreted result of a POST to url.
	Post(ctx context.Context, url string, preferAsync bool, opts Options) (any, error)
	// Delete returns the interpreted result of a DELETE on url.
	Delete(ctx context.Context, url string, preferAsync bool, opts Options) (any, error)
}

// Object is a lazily navigated view of a remote resource. It stores only its
// identity; members are resolved against a fresh GET of its URL.
//
// Resolved link, action and item members are memoized and later lookups of
// the same name skip the network. Concurrent first access is not
// linearizable: racing lookups may both fetch, and the last write wins.
type Object struct {
	name    string
	url     string
	session Session

	mu   sync.Mutex
	memo map[string]Member
}

// NewObject binds a resource to session. The URL never changes afterwards.
func NewObject(session Session, name, url string) *Object {
	return &Object{
		name:    name,
		url:     url,
		session: session,
		memo:    make(map[string]Member),
	}
}

// Name returns the resource name.
func (o *Object) Name() string { return o.name }

// URL returns the resource URL.
func (o *Object) URL() string { return o.url }

func (o *Object) String() string {
	return fmt.Sprintf("%s (%s)", o.name, o.url)
}

// Attr resolves the member called name. Document keys are walked in wire
// order and the first match wins:
//
//   - links: an action link matches its title, any other link its rel.
//   - items: an item matches its name and leads to its self link.
//   - any other key matches itself and yields the raw value.
//
// A miss returns *AttributeError.
func (o *Object) Attr(ctx context.Context, name string) (Member, error) {
	if m, ok := o.memoized(name); ok {
		return m, nil
	}

	doc, err := o.fetch(ctx)
	if err != nil {
		return Member{}, err
	}

	m, found, err := o.resolve(doc, name)
	if err != nil {
		return Member{}, err
	}
	if !found {
		return Member{}, &AttributeError{Object: o.name, Attr: name}
	}

	if m.Kind != MemberValue {
		o.remember(name, m)
	}
	return m, nil
}

// Get resolves key like Attr, reporting a miss as *KeyError. It is the way to
// reach items whose names are awkward identifiers, such as "myWebapp#1.2.3".
func (o *Object) Get(ctx context.Context, key string) (Member, error) {
	m, err := o.Attr(ctx, key)
	var attrErr *AttributeError
	if errors.As(err, &attrErr) {
		return Member{}, &KeyError{Key: key}
	}
	return m, err
}

// Resource resolves name and requires it to be a resource.
func (o *Object) Resource(ctx context.Context, name string) (*Object, error) {
	m, err := o.Attr(ctx, name)
	if err != nil {
		return nil, err
	}
	if m.Kind != MemberResource {
		return nil, o.wrongKind(name, MemberResource, m.Kind)
	}
	return m.Resource, nil
}

// Action resolves name and requires it to be an action.
func (o *Object) Action(ctx context.Context, name string) (*Action, error) {
	m, err := o.Attr(ctx, name)
	if err != nil {
		return nil, err
	}
	if m.Kind != MemberAction {
		return nil, o.wrongKind(name, MemberAction, m.Kind)
	}
	return m.Action, nil
}

// Value resolves name and requires it to be a plain field.
func (o *Object) Value(ctx context.Context, name string) (any, error) {
	m, err := o.Attr(ctx, name)
	if err != nil {
		return nil, err
	}
	if m.Kind != MemberValue {
		return nil, o.wrongKind(name, MemberValue, m.Kind)
	}
	return m.Value, nil
}

// Path follows a chain of resource members, e.g. Path(ctx, "serverRuntimes",
// "AdminServer", "applicationRuntimes").
func (o *Object) Path(ctx context.Context, names ...string) (*Object, error) {
	cur := o
	for _, name := range names {
		m, err := cur.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if m.Kind != MemberResource {
			return nil, cur.wrongKind(name, MemberResource, m.Kind)
		}
		cur = m.Resource
	}
	return cur, nil
}

// Dir lists every resolvable member name in document order. Nothing is
// memoized.
func (o *Object) Dir(ctx context.Context) ([]string, error) {
	doc, err := o.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range doc.Fields() {
		switch f.Key {
		case "links":
			links, err := parseLinks(f.Value)
			if err != nil {
				return nil, err
			}
			for _, l := range links {
				names = append(names, l.MemberName())
			}
		case "items":
			items, err := parseItems(f.Value)
			if err != nil {
				return nil, err
			}
			for _, it := range items {
				names = append(names, it.Name)
			}
		default:
			names = append(names, f.Key)
		}
	}
	return names, nil
}

// Items fetches the resource and returns a fresh sequence over its
// collection items in document order. A resource without an "items" field
// returns *NotIterableError; an empty one yields an empty sequence.
func (o *Object) Items(ctx context.Context) (*Items, error) {
	doc, err := o.fetch(ctx)
	if err != nil {
		return nil, err
	}

	items, ok, err := doc.Items()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotIterableError{Object: o.name}
	}

	objects := make([]*Object, 0, len(items))
	for _, it := range items {
		href, err := it.SelfLink()
		if err != nil {
			return nil, err
		}
		objects = append(objects, NewObject(o.session, it.Name, href))
	}
	return newItems(objects), nil
}

// Delete deletes the resource.
func (o *Object) Delete(ctx context.Context, preferAsync bool, opts Options) (any, error) {
	return o.session.Delete(ctx, o.url, preferAsync, opts)
}

// Create posts to the resource with opts forwarded unchanged. Use it with a
// prepared payload, e.g. Options{JSON: map[string]any{"name": "ms1"}}.
func (o *Object) Create(ctx context.Context, preferAsync bool, opts Options) (any, error) {
	return o.session.Post(ctx, o.url, preferAsync, opts)
}

// Update posts fields as the JSON payload. No fields posts an empty object.
func (o *Object) Update(ctx context.Context, preferAsync bool, fields map[string]any) (any, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	return o.session.Post(ctx, o.url, preferAsync, Options{JSON: fields})
}

func (o *Object) fetch(ctx context.Context) (*Document, error) {
	v, err := o.session.Get(ctx, o.url, Options{})
	if err != nil {
		return nil, err
	}
	switch doc := v.(type) {
	case *Document:
		return doc, nil
	case nil:
		return NewDocument(), nil
	default:
		return nil, fmt.Errorf("%w: %s returned %T, want a JSON object", ErrMalformedDocument, o.url, v)
	}
}

func (o *Object) resolve(doc *Document, name string) (Member, bool, error) {
	for _, f := range doc.Fields() {
		switch f.Key {
		case "links":
			list, err := linkList(f.Value)
			if err != nil {
				return Member{}, false, err
			}
			for _, raw := range list {
				l, err := parseLink(raw)
				if err != nil {
					return Member{}, false, err
				}
				if l.MemberName() != name {
					continue
				}
				if l.IsAction() {
					return Member{Kind: MemberAction, Name: name, Action: NewAction(o.session, name, l.Href)}, true, nil
				}
				return Member{Kind: MemberResource, Name: name, Resource: NewObject(o.session, name, l.Href)}, true, nil
			}

		case "items":
			list, err := itemList(f.Value)
			if err != nil {
				return Member{}, false, err
			}
			for _, raw := range list {
				it, err := parseItem(raw)
				if err != nil {
					return Member{}, false, err
				}
				if it.Name != name {
					continue
				}
				href, err := it.SelfLink()
				if err != nil {
					return Member{}, false, err
				}
				return Member{Kind: MemberResource, Name: name, Resource: NewObject(o.session, name, href)}, true, nil
			}

		default:
			if f.Key == name {
				return Member{Kind: MemberValue, Name: name, Value: f.Value}, true, nil
			}
		}
	}
	return Member{}, false, nil
}

func (o *Object) memoized(name string) (Member, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	m, ok := o.memo[name]
	return m, ok
}

func (o *Object) remember(name string, m Member) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.memo == nil {
		o.memo = make(map[string]Member)
	}
	o.memo[name] = m
}

func (o *Object) wrongKind(name string, want, got MemberKind) error {
	return fmt.Errorf("%w: '%s' member '%s' is a %s, not a %s", ErrWrongKind, o.name, name, got, want)
}
