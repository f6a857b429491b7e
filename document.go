package wlsrest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// ErrMalformedDocument is returned when a response document does not have
// the shape the management API promises (links without rel, items without a
// self link, a non-object where an object is required).
var ErrMalformedDocument = errors.New("malformed document")

// Field is one top-level key of a Document.
type Field struct {
	Key   string
	Value any
}

// Document is a decoded JSON object that keeps its keys in wire order.
// Nested values are plain Go values (map[string]any, []any, float64, string,
// bool, nil). Duplicate keys are kept; lookups return the first one.
type Document struct {
	fields []Field
}

// NewDocument builds a Document from fields in the given order.
func NewDocument(fields ...Field) *Document {
	return &Document{fields: fields}
}

// Fields returns the top-level fields in wire order.
func (d *Document) Fields() []Field {
	if d == nil {
		return nil
	}
	return d.fields
}

// Keys returns the top-level keys in wire order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.Len())
	for _, f := range d.Fields() {
		keys = append(keys, f.Key)
	}
	return keys
}

// Len returns the number of top-level fields.
func (d *Document) Len() int {
	return len(d.Fields())
}

// Lookup returns the value of the first field named key.
func (d *Document) Lookup(key string) (any, bool) {
	for _, f := range d.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether the document has a field named key.
func (d *Document) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Name returns the "name" field when it is a string.
func (d *Document) Name() (string, bool) {
	v, ok := d.Lookup("name")
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

// Links parses the "links" field. A document without links yields nil.
func (d *Document) Links() ([]Link, error) {
	v, ok := d.Lookup("links")
	if !ok {
		return nil, nil
	}
	return parseLinks(v)
}

// Items parses the "items" field. The boolean reports whether the field is
// present at all, so an empty collection can be told apart from a resource
// that is not a collection.
func (d *Document) Items() ([]Item, bool, error) {
	v, ok := d.Lookup("items")
	if !ok {
		return nil, false, nil
	}
	items, err := parseItems(v)
	return items, true, err
}

// Map flattens the document into a map. Later duplicates are dropped.
func (d *Document) Map() map[string]any {
	m := make(map[string]any, d.Len())
	for _, f := range d.Fields() {
		if _, seen := m[f.Key]; !seen {
			m[f.Key] = f.Value
		}
	}
	return m
}

// UnmarshalJSON decodes a JSON object keeping its top-level key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	if !sonic.Valid(data) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedDocument)
	}

	root, err := ast.NewSearcher(string(data)).GetByPath()
	if err != nil {
		return err
	}
	if root.Type() != ast.V_OBJECT {
		return fmt.Errorf("%w: expected a JSON object", ErrMalformedDocument)
	}

	fields := make([]Field, 0, 8)
	var valueErr error
	err = root.ForEach(func(path ast.Sequence, node *ast.Node) bool {
		key := *path.Key
		value, err := node.Interface()
		if err != nil {
			valueErr = fmt.Errorf("decode %q: %w", key, err)
			return false
		}
		fields = append(fields, Field{Key: key, Value: value})
		return true
	})
	if err != nil {
		return err
	}
	if valueErr != nil {
		return valueErr
	}

	d.fields = fields
	return nil
}

// MarshalJSON encodes the document with its keys in order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := sonic.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := sonic.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Link is one entry of a document's "links" array.
type Link struct {
	Rel   string
	Href  string
	Title string
}

// IsAction reports whether the link advertises an invokable operation.
func (l Link) IsAction() bool {
	return l.Rel == "action"
}

// MemberName is the name the link resolves under: the title for actions,
// the relation otherwise.
func (l Link) MemberName() string {
	if l.IsAction() {
		return l.Title
	}
	return l.Rel
}

// Item is one entry of a collection's "items" array.
type Item struct {
	Name   string
	Links  []Link
	Fields map[string]any
}

// SelfLink returns the href of the item's self link.
func (it Item) SelfLink() (string, error) {
	for _, l := range it.Links {
		if l.Rel == "self" {
			return l.Href, nil
		}
	}
	return "", fmt.Errorf("%w: item %q has no self link", ErrMalformedDocument, it.Name)
}

func parseLink(v any) (Link, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Link{}, fmt.Errorf("%w: link is %T, want an object", ErrMalformedDocument, v)
	}
	rel, ok := m["rel"].(string)
	if !ok {
		return Link{}, fmt.Errorf("%w: link without rel", ErrMalformedDocument)
	}
	href, ok := m["href"].(string)
	if !ok {
		return Link{}, fmt.Errorf("%w: link %q without href", ErrMalformedDocument, rel)
	}

	l := Link{Rel: rel, Href: href}
	if title, ok := m["title"].(string); ok {
		l.Title = title
	} else if l.IsAction() {
		return Link{}, fmt.Errorf("%w: action link %q without title", ErrMalformedDocument, href)
	}
	return l, nil
}

func linkList(v any) ([]any, error) {
	list, ok := v.([]any)
	if !ok && v != nil {
		return nil, fmt.Errorf("%w: links is %T, want an array", ErrMalformedDocument, v)
	}
	return list, nil
}

func parseLinks(v any) ([]Link, error) {
	list, err := linkList(v)
	if err != nil {
		return nil, err
	}
	links := make([]Link, 0, len(list))
	for _, raw := range list {
		l, err := parseLink(raw)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, nil
}

func itemList(v any) ([]any, error) {
	list, ok := v.([]any)
	if !ok && v != nil {
		return nil, fmt.Errorf("%w: items is %T, want an array", ErrMalformedDocument, v)
	}
	return list, nil
}

func parseItem(v any) (Item, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return Item{}, fmt.Errorf("%w: item is %T, want an object", ErrMalformedDocument, v)
	}
	name, ok := m["name"].(string)
	if !ok {
		return Item{}, fmt.Errorf("%w: item without name", ErrMalformedDocument)
	}
	links, err := parseLinks(m["links"])
	if err != nil {
		return Item{}, fmt.Errorf("item %q: %w", name, err)
	}
	return Item{Name: name, Links: links, Fields: m}, nil
}

func parseItems(v any) ([]Item, error) {
	list, err := itemList(v)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(list))
	for _, raw := range list {
		it, err := parseItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// decodeBody decodes a response body. JSON objects become *Document, other
// JSON values are decoded with sonic, and an empty body yields nil.
func decodeBody(body []byte) (any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		doc := &Document{}
		if err := doc.UnmarshalJSON(trimmed); err != nil {
			return nil, err
		}
		return doc, nil
	}

	var v any
	if err := sonic.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// isEmpty reports whether a decoded body carries no content: null, an empty
// object or array, an empty string, zero or false.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case *Document:
		return t.Len() == 0
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	}
	return false
}
