package wlsrest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selfDescribing = `{
	"name": "ManagedServer-1",
	"links": [
		{"rel": "parent", "href": "http://wls/edit/servers"},
		{"rel": "self", "href": "http://wls/edit/servers/ManagedServer-1"}
	],
	"items": []
}`

func TestInterpretGetNeverWraps(t *testing.T) {
	session := new(MockSession)

	got, err := Interpret(session, http.MethodGet, http.StatusOK, []byte(selfDescribing))
	require.NoError(t, err)

	doc, ok := got.(*Document)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, []string{"name", "links", "items"}, doc.Keys())

	got, err = Interpret(session, http.MethodGet, http.StatusOK, []byte(`{}`))
	require.NoError(t, err)
	assert.IsType(t, &Document{}, got)
}

func TestInterpretMutations(t *testing.T) {
	session := new(MockSession)

	tests := []struct {
		name     string
		method   string
		status   int
		body     string
		wantName string
		wantURL  string
		wantNil  bool
		wantRaw  any
	}{
		{name: "no content", method: http.MethodDelete, status: 204, body: "", wantNil: true},
		{name: "empty object", method: http.MethodPost, status: 200, body: `{}`, wantNil: true},
		{name: "empty array", method: http.MethodPost, status: 200, body: `[]`, wantNil: true},
		{name: "null", method: http.MethodPost, status: 200, body: `null`, wantNil: true},
		{name: "false", method: http.MethodPost, status: 200, body: `false`, wantNil: true},
		{
			name: "self link", method: http.MethodPost, status: 201, body: selfDescribing,
			wantName: "ManagedServer-1", wantURL: "http://wls/edit/servers/ManagedServer-1",
		},
		{
			name: "job link", method: http.MethodPost, status: 202,
			body:     `{"name": "_7_shutdown", "links": [{"rel": "job", "href": "http://wls/jobs/7"}, {"rel": "self", "href": "http://wls/other"}]}`,
			wantName: "_7_shutdown", wantURL: "http://wls/jobs/7",
		},
		{
			name: "delete job", method: http.MethodDelete, status: 202,
			body:     `{"name": "job", "links": [{"rel": "job", "href": "http://wls/jobs/8"}]}`,
			wantName: "job", wantURL: "http://wls/jobs/8",
		},
		{name: "array", method: http.MethodPost, status: 200, body: `["a"]`, wantRaw: []any{"a"}},
		{name: "string", method: http.MethodPost, status: 200, body: `"ok"`, wantRaw: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpret(session, tt.method, tt.status, []byte(tt.body))
			require.NoError(t, err)

			switch {
			case tt.wantNil:
				assert.Nil(t, got)
			case tt.wantRaw != nil:
				assert.Equal(t, tt.wantRaw, got)
			default:
				obj, ok := got.(*Object)
				require.True(t, ok, "got %T", got)
				assert.Equal(t, tt.wantName, obj.Name())
				assert.Equal(t, tt.wantURL, obj.URL())
			}
		})
	}
}

func TestInterpretReturnsDocumentWhenNotSelfDescribing(t *testing.T) {
	session := new(MockSession)

	tests := []struct {
		name string
		body string
	}{
		{name: "no links", body: `{"name": "x", "state": "RUNNING"}`},
		{name: "no self or job link", body: `{"name": "x", "links": [{"rel": "parent", "href": "http://wls/p"}]}`},
		{name: "no name", body: `{"links": [{"rel": "self", "href": "http://wls/x"}]}`},
		{name: "links not an array", body: `{"name": "x", "links": "self"}`},
		{name: "malformed link", body: `{"name": "x", "links": ["self"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpret(session, http.MethodPost, http.StatusOK, []byte(tt.body))
			require.NoError(t, err)
			assert.IsType(t, &Document{}, got)
		})
	}
}

func TestInterpretErrors(t *testing.T) {
	session := new(MockSession)

	got, err := Interpret(session, http.MethodGet, http.StatusNotFound, []byte(`{"detail": "Not found: bogus"}`))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Not found: bogus", err.Error())

	_, err = Interpret(session, http.MethodPost, http.StatusOK, []byte("<html/>"))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, http.StatusOK, decodeErr.StatusCode)

	session.AssertExpectations(t)
}
