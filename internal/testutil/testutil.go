// Package testutil provides testing utilities and helpers for client tests.
package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/GriffinCanCode/wlsrest/transport"
	"github.com/stretchr/testify/mock"
)

// MockDoer is a mock implementation of transport.Doer for testing.
type MockDoer struct {
	mock.Mock
}

// Do mocks the Do method.
func (m *MockDoer) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Response), args.Error(1)
}

// NewMockDoer creates a new mock doer that answers the bootstrap GET of the
// given host with root as the root resource document.
func NewMockDoer(t *testing.T, host string, root string) *MockDoer {
	t.Helper()
	m := new(MockDoer)

	m.On("Do", mock.Anything, MatchRequest(http.MethodGet, host+"/management/weblogic/latest")).
		Return(JSONResponse(http.StatusOK, root), nil).
		Maybe()

	return m
}

// MatchRequest matches a request by method and URL.
func MatchRequest(method, url string) interface{} {
	return mock.MatchedBy(func(req *transport.Request) bool {
		return req.Method == method && req.URL == url
	})
}

// JSONResponse creates a response with a JSON content type.
func JSONResponse(status int, body string) *transport.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return &transport.Response{StatusCode: status, Header: h, Body: []byte(body)}
}

// EmptyResponse creates a response without a body.
func EmptyResponse(status int) *transport.Response {
	return &transport.Response{StatusCode: status, Header: http.Header{}}
}
