package wlsrest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDetailStatuses(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{400, ErrBadRequest},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{405, ErrMethodNotAllowed},
		{406, ErrNotAcceptable},
		{503, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			detail := fmt.Sprintf("Detail for status %d.", tt.status)
			err := Classify(tt.status, []byte(`{"status": `+fmt.Sprint(tt.status)+`, "detail": "`+detail+`"}`))

			var wlsErr *Error
			require.ErrorAs(t, err, &wlsErr)
			assert.Equal(t, tt.status, wlsErr.StatusCode)
			assert.Equal(t, detail, wlsErr.Detail)
			assert.Equal(t, detail, err.Error())
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, IsStatus(err, tt.status))
		})
	}
}

func TestClassifyDetailStatusesFailLoud(t *testing.T) {
	for _, status := range []int{400, 403, 404, 405, 406, 503} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			err := Classify(status, []byte("<html>Error</html>"))
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, status, decodeErr.StatusCode)

			err = Classify(status, []byte(`{"status": 400}`))
			require.ErrorAs(t, err, &decodeErr)
			assert.ErrorIs(t, err, ErrMalformedDocument)

			var wlsErr *Error
			assert.False(t, errors.As(err, &wlsErr))
		})
	}
}

func TestClassifyUnauthorized(t *testing.T) {
	for _, body := range []string{"", "<html><body>Unauthorized</body></html>", `{"detail": "ignored"}`} {
		err := Classify(401, []byte(body))

		var wlsErr *Error
		require.ErrorAs(t, err, &wlsErr)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Empty(t, wlsErr.Detail)
		assert.Equal(t, "unauthorized (status 401)", err.Error())
	}
}

func TestClassifyServerError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "json detail", body: `{"detail": "Something broke"}`, want: "Something broke"},
		{name: "plain text", body: "Internal Server Error", want: "Internal Server Error"},
		{name: "json array", body: `["a"]`, want: `["a"]`},
		{name: "empty", body: "", want: "internal server error (status 500)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(500, []byte(tt.body))
			assert.ErrorIs(t, err, ErrServerError)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestClassifyServerErrorWithoutDetail(t *testing.T) {
	err := Classify(500, []byte(`{"status": 500}`))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 500, decodeErr.StatusCode)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestClassifyUnknownStatus(t *testing.T) {
	for _, status := range []int{402, 409, 502, 507} {
		err := Classify(status, []byte(`{"detail": "ignored"}`))

		assert.ErrorIs(t, err, ErrUnknownStatus)
		assert.Equal(t, fmt.Sprintf("An unknown error occured. Got status code: %d", status), err.Error())
		assert.True(t, IsStatus(err, status))
	}
}

func TestClassifyNonStringDetail(t *testing.T) {
	err := Classify(400, []byte(`{"detail": ["a", "b"]}`))
	assert.Equal(t, "[a b]", err.Error())
}

func TestClientSideErrors(t *testing.T) {
	attrErr := error(&AttributeError{Object: "AdminServer", Attr: "bogus"})
	assert.Equal(t, "'AdminServer' object has no attribute 'bogus'", attrErr.Error())
	assert.ErrorIs(t, attrErr, ErrAttributeNotFound)
	assert.NotErrorIs(t, attrErr, ErrKeyNotFound)

	keyErr := error(&KeyError{Key: "bogus"})
	assert.Equal(t, `key "bogus" not found`, keyErr.Error())
	assert.ErrorIs(t, keyErr, ErrKeyNotFound)

	iterErr := error(&NotIterableError{Object: "AdminServer"})
	assert.Equal(t, "'AdminServer' object is not iterable", iterErr.Error())
	assert.ErrorIs(t, iterErr, ErrNotIterable)
}

func TestIsStatus(t *testing.T) {
	err := fmt.Errorf("navigating: %w", Classify(404, []byte(`{"detail": "gone"}`)))
	assert.True(t, IsStatus(err, 404))
	assert.False(t, IsStatus(err, 400))
	assert.False(t, IsStatus(errors.New("boom"), 404))
}
