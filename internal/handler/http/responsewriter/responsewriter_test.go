package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.Written())

	assert.Same(t, wrapped, Wrap(wrapped), "wrapping twice should reuse the writer")
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "status 200", statusCode: http.StatusOK},
		{name: "status 404", statusCode: http.StatusNotFound},
		{name: "status 502", statusCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			wrapped.WriteHeader(tt.statusCode)
			wrapped.WriteHeader(http.StatusTeapot)

			assert.Equal(t, tt.statusCode, wrapped.StatusCode())
			assert.Equal(t, tt.statusCode, rec.Code)
			assert.True(t, wrapped.Written())
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte("<html>"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = wrapped.Write([]byte("</html>"))
	require.NoError(t, err)

	assert.Equal(t, 13, wrapped.BytesWritten())
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, "<html></html>", rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, wrapped.Written())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	assert.Equal(t, rec, wrapped.Unwrap())
}
