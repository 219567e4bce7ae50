package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type _EchoRequest struct {
	Value int `json:"value"`
}

func TestMapPostDecodeFailure(t *testing.T) {
	app := http.NewServeMux()
	called := false
	MapPost(app, "/v1/echo", func(req _EchoRequest) Result {
		called = true
		return OK(req)
	})

	// a body that fails to decode must not reach the handler
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/echo", strings.NewReader("{not json")))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, called)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest("POST", "/v1/echo", strings.NewReader(`{"value": 3}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}
