package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, GetJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, &out))
	assert.Equal(t, "ok", out.Name)
}

func TestGetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("  maintenance  "))
	}))
	defer srv.Close()

	err := GetJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, &struct{}{})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "maintenance", se.Body)
	assert.Contains(t, err.Error(), "503")
}

func TestGetJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	err := GetJSON(context.Background(), NewHTTPClient(time.Second), srv.URL, &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestGetJSON_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	err := GetJSON(context.Background(), NewHTTPClient(time.Second), addr, &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request")
}

func TestEncodeQuery(t *testing.T) {
	got := EncodeQuery(url.Values{
		"size":     {"10"},
		"geometry": {"POLYGON((1 2, 3 4))"},
		"q":        {"a+b"},
	})
	assert.Equal(t, "geometry=POLYGON%28%281%202%2C%203%204%29%29&q=a%2Bb&size=10", got)
}
