package attachment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewResolver("https://files.example.ac.th/", time.Second)

	got, err := r.Resolve("doc 001.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.ac.th/d/doc%20001.pdf", got)

	_, err = r.Resolve("  ")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/d/exists" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewResolver(srv.URL, time.Second)

	assert.NoError(t, r.Check(context.Background(), "exists"))
	assert.Error(t, r.Check(context.Background(), "missing"))
}
