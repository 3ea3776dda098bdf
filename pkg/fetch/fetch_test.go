package fetch

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pathpirate/pathpirate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tcl/bin/halshow.tcl":
			_, _ = w.Write([]byte("#!/usr/bin/wish\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New("", 2*time.Second)

	data, err := f.Fetch(context.Background(), srv.URL+"/tcl/bin/halshow.tcl")
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/wish\n", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/tcl/bin/missing.tcl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetch))
	assert.Equal(t, http.StatusNotFound, errors.GetErrorDetails(err)["status"])
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := New("", time.Second).Fetch(context.Background(), "://nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetch))
}

func TestOnline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	assert.True(t, New(addr, time.Second).Online(context.Background()))
	assert.True(t, New("", time.Second).Online(context.Background()), "no probe means assume online")

	require.NoError(t, ln.Close())
	assert.False(t, New(addr, time.Second).Online(context.Background()))
}
