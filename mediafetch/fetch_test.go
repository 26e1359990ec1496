package mediafetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func imageServer(t *testing.T, contentType string, status int, body []byte) (*httptest.Server, *Fetcher) {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	client := srv.Client()
	t.Cleanup(func() {
		client.CloseIdleConnections()
		srv.Close()
	})
	return srv, New(WithHTTPClient(client), WithMaxBytes(8))
}

func TestFetchImage(t *testing.T) {
	t.Parallel()
	srv, f := imageServer(t, "image/png; charset=binary", http.StatusOK, []byte{1, 2, 3})
	img, err := f.FetchImage(context.Background(), srv.URL+"/cat.png")
	require.NoError(t, err)
	assert.Equal(t, Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}, img)
}

func TestFetchImage_noContentType(t *testing.T) {
	t.Parallel()
	srv, f := imageServer(t, "", http.StatusOK, []byte{9})
	img, err := f.FetchImage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, img.Data)
}

func TestFetchImage_errors(t *testing.T) {
	t.Parallel()
	t.Run("http scheme", func(t *testing.T) {
		t.Parallel()
		_, err := New().FetchImage(context.Background(), "http://example.com/a.png")
		require.ErrorIs(t, err, ErrUnsafeScheme)
	})
	t.Run("bad url", func(t *testing.T) {
		t.Parallel()
		_, err := New().FetchImage(context.Background(), "https://exa mple.com/%zz")
		require.Error(t, err)
	})
	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		srv, f := imageServer(t, "text/html", http.StatusOK, []byte("<p>"))
		_, err := f.FetchImage(context.Background(), srv.URL)
		require.ErrorIs(t, err, ErrUnsupportedType)
	})
	t.Run("too large", func(t *testing.T) {
		t.Parallel()
		srv, f := imageServer(t, "image/jpeg", http.StatusOK, make([]byte, 9))
		_, err := f.FetchImage(context.Background(), srv.URL)
		require.ErrorIs(t, err, ErrBodyTooLarge)
	})
	t.Run("status", func(t *testing.T) {
		t.Parallel()
		srv, f := imageServer(t, "image/jpeg", http.StatusNotFound, nil)
		_, err := f.FetchImage(context.Background(), srv.URL)
		require.ErrorIs(t, err, ErrFetchFailed)
		assert.Contains(t, err.Error(), "404")
	})
}
