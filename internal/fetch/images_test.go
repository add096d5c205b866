package fetch

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchAllDecodesInOrder(t *testing.T) {
	red := pngBytes(t, color.NRGBA{R: 255, A: 255})
	blue := pngBytes(t, color.NRGBA{B: 255, A: 255})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/red.png":
			w.Write(red)
		case "/blue.png":
			w.Write(blue)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	f := NewFetcher(logger, WithHTTPClient(srv.Client()))

	got := f.FetchAll(context.Background(), []string{srv.URL + "/red.png", srv.URL + "/blue.png"})
	require.Len(t, got, 2)
	r0, _, _, _ := got[0].At(1, 1).RGBA()
	_, _, b1, _ := got[1].At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r0)
	assert.Equal(t, uint32(0xffff), b1)
}

func TestFetchAllSkipsFailures(t *testing.T) {
	ok := pngBytes(t, color.NRGBA{G: 255, A: 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write(ok)
		case "/broken.png":
			w.Write([]byte("definitely not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	logger, hook := test.NewNullLogger()
	f := NewFetcher(logger, WithHTTPClient(srv.Client()))

	got := f.FetchAll(context.Background(), []string{
		srv.URL + "/missing.png",
		srv.URL + "/ok.png",
		srv.URL + "/broken.png",
	})
	require.Len(t, got, 1, "only the decodable image survives")
	assert.NotEmpty(t, hook.Entries, "failures are logged, not returned")
}

func TestFetchAllUsesByteCache(t *testing.T) {
	var hits atomic.Int64
	ok := pngBytes(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(ok)
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	f := NewFetcher(logger, WithHTTPClient(srv.Client()))

	url := srv.URL + "/cached.png"
	require.Len(t, f.FetchAll(context.Background(), []string{url}), 1)
	require.Len(t, f.FetchAll(context.Background(), []string{url}), 1)
	assert.Equal(t, int64(1), hits.Load(), "second fetch should be served from cache")
}

func TestFetchAllCancelledContextDegrades(t *testing.T) {
	slow := pngBytes(t, color.NRGBA{A: 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write(slow)
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	f := NewFetcher(logger, WithHTTPClient(srv.Client()), WithTimeout(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := f.FetchAll(ctx, []string{srv.URL + "/slow.png"})
	assert.Empty(t, got, "cancellation yields an empty set, not an error")
}

func TestFetchAllEmptyInput(t *testing.T) {
	logger, _ := test.NewNullLogger()
	f := NewFetcher(logger)
	assert.Nil(t, f.FetchAll(context.Background(), nil))
}
