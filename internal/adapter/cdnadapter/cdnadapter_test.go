package cdnadapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jgivc/groupgallery/internal/config"
	"github.com/jgivc/groupgallery/internal/entity"
	"github.com/stretchr/testify/require"
)

const (
	testGroupID = "11111111-1111-1111-1111-111111111111"
	testHost    = "abc123.ucarecdn.com"
)

var nthRegexp = regexp.MustCompile(`/nth/(\d+)/$`)

// rewriteTransport sends every request to the test server regardless of the
// host baked into the file URL.
type rewriteTransport struct {
	target *url.URL
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host

	return http.DefaultTransport.RoundTrip(req)
}

func newTestAdapter(t *testing.T, workers int, handler http.HandlerFunc) *cdnAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	client := &http.Client{Transport: &rewriteTransport{target: target}}
	cfg := &config.FetcherConfig{Workers: workers, TimeoutSec: 1}
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	return NewCDNAdapterWithClient(client, cfg, log)
}

func nthIndex(t *testing.T, r *http.Request) int {
	t.Helper()

	m := nthRegexp.FindStringSubmatch(r.URL.Path)
	require.NotNil(t, m)

	var index int
	_, err := fmt.Sscanf(m[1], "%d", &index)
	require.NoError(t, err)

	return index
}

func TestFetchAllOrderAndLength(t *testing.T) {
	const count = 30

	adapter := newTestAdapter(t, 8, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)

		index := nthIndex(t, r)

		// Uneven latency so completion order differs from dispatch order.
		if index%3 == 0 {
			time.Sleep(20 * time.Millisecond)
		}

		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="photo-%d.JPG"`, index))
	})

	desc := &entity.GroupDescriptor{Host: testHost, GroupID: testGroupID, Count: count}
	entries := adapter.FetchAll(context.Background(), desc)

	require.Len(t, entries, count)
	for i, entry := range entries {
		require.Equal(t, i, entry.Index)
		require.Equal(t, fmt.Sprintf("photo-%d.JPG", i), entry.Name)
		require.Equal(t, "jpg", entry.Ext)
		require.Equal(t, desc.FileURL(i), entry.URL)
		require.False(t, entry.Placeholder)
	}
}

func TestFetchAllPlaceholderIsolation(t *testing.T) {
	const count = 5

	adapter := newTestAdapter(t, 3, func(w http.ResponseWriter, r *http.Request) {
		switch nthIndex(t, r) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 3:
			// Disposition header present but without a filename.
			w.Header().Set("Content-Disposition", "inline")
		default:
			w.Header().Set("Content-Disposition", `attachment; filename="doc.pdf"`)
		}
	})

	desc := &entity.GroupDescriptor{Host: testHost, GroupID: testGroupID, Count: count}
	entries := adapter.FetchAll(context.Background(), desc)

	require.Len(t, entries, count)

	for _, i := range []int{1, 3} {
		require.True(t, entries[i].Placeholder)
		require.Equal(t, fmt.Sprintf("File %d", i+1), entries[i].Name)
		require.Equal(t, "", entries[i].Ext)
	}

	for _, i := range []int{0, 2, 4} {
		require.False(t, entries[i].Placeholder)
		require.Equal(t, "doc.pdf", entries[i].Name)
		require.Equal(t, "pdf", entries[i].Ext)
	}
}

func TestFetchAllConcurrencyBound(t *testing.T) {
	const (
		count   = 40
		workers = 5
	)

	var inFlight, peak int64

	adapter := newTestAdapter(t, workers, func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inFlight, 1)
		defer atomic.AddInt64(&inFlight, -1)

		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}

		time.Sleep(10 * time.Millisecond)
		w.Header().Set("Content-Disposition", `inline; filename="a.png"`)
	})

	desc := &entity.GroupDescriptor{Host: testHost, GroupID: testGroupID, Count: count}
	entries := adapter.FetchAll(context.Background(), desc)

	require.Len(t, entries, count)
	require.LessOrEqual(t, atomic.LoadInt64(&peak), int64(workers))
}

func TestFetchAllUnreachableHost(t *testing.T) {
	cfg := &config.FetcherConfig{Workers: 2, TimeoutSec: 1}
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	adapter := NewCDNAdapterWithClient(&http.Client{Timeout: cfg.Timeout()}, cfg, log)

	desc := &entity.GroupDescriptor{Host: "127.0.0.1:1", GroupID: testGroupID, Count: 3}
	entries := adapter.FetchAll(context.Background(), desc)

	require.Len(t, entries, 3)
	for i, entry := range entries {
		require.True(t, entry.Placeholder)
		require.Equal(t, fmt.Sprintf("File %d", i+1), entry.Name)
	}
}

func TestExtractExt(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "report.PDF", expected: "pdf"},
		{name: "archive.tar.gz", expected: "gz"},
		{name: "noextension", expected: ""},
		{name: "trailing.dot.", expected: ""},
		{name: "File 3", expected: ""},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, extractExt(tc.name), tc.name)
	}
}
