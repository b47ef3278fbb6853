package pageloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/site/home.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<h1>Home</h1>")
	})
	mux.HandleFunc("/site/docs/intro.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<p>Intro</p>")
	})
	mux.HandleFunc("/site/broken.html", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad(t *testing.T) {
	a := assert.New(t)
	srv := newServer(t)
	l, err := New(srv.URL + "/site")
	require.NoError(t, err)
	tests := []struct {
		page string
		res  Page
		fail bool
	}{
		{"home", Page{"home", "<h1>Home</h1>"}, false},
		{"docs/intro", Page{"docs/intro", "<p>Intro</p>"}, false},
		{"missing", Page{"error", "An error occurred:<br>network response was not ok: 404 Not Found"}, true},
		{"broken", Page{"error", "An error occurred:<br>network response was not ok: 500 Internal Server Error"}, true},
		{"../home", Page{"error", "An error occurred:<br>invalid page name: &#34;../home&#34;"}, true},
		{"error", Page{"error", "An error occurred:<br>network response was not ok: 404 Not Found"}, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			page, err := l.Load(context.Background(), test.page)
			a.Equal(test.res, page)
			a.Equal(test.fail, err != nil)
		})
	}
}

func TestFetchErrors(t *testing.T) {
	a := assert.New(t)
	srv := newServer(t)
	l, err := New(srv.URL + "/site/")
	require.NoError(t, err)

	_, err = l.Fetch(context.Background(), "missing")
	var se *StatusError
	if a.True(errors.As(err, &se)) {
		a.Equal(http.StatusNotFound, se.Code)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Fetch(ctx, "home")
	a.True(errors.Is(err, context.Canceled))

	small, err := New(srv.URL+"/site/", WithMaxSize(4))
	require.NoError(t, err)
	_, err = small.Fetch(context.Background(), "home")
	a.EqualError(err, "response is larger than 4 bytes")
}

func TestURL(t *testing.T) {
	a := assert.New(t)
	l, err := New("http://example.com/pages")
	require.NoError(t, err)
	tests := []struct {
		page string
		url  string
	}{
		{"home", "http://example.com/pages/home.html"},
		{"docs/intro", "http://example.com/pages/docs/intro.html"},
		{"", ""},
		{"/etc/passwd", ""},
		{"../secret", ""},
		{"a/./b", ""},
		{"a//b", ""},
		{"home?x=1", ""},
		{"home#top", ""},
		{"javascript:alert", ""},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			u, err := l.URL(test.page)
			if test.url == "" {
				a.True(errors.Is(err, ErrInvalidPage), "%v", err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.url, u)
			}
		})
	}
}

func TestNew(t *testing.T) {
	a := assert.New(t)
	_, err := New("pages/")
	a.Error(err)
	_, err = New("http://[::1")
	a.Error(err)
	l, err := New("http://example.com", WithHTTPClient(nil), WithLogger(nil), WithMaxSize(0))
	if a.NoError(err) {
		a.Equal(int64(DefaultMaxSize), l.maxSize)
		a.Equal(DefaultTimeout, l.client.Timeout)
	}
}

func TestLogging(t *testing.T) {
	a := assert.New(t)
	srv := newServer(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l, err := New(srv.URL+"/site", WithLogger(logger))
	require.NoError(t, err)

	_, _ = l.Load(context.Background(), "home")
	a.Contains(buf.String(), "finished loading page")
	a.Contains(buf.String(), "page=home")

	buf.Reset()
	_, _ = l.Load(context.Background(), "missing")
	a.Contains(buf.String(), "level=ERROR")
	a.Contains(buf.String(), "error loading page")
	a.Contains(buf.String(), "page=missing")
}

func TestFetchShared(t *testing.T) {
	a := assert.New(t)
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		fmt.Fprint(w, "shared")
	}))
	defer srv.Close()
	l, err := New(srv.URL)
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = l.Fetch(context.Background(), "page")
		}(i)
	}
	a.Eventually(func() bool { return atomic.LoadInt32(&hits) == 1 }, time.Second, time.Millisecond)
	time.Sleep(100 * time.Millisecond) // let the other callers join the request in flight.
	close(release)
	wg.Wait()

	a.Equal(int32(1), atomic.LoadInt32(&hits))
	for _, r := range results {
		a.Equal("shared", r)
	}
}

func TestFetchSharedCancel(t *testing.T) {
	a := assert.New(t)
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		fmt.Fprint(w, "shared")
	}))
	defer srv.Close()
	defer close(release)
	l, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := l.Fetch(ctx, "page")
		first <- err
	}()
	a.Eventually(func() bool { return atomic.LoadInt32(&hits) == 1 }, time.Second, time.Millisecond)

	type result struct {
		content string
		err     error
	}
	second := make(chan result, 1)
	go func() {
		content, err := l.Fetch(context.Background(), "page")
		second <- result{content, err}
	}()
	time.Sleep(100 * time.Millisecond) // let the second caller join the request in flight.

	cancel()
	select {
	case err := <-first:
		a.True(errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("canceled caller is still waiting")
	}

	release <- struct{}{}
	select {
	case res := <-second:
		a.NoError(res.err)
		a.Equal("shared", res.content)
	case <-time.After(time.Second):
		t.Fatal("second caller did not get the page")
	}
	a.Equal(int32(1), atomic.LoadInt32(&hits))
}
