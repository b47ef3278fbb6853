// Package pageloader fetches HTML fragments of a single-page site.
//
// A page named "home" is fetched from <base>/home.html. Load turns the result
// into the content and title of the page, or into an error page that can be
// shown instead of the content.
package pageloader

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"
)

const (
	// ErrorTitle is the title of the page shown when loading fails.
	ErrorTitle = "error"

	fragmentExt = ".html"
	errorPrefix = "An error occurred:<br>"
)

// ErrInvalidPage is returned for page names that can't be turned into a relative path.
var ErrInvalidPage = errors.New("invalid page name")

// StatusError is returned when the server responds with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "network response was not ok: " + e.Status
}

// Page is a loaded fragment.
type Page struct {
	Title   string
	Content string
}

// Loader fetches fragments relative to a base url.
// It's safe for concurrent use.
type Loader struct {
	base    *url.URL
	client  *http.Client
	logger  *slog.Logger
	maxSize int64
	group   singleflight.Group
}

// New returns a loader for pages under baseURL.
func New(baseURL string, opts ...Option) (*Loader, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("invalid base url %q: must be absolute", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		base:    base,
		client:  o.client,
		logger:  o.logger,
		maxSize: o.maxSize,
	}, nil
}

// URL returns the address of a page.
func (l *Loader) URL(page string) (string, error) {
	if page == "" || strings.ContainsAny(page, "?#\\") || strings.HasPrefix(page, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPage, page)
	}
	for _, segment := range strings.Split(page, "/") {
		if segment == ".." || segment == "." || segment == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidPage, page)
		}
	}
	ref, err := url.Parse(page + fragmentExt)
	if err != nil || ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPage, page)
	}
	return l.base.ResolveReference(ref).String(), nil
}

// Fetch returns the markup of a page.
// Concurrent calls for the same page share a single request. The shared request
// is not canceled with ctx, it is bounded by the client timeout instead:
// a caller that gives up gets ctx.Err(), and the others keep waiting.
func (l *Loader) Fetch(ctx context.Context, page string) (string, error) {
	u, err := l.URL(page)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ch := l.group.DoChan(u, func() (interface{}, error) {
		return l.fetch(context.WithoutCancel(ctx), u)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (l *Loader) fetch(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	if int64(len(data)) > l.maxSize {
		return "", fmt.Errorf("response is larger than %d bytes", l.maxSize)
	}
	return string(data), nil
}

// Load fetches a page. If that fails, the returned page
// has the "error" title and the escaped error message as its content,
// and the error is returned along with it.
func (l *Loader) Load(ctx context.Context, page string) (Page, error) {
	content, err := l.Fetch(ctx, page)
	if err != nil {
		l.logger.ErrorContext(ctx, "error loading page", "page", page, "error", err)
		return ErrorPage(err), err
	}
	l.logger.DebugContext(ctx, "finished loading page", "page", page, "size", len(content))
	return Page{Title: page, Content: content}, nil
}

// ErrorPage returns the page shown instead of a page that failed to load.
func ErrorPage(err error) Page {
	return Page{
		Title:   ErrorTitle,
		Content: errorPrefix + html.EscapeString(err.Error()),
	}
}
