// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// BasePath is the fixed cache resource path appended to the host and context
// path.
const BasePath = "/aclAdmin/cache/"

// ListSuffix addresses the whole cache list.
const ListSuffix = "list"

var (
	ErrNoHost = errors.New("host is not set")
	// ErrStatus accompanies a non-2xx response. The response is still returned
	// so its body can be inspected.
	ErrStatus = errors.New("unexpected status")
)

// Response is the raw result of a GET: status, headers and the full body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Adapter issues GETs against <host><context path>/aclAdmin/cache/.
type Adapter struct {
	base   string
	client *retryablehttp.Client
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithRetries sets how many times a failed request is retried. The default is
// zero: one network call per Get.
func WithRetries(n int) Option {
	return func(a *Adapter) {
		if n >= 0 {
			a.client.RetryMax = n
		}
	}
}

// New returns an Adapter for host, which carries the scheme, authority and
// context path (for example http://localhost:8080/app).
func New(host string, opts ...Option) (*Adapter, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, ErrNoHost
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = cleanhttp.DefaultPooledClient()
	client.RetryMax = 0
	client.Logger = leveledLogger{}
	// Keep the last response (and its body) instead of a generic "giving up"
	// error so failures can be normalized.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	a := &Adapter{
		base:   strings.TrimRight(host, "/") + BasePath,
		client: client,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// URL returns the request URL for suffix. The suffix is concatenated as-is,
// without escaping.
func (a *Adapter) URL(suffix string) string {
	return a.base + suffix
}

// Get issues one GET for suffix ("list" or a cache id). A network failure
// returns a nil Response. A non-2xx status returns the Response together with
// ErrStatus.
func (a *Adapter) Get(ctx context.Context, suffix string) (*Response, error) {
	url := a.URL(suffix)
	log.Debugf("GET %s", url)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body.Bytes(),
	}
	log.Debugf("GET %s -> %d (%d bytes)", url, out.StatusCode, len(out.Body))

	if !out.OK() {
		return out, fmt.Errorf("%w: %d", ErrStatus, out.StatusCode)
	}

	return out, nil
}

// leveledLogger routes retryablehttp's logging through apex.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { entry(kv).Error(msg) }
func (leveledLogger) Info(msg string, kv ...interface{})  { entry(kv).Info(msg) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { entry(kv).Debug(msg) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { entry(kv).Warn(msg) }

func entry(kv []interface{}) *log.Entry {
	fields := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return log.WithFields(fields)
}
