package healthcheck

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the ping endpoint of healthchecks.io.
const DefaultBaseURL = "https://hc-ping.com/"

const requestTimeout = 10 * time.Second

var retryDelay = 2 * time.Second

// statusError is returned for responses outside the 2xx range.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %v", e.code)
}

// Client reports job lifecycle events for a single check. Transient
// failures, that is transport errors and 5xx responses, are retried exactly
// once after a short delay; 4xx responses are not.
type Client struct {
	id      ID
	baseURL string
	httpc   *http.Client
}

// NewClient returns a reporting client for id. Connecting, the TLS
// handshake, waiting for response headers and the request as a whole are
// each capped at 10 seconds.
func NewClient(id ID) *Client {
	return &Client{
		id:      id,
		baseURL: DefaultBaseURL,
		httpc: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: requestTimeout}).DialContext,
				TLSHandshakeTimeout:   requestTimeout,
				ResponseHeaderTimeout: requestTimeout,
			},
		},
	}
}

func (c *Client) url(suffix string) string {
	return c.baseURL + c.id.String() + suffix
}

func (c *Client) attempt(method, url, body string) error {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	rsp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	// the body carries nothing of interest, only the status class matters
	io.Copy(io.Discard, rsp.Body)
	if rsp.StatusCode >= 300 {
		sErr := &statusError{code: rsp.StatusCode}
		if rsp.StatusCode >= 500 {
			return sErr
		}
		return backoff.Permanent(sErr)
	}
	return nil
}

func (c *Client) ping(what, method, url, body string) error {
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(retryDelay), 1)
	return backoff.RetryNotify(func() error {
		return c.attempt(method, url, body)
	}, b, func(err error, wait time.Duration) {
		logrus.Errorf("Healthcheck %s failed, retrying in %v: %v", what, wait, err)
	})
}

// PingStart signals that the job is about to run.
func (c *Client) PingStart() error {
	return c.ping("/start", http.MethodGet, c.url("/start"), "")
}

// PingSuccess reports a successful run, with msg as the report body.
func (c *Client) PingSuccess(msg string) error {
	return c.ping("finish", http.MethodPost, c.url(""), msg)
}

// PingFailure reports a failed run, with msg as the report body.
func (c *Client) PingFailure(msg string) error {
	return c.ping("finish", http.MethodPost, c.url("/fail"), msg)
}

// IsStatusError reports whether err came from a non-2xx response rather than
// the transport, and if so with which status code.
func IsStatusError(err error) (code int, ok bool) {
	var sErr *statusError
	if errors.As(err, &sErr) {
		return sErr.code, true
	}
	return 0, false
}
