package healthcheck

import "time"

func MockRetryDelay(d time.Duration) (restore func()) {
	old := retryDelay
	retryDelay = d
	return func() {
		retryDelay = old
	}
}

func MockBaseURL(c *Client, url string) (restore func()) {
	old := c.baseURL
	c.baseURL = url
	return func() {
		c.baseURL = old
	}
}
