package testutils

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
)

// MockLogger redirects logrus output to a buffer for the duration of the
// test.
func MockLogger(t *testing.T) *bytes.Buffer {
	old := logrus.StandardLogger().Out
	buf := &bytes.Buffer{}
	logrus.SetOutput(buf)
	t.Cleanup(func() {
		logrus.SetOutput(old)
	})
	return buf
}
