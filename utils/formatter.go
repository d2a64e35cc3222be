package utils

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// TagFormatter prefixes every entry with "hcp[<pid>]" so the supervisor's
// own diagnostics stand out from teed child output sharing stderr.
type TagFormatter struct {
	logrus.TextFormatter
}

func (f *TagFormatter) Format(en *logrus.Entry) ([]byte, error) {
	l, err := f.TextFormatter.Format(en)
	if err != nil {
		return nil, err
	}
	tag := fmt.Sprintf("hcp[%v] ", os.Getpid())
	return append([]byte(tag), l...), nil
}
