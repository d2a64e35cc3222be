package utils

import (
	"errors"

	"github.com/jessevdk/go-flags"
)

// IsErrHelp returns true when error indicates that help was shown
func IsErrHelp(err error) bool {
	var ferr *flags.Error
	return errors.As(err, &ferr) && ferr.Type == flags.ErrHelp
}
