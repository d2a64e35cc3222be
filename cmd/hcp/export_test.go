package main

import (
	"io"
)

type Options = options

var (
	Parser   = parser
	ApplyEnv = applyEnv
	Run      = run
)

func MockStderr(w io.Writer) (restore func()) {
	old := stderr
	stderr = w
	return func() {
		stderr = old
	}
}
