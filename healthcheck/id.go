package healthcheck

import (
	"errors"
	"fmt"
)

var ErrInvalidID = errors.New("invalid healthcheck id")

// ID is a validated check identifier: 36 bytes in the usual 8-4-4-4-12
// layout. The body may be any ASCII alphanumeric, not just hex, which is
// wider than RFC 4122. Kept that way on purpose, the service hands out ids
// that a strict UUID parser can reject.
type ID struct {
	s string
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= '0' && b <= '9':
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		default:
			return false
		}
	}
	return true
}

// ParseID validates s and wraps it as an ID.
func ParseID(s string) (ID, error) {
	if len(s) != 36 {
		return ID{}, fmt.Errorf("%w: length %v instead of 36", ErrInvalidID, len(s))
	}
	for _, pos := range []int{8, 13, 18, 23} {
		if s[pos] != '-' {
			return ID{}, fmt.Errorf("%w: expected '-' at position %v", ErrInvalidID, pos)
		}
	}
	for _, part := range []string{s[:8], s[9:13], s[14:18], s[19:23], s[24:]} {
		if !isAlnum(part) {
			return ID{}, fmt.Errorf("%w: non-alphanumeric character", ErrInvalidID)
		}
	}
	return ID{s: s}, nil
}

func (id ID) String() string {
	return id.s
}
