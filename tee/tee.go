package tee

import (
	"bytes"
	"io"
)

// DefaultTailBytes is how much of the end of a stream Tee retains by default.
const DefaultTailBytes = 40_000

const readBufSize = 16 * 1024

// trimTrailing returns the prefix of buf up to and including the last '\r'
// or '\n', or nil when buf contains neither.
func trimTrailing(buf []byte) []byte {
	if i := bytes.LastIndexAny(buf, "\r\n"); i >= 0 {
		return buf[:i+1]
	}
	return nil
}

// Tee reads r until EOF, writes every byte to w and returns the last
// maxBytes (or fewer) bytes read, in stream order. Writes to w happen in
// chunks ending at the last line terminator seen so far, so that two readers
// teeing to the same terminal interleave at line granularity; whatever is
// left unterminated gets written out at EOF. Memory use stays at roughly one
// read buffer plus maxBytes for line-oriented output; a stream that never
// emits a terminator accumulates in the write buffer until EOF. Known
// limitation.
func Tee(r io.Reader, w io.Writer, maxBytes int) ([]byte, error) {
	var tail []byte
	var pending []byte
	buf := make([]byte, readBufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			tail = append(tail, buf[:n]...)
			if excess := len(tail) - maxBytes; excess > 0 {
				// slide the window in place to keep the backing
				// array bounded
				tail = append(tail[:0], tail[excess:]...)
			}
			pending = append(pending, buf[:n]...)
			if flush := trimTrailing(pending); len(flush) > 0 {
				if _, err := w.Write(flush); err != nil {
					return nil, err
				}
				pending = append(pending[:0], pending[len(flush):]...)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(pending) > 0 {
		if _, err := w.Write(pending); err != nil {
			return nil, err
		}
	}
	return tail, nil
}
