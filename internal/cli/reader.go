package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is interrupted by context
// cancellation.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads operator input line by line while respecting context
// cancellation.
type LineReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewLineReader creates a line reader over r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine reads one line, trimmed of surrounding whitespace. It returns
// ErrInputCancelled when the context is canceled before a line arrives. A
// final unterminated line at EOF is still returned.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The reading goroutine keeps running until its read completes,
		// but the caller returns immediately.
		return "", ErrInputCancelled
	case res := <-resultCh:
		line := strings.TrimSpace(res.value)
		if res.err != nil && line == "" {
			return "", res.err
		}
		return line, nil
	}
}
