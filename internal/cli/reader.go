package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// InputReader provides context-aware line reading that can be interrupted.
type InputReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewInputReader wraps a reader for context-aware line input.
func NewInputReader(reader io.Reader) *InputReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &InputReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadLine reads one line, respecting context cancellation. The underlying
// read keeps running after cancellation; the lock keeps a late result from
// interleaving with the next read.
func (r *InputReader) ReadLine(ctx context.Context) (string, error) {
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
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && (res.value == "" || res.err != io.EOF) {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
