package gateway

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	studiochat "github.com/poly-workshop/studiochat"
)

// Large completions can pack sizable chunks into one SSE line.
const maxLineSize = 1024 * 1024

// chunk is one OpenAI-compatible streaming chunk.
type chunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// stream implements studiochat.DeltaStream over an SSE response body.
// Lines look like "data: {json}"; "data: [DONE]" terminates the stream.
// Comment and blank lines are ignored per the SSE framing rules.
type stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	state   studiochat.StreamState
	err     error
}

// Interface compliance check.
var _ studiochat.DeltaStream = (*stream)(nil)

func newStream(body io.ReadCloser) *stream {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &stream{body: body, scanner: sc, state: studiochat.StreamStateNew}
}

// Next returns the next text delta, io.EOF at end of stream, or the error
// that terminated it. Chunks with no content yield an empty delta rather
// than being skipped, so callers observe the no-op behavior they expect.
func (s *stream) Next() (string, error) {
	switch s.state {
	case studiochat.StreamStateComplete:
		return "", io.EOF
	case studiochat.StreamStateError:
		return "", s.err
	case studiochat.StreamStateClosed:
		return "", studiochat.ErrStreamClosed
	}
	s.state = studiochat.StreamStateStreaming

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			return s.finish()
		}

		var ch chunk
		if err := json.Unmarshal([]byte(data), &ch); err != nil {
			return "", s.fail(fmt.Errorf("parse stream chunk: %w", err))
		}
		if len(ch.Choices) == 0 {
			continue
		}
		return ch.Choices[0].Delta.Content, nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", s.fail(fmt.Errorf("read stream: %w", err))
	}
	// Body ended without a [DONE] marker; treat as normal completion.
	return s.finish()
}

func (s *stream) finish() (string, error) {
	s.state = studiochat.StreamStateComplete
	s.body.Close()
	return "", io.EOF
}

func (s *stream) fail(err error) error {
	s.state = studiochat.StreamStateError
	s.err = err
	s.body.Close()
	return err
}

// State returns the current stream state.
func (s *stream) State() studiochat.StreamState {
	return s.state
}

// Close releases the underlying body. Abandoning a stream mid-turn is how
// view teardown cancels consumption; remaining deltas are simply discarded.
func (s *stream) Close() error {
	if s.state == studiochat.StreamStateComplete || s.state == studiochat.StreamStateError {
		return nil
	}
	s.state = studiochat.StreamStateClosed
	return s.body.Close()
}
