// Package stream reads a raw, unframed text response body chunk by chunk.
package stream

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrNoBody reports a response without a readable body. It is fatal for
// the turn and never retried.
var ErrNoBody = errors.New("no readable response body")

const chunkSize = 32 * 1024

// State is the accumulated view of an in-flight response.
type State struct {
	Text     string
	Complete bool
}

// Decoder turns byte chunks into UTF-8 text. A rune split across chunk
// boundaries is carried into the next call.
type Decoder struct {
	pending []byte
}

// Decode returns the text contributed by chunk. On invalid UTF-8 the whole
// chunk contributes nothing and the error is returned for logging.
func (d *Decoder) Decode(chunk []byte) (string, error) {
	src := make([]byte, 0, len(d.pending)+len(chunk))
	src = append(src, d.pending...)
	src = append(src, chunk...)
	d.pending = nil

	dst := make([]byte, len(src))
	nDst, nSrc, err := encoding.UTF8Validator.Transform(dst, src, false)
	switch {
	case err == nil:
		return string(dst[:nDst]), nil
	case errors.Is(err, transform.ErrShortSrc):
		d.pending = append(d.pending, src[nSrc:]...)
		return string(dst[:nDst]), nil
	default:
		return "", err
	}
}

// Flush reports bytes of an incomplete rune still held at end of stream.
func (d *Decoder) Flush() int {
	n := len(d.pending)
	d.pending = nil
	return n
}

// Consume reads r until EOF. After every chunk that adds text, emit gets
// the accumulated text; at EOF it gets the final text with Complete set.
// The returned string is the final accumulated text.
func Consume(r io.Reader, emit func(State)) (string, error) {
	if r == nil {
		return "", ErrNoBody
	}
	if emit == nil {
		emit = func(State) {}
	}

	var (
		dec    Decoder
		acc    strings.Builder
		chunks int
	)
	buf := make([]byte, chunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunks++
			text, decErr := dec.Decode(buf[:n])
			if decErr != nil {
				slog.Debug("Dropping undecodable chunk", "chunk", chunks, "bytes", n, "error", decErr)
			}
			if text != "" {
				acc.WriteString(text)
				emit(State{Text: acc.String()})
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return acc.String(), oops.In("stream").With("chunks", chunks).Wrapf(err, "reading response chunk")
		}
	}

	if dropped := dec.Flush(); dropped > 0 {
		slog.Debug("Dropping truncated rune at end of stream", "bytes", dropped)
	}

	final := acc.String()
	emit(State{Text: final, Complete: true})
	return final, nil
}
