package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// chunkReader returns one predefined chunk per Read call.
type chunkReader struct {
	chunks [][]byte
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func chunksOf(parts ...string) *chunkReader {
	r := &chunkReader{}
	for _, p := range parts {
		r.chunks = append(r.chunks, []byte(p))
	}
	return r
}

func TestConsumeAccumulates(t *testing.T) {
	parts := []string{"**Day 1: Jan 1**\n", "**Morning**\nBreak", "fast\n"}

	var states []State
	final, err := Consume(chunksOf(parts...), func(s State) {
		states = append(states, s)
	})
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}

	want := strings.Join(parts, "")
	if final != want {
		t.Errorf("final = %q, want %q", final, want)
	}

	if len(states) != len(parts)+1 {
		t.Fatalf("got %d emissions, want %d", len(states), len(parts)+1)
	}
	acc := ""
	for i, p := range parts {
		acc += p
		if states[i].Text != acc {
			t.Errorf("emission %d = %q, want accumulated %q", i, states[i].Text, acc)
		}
		if states[i].Complete {
			t.Errorf("emission %d marked complete", i)
		}
	}
	last := states[len(states)-1]
	if !last.Complete || last.Text != want {
		t.Errorf("terminal emission = %+v, want complete %q", last, want)
	}
}

func TestConsumeSplitRune(t *testing.T) {
	word := "Café — 東京"
	b := []byte(word)
	// Split inside the é, the em dash and the first kanji.
	r := &chunkReader{chunks: [][]byte{b[:4], b[4:8], b[8:12], b[12:]}}

	final, err := Consume(r, nil)
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if final != word {
		t.Errorf("final = %q, want %q", final, word)
	}
}

func TestConsumeDropsInvalidChunk(t *testing.T) {
	r := &chunkReader{chunks: [][]byte{
		[]byte("Hello "),
		{0xff, 0xfe, 'x'},
		[]byte("world"),
	}}

	var emissions int
	final, err := Consume(r, func(State) { emissions++ })
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if final != "Hello world" {
		t.Errorf("final = %q, want %q", final, "Hello world")
	}
	// two text chunks + terminal; the bad chunk emits nothing
	if emissions != 3 {
		t.Errorf("emissions = %d, want 3", emissions)
	}
}

func TestConsumeNilBody(t *testing.T) {
	called := false
	_, err := Consume(nil, func(State) { called = true })
	if !errors.Is(err, ErrNoBody) {
		t.Fatalf("Consume(nil) error = %v, want ErrNoBody", err)
	}
	if called {
		t.Error("emit must not be called without a body")
	}
}

func TestConsumeReadError(t *testing.T) {
	boom := errors.New("connection reset")
	r := &chunkReader{chunks: [][]byte{[]byte("partial")}, err: boom}

	got, err := Consume(r, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("Consume() error = %v, want wrapped %v", err, boom)
	}
	if got != "partial" {
		t.Errorf("accumulated = %q, want %q", got, "partial")
	}
}

func TestConsumeEmptyBody(t *testing.T) {
	var states []State
	final, err := Consume(strings.NewReader(""), func(s State) { states = append(states, s) })
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if final != "" {
		t.Errorf("final = %q, want empty", final)
	}
	if len(states) != 1 || !states[0].Complete {
		t.Errorf("states = %+v, want a single terminal emission", states)
	}
}

func TestDecoderFlush(t *testing.T) {
	var d Decoder
	text, err := d.Decode([]byte{'a', 0xe6, 0x9d})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if text != "a" {
		t.Errorf("Decode() = %q, want %q", text, "a")
	}
	if n := d.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2 pending bytes", n)
	}
	if n := d.Flush(); n != 0 {
		t.Errorf("second Flush() = %d, want 0", n)
	}
}
