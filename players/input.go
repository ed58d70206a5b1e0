package players

import (
	"bufio"
	"context"
	"io"
)

type inputLine struct {
	text string
	err  error
}

// Input reads lines on its own goroutine so that a caller waiting for a line
// can give up when its context is done. A line that arrives after the caller
// gave up goes to the next ReadLine. Input is not safe for concurrent use.
type Input struct {
	lines chan inputLine
	err   error
}

// NewInput starts reading lines from r
func NewInput(r io.Reader) *Input {
	in := &Input{lines: make(chan inputLine)}
	go in.read(bufio.NewReader(r))
	return in
}

func (in *Input) read(r *bufio.Reader) {
	for {
		text, err := r.ReadString('\n')
		in.lines <- inputLine{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// ReadLine returns the next line, including its newline. A final line without
// a newline is returned before the read error.
func (in *Input) ReadLine(ctx context.Context) (string, error) {
	if in.err != nil {
		return "", in.err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-in.lines:
		if l.err != nil {
			in.err = l.err
			if l.text != "" {
				return l.text, nil
			}
		}
		return l.text, l.err
	}
}
