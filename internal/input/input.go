// Package input provides line readers for the interactive grammar shell. It
// wraps a readline-backed reader for TTY use and a plain buffered reader for
// piped input behind one interface.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one command line at a time from some source of input.
type LineReader interface {
	// ReadLine blocks until a line with non-space content is read. At end of
	// input it returns io.EOF.
	ReadLine() (string, error)

	// Close releases any resources held by the reader.
	Close() error
}

// DirectReader reads lines from any generic input stream. It does not
// sanitize control or escape sequences, so it is best suited for piped
// input.
type DirectReader struct {
	r *bufio.Reader
}

// NewDirectReader creates a DirectReader on the provided stream.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// ReadLine reads the next non-blank line from the stream.
func (dr *DirectReader) ReadLine() (string, error) {
	for {
		line, err := dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// Close is present so DirectReader satisfies LineReader; the underlying
// stream is owned by the caller and is not closed.
func (dr *DirectReader) Close() error {
	return nil
}

// InteractiveReader reads lines from stdin through a Go implementation of
// GNU Readline, giving the user line editing and command history. Use it
// when connected to a TTY.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader creates an InteractiveReader and initializes
// readline. Close must be called on the returned reader before disposal to
// properly tear down readline resources.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{rl: rl}, nil
}

// ReadLine reads the next non-blank line from stdin.
func (ir *InteractiveReader) ReadLine() (string, error) {
	for {
		line, err := ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.rl.SetPrompt(p)
}

// Close cleans up readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}
