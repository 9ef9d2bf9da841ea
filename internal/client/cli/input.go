package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Terminal seams, swapped in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func stdinIsTerminal() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// LineReader is where prompts read their answers from. *bufio.Reader and
// *lineSource implement it.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

type inputLine struct {
	text string
	err  error
}

// lineSource owns the input stream. A single goroutine reads lines, so a
// caller that stops waiting (WaitLine) never leaves a read behind that would
// take the next answer.
type lineSource struct {
	r     *bufio.Reader
	once  sync.Once
	lines chan inputLine
	quit  chan struct{}
	stop  sync.Once
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{r: bufio.NewReader(r), quit: make(chan struct{})}
}

func (s *lineSource) start() {
	s.once.Do(func() {
		s.lines = make(chan inputLine)
		go s.pump()
	})
}

func (s *lineSource) pump() {
	defer close(s.lines)
	for {
		text, err := s.r.ReadString('\n')
		select {
		case s.lines <- inputLine{text: text, err: err}:
		case <-s.quit:
			return
		}
		if err != nil {
			return
		}
	}
}

// ReadString returns the next line. Only '\n' is supported as delim.
func (s *lineSource) ReadString(delim byte) (string, error) {
	if delim != '\n' {
		return "", fmt.Errorf("unsupported delimiter %q", delim)
	}
	s.start()
	l, ok := <-s.lines
	if !ok {
		return "", io.EOF
	}
	return l.text, l.err
}

// WaitLine consumes one line, or returns false without consuming anything
// once done is closed.
func (s *lineSource) WaitLine(done <-chan struct{}) bool {
	s.start()
	select {
	case <-s.lines:
		return true
	case <-done:
		return false
	}
}

// Close releases the reader goroutine if it is waiting to hand over a line.
// A read blocked on the underlying stream ends with the process.
func (s *lineSource) Close() {
	s.stop.Do(func() { close(s.quit) })
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
//	Prompt text
//	> _
func GetSimpleText(reader LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret reads a value from the terminal without echo.
func GetSecret(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
func GetMultiline(reader LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Confirm asks a yes/no question. Anything but y/yes is no.
func Confirm(reader LineReader, prompt string, w io.Writer) bool {
	answer, err := GetSimpleText(reader, prompt+" [y/N]", w)
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}
