package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"bookstore-inventory/inventory"
)

// MaxLineLength bounds one line of operator input. Longer lines are consumed
// and reported as invalid input.
const MaxLineLength = 1 << 20

// ErrInputClosed is returned once the operator's input stream is exhausted.
var ErrInputClosed = errors.New("input closed")

// Prompter collects one trimmed line of operator input per call.
type Prompter interface {
	Prompt(label string) (string, error)
	// PromptSecret is Prompt without echo where the terminal allows it.
	PromptSecret(label string) (string, error)
}

// Terminal is a Prompter over a line-based reader.
type Terminal struct {
	r   *bufio.Reader
	out io.Writer
	fd  int
}

// NewTerminal reads lines from in and writes prompts to out. When fd refers
// to a terminal, secrets are read from it without echo; pass -1 to disable.
func NewTerminal(in io.Reader, out io.Writer, fd int) *Terminal {
	return &Terminal{r: bufio.NewReader(in), out: out, fd: fd}
}

func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	return t.readLine()
}

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; ErrInputClosed follows it.
func (t *Terminal) readLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := t.r.ReadSlice('\n')
		if len(line)+len(chunk) > MaxLineLength {
			tooLong, line = true, nil
		}
		if !tooLong {
			line = append(line, chunk...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 && !tooLong {
				return "", ErrInputClosed
			}
		} else if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		break
	}
	if tooLong {
		return "", inventory.InvalidInputf("line longer than %d bytes", MaxLineLength)
	}
	return strings.TrimSpace(string(line)), nil
}

func (t *Terminal) PromptSecret(label string) (string, error) {
	if t.fd < 0 || !term.IsTerminal(t.fd) {
		return t.Prompt(label)
	}
	fmt.Fprint(t.out, label)
	secret, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out) // Add newline after password input
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
