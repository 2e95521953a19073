package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter reads one line of input after showing a prompt.
// *readline.Instance satisfies it.
type Prompter interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// passwordReader is implemented by prompters that can read without echo.
type passwordReader interface {
	ReadPassword(prompt string) ([]byte, error)
}

// NewReadline opens an interactive readline prompter on the terminal.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

// ScannerPrompter reads lines from a plain reader, for piped input.
type ScannerPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewScannerPrompter writes prompts to out and reads lines from in.
func NewScannerPrompter(in io.Reader, out io.Writer) *ScannerPrompter {
	return &ScannerPrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *ScannerPrompter) SetPrompt(prompt string) {
	p.prompt = prompt
}

func (p *ScannerPrompter) Readline() (string, error) {
	_, _ = fmt.Fprint(p.out, p.prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.scanner.Text(), "\r"), nil
}

func (p *ScannerPrompter) Close() error {
	return nil
}

// errQuit ends the session: end of input or an interrupt.
var errQuit = errors.New("quit")

func (s *Shell) read(prompt string) (string, error) {
	s.in.SetPrompt(prompt)
	line, err := s.in.Readline()
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", errQuit
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) readSecret(prompt string) (string, error) {
	pr, ok := s.in.(passwordReader)
	if !ok {
		return s.read(prompt)
	}
	b, err := pr.ReadPassword(prompt)
	if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
		return "", errQuit
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readChoice reads a menu selection in [0, max], asking again with retry
// until it gets one.
func (s *Shell) readChoice(prompt, retry string, max int) (int, error) {
	for {
		line, err := s.read(prompt)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 0 && n <= max {
			return n, nil
		}
		prompt = retry
	}
}

// confirm asks a yes/no question. Anything not starting with y is a no.
func (s *Shell) confirm(prompt string) (bool, error) {
	answer, err := s.read(prompt + " [y/n]: ")
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}
