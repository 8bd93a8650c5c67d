package style

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

type Spinner interface {
	SetSuffix(suffix string)
	SetFinalMSG(finalMSG string)
	Start()
	Stop()
}

// TestSpinner is a spinner implementation for testing that outputs each
// spinner update on a new line instead of clearing and redrawing
type TestSpinner struct {
	mu       *sync.RWMutex
	Delay    time.Duration
	chars    []string
	Suffix   string
	FinalMSG string
	color    func(a ...interface{}) string
	Writer   io.Writer
	active   bool
}

type TestOption func(*TestSpinner)

// NewTestSpinner provides a pointer to an instance of TestSpinner with the
// supplied options.
func NewTestSpinner(cs []string, d time.Duration, options ...TestOption) *TestSpinner {
	s := &TestSpinner{
		Delay:  d,
		chars:  cs,
		color:  color.New(color.FgWhite).SprintFunc(),
		mu:     &sync.RWMutex{},
		Writer: os.Stdout,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *TestSpinner) SetSuffix(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Suffix = suffix

	fmt.Fprintf(s.Writer, "[SPINNER]%s\n", suffix)
}

func (s *TestSpinner) SetFinalMSG(finalMSG string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FinalMSG = finalMSG
}

func (s *TestSpinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true

	fmt.Fprintf(s.Writer, "[SPINNER STARTED]%s\n", s.Suffix)
}

func (s *TestSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false

	if s.FinalMSG != "" {
		fmt.Fprint(s.Writer, s.FinalMSG)
	}
	fmt.Fprintf(s.Writer, "[SPINNER STOPPED]\n")
}

type TerminalSpinner struct {
	spinner *spinner.Spinner
}

func NewTerminalSpinner(cs []string, d time.Duration, options ...spinner.Option) *TerminalSpinner {
	return &TerminalSpinner{
		spinner: spinner.New(cs, d, options...),
	}
}

func (s *TerminalSpinner) SetSuffix(suffix string) {
	s.spinner.Suffix = suffix
}

func (s *TerminalSpinner) SetFinalMSG(finalMSG string) {
	s.spinner.FinalMSG = finalMSG
}

func (s *TerminalSpinner) Start() {
	s.spinner.Start()
}

func (s *TerminalSpinner) Stop() {
	s.spinner.Stop()
}

func NewSpinner(w io.Writer) Spinner {
	if os.Getenv("BENCHKIT_TEST") == "true" {
		return NewTestSpinner(spinner.CharSets[9], 100*time.Millisecond, func(s *TestSpinner) {
			s.Writer = w
		})
	}

	return NewTerminalSpinner(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
}
