package handlers

import (
	"errors"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cqroot/prompt"
	"github.com/cqroot/prompt/input"
)

// ErrQuit is returned when the user leaves a prompt.
var ErrQuit = errors.New("user quit prompt")

type Prompter interface {
	Input(msg, def string) (string, error)
	Password(msg string) (string, error)
	Choose(msg string, choices []string) (string, error)
}

type termPrompter struct{}

func NewPrompter() Prompter {
	return termPrompter{}
}

func (termPrompter) Input(msg, def string) (string, error) {
	return quitAware(prompt.New().Ask(msg).Input(def))
}

func (termPrompter) Password(msg string) (string, error) {
	return quitAware(prompt.New().Ask(msg).Input("", input.WithEchoMode(input.EchoPassword)))
}

func (termPrompter) Choose(msg string, choices []string) (string, error) {
	return quitAware(prompt.New().Ask(msg).Choose(choices))
}

func quitAware(res string, err error) (string, error) {
	if err != nil && err.Error() == ErrQuit.Error() {
		return "", ErrQuit
	}
	return res, err
}

type Spinner interface {
	Start(msg string)
	Stop()
}

type termSpinner struct {
	s *spinner.Spinner
}

func NewSpinner() Spinner {
	return &termSpinner{s: spinner.New(spinner.CharSets[14], 100*time.Millisecond)}
}

func (t *termSpinner) Start(msg string) {
	t.s.Suffix = " " + msg
	t.s.Start()
}

func (t *termSpinner) Stop() {
	t.s.Stop()
}

type nopSpinner struct{}

func (nopSpinner) Start(string) {}
func (nopSpinner) Stop()        {}
