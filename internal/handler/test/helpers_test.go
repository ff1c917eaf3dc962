package test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"communityClient/internal/api"
	"communityClient/internal/config"
	"communityClient/internal/devserver"
	handlers "communityClient/internal/handler"
	"communityClient/internal/middleware"
	"communityClient/internal/service"
)

// scriptedPrompter answers prompts from queues, an exhausted queue quits.
type scriptedPrompter struct {
	inputs  []string
	choices []string
	asked   []string
}

func (p *scriptedPrompter) Input(msg, def string) (string, error) {
	p.asked = append(p.asked, msg)
	if len(p.inputs) == 0 {
		return "", handlers.ErrQuit
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *scriptedPrompter) Password(msg string) (string, error) {
	return p.Input(msg, "")
}

// Choose picks the first option starting with the scripted answer.
func (p *scriptedPrompter) Choose(msg string, options []string) (string, error) {
	p.asked = append(p.asked, msg)
	if len(p.choices) == 0 {
		return "", handlers.ErrQuit
	}
	want := p.choices[0]
	p.choices = p.choices[1:]
	for _, o := range options {
		if strings.HasPrefix(o, want) {
			return o, nil
		}
	}
	return want, nil
}

type env struct {
	dev    *devserver.Server
	h      *handlers.Handlers
	out    *bytes.Buffer
	notes  *bytes.Buffer
	prompt *scriptedPrompter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	color.NoColor = true

	dev := devserver.NewServer(config.DevServer{JWTSecretKey: "test-secret", TokenTTL: time.Hour})
	require.NoError(t, dev.Seed())
	ts := httptest.NewServer(dev.Handler())
	t.Cleanup(ts.Close)

	cred := middleware.NewCredential()
	client := api.NewClient(ts.URL+"/api", &http.Client{
		Transport: middleware.Chain(ts.Client().Transport, middleware.RequestIDMiddleware, middleware.AuthMiddleware(cred)),
	})

	out, notes := &bytes.Buffer{}, &bytes.Buffer{}
	notifier := handlers.NewNotifier(notes)
	services := service.NewService(nil, client, cred, notifier)

	h := handlers.NewHandlers(services, notifier, &config.Config{}, out)
	prompt := &scriptedPrompter{}
	h.Prompt = prompt
	h.Spinner = nil

	return &env{dev: dev, h: h, out: out, notes: notes, prompt: prompt}
}

func (e *env) run(args ...string) error {
	e.out.Reset()
	e.notes.Reset()

	root := e.h.RootCmd()
	root.SetArgs(args)
	root.SetOut(e.out)
	root.SetErr(e.out)
	return root.ExecuteContext(context.Background())
}

func (e *env) login(t *testing.T, email string) {
	t.Helper()
	require.NoError(t, e.run("login", "--email", email, "--password", devserver.SeedPassword))
}

func (e *env) userID(t *testing.T, email string) string {
	t.Helper()
	user, err := e.dev.Store().VerifyPassword(email, devserver.SeedPassword)
	require.NoError(t, err)
	return user.ID
}
