// Package handlers exposes the client controllers as terminal commands.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"

	"communityClient/internal/apperr"
	"communityClient/internal/config"
	"communityClient/internal/service"
	"communityClient/internal/view"
)

type Handlers struct {
	Session  service.SessionStore
	Feed     service.FeedController
	Profile  service.ProfileController
	View     *view.View
	Notifier *Notifier
	Prompt   Prompter
	Spinner  Spinner
	Cfg      *config.Config
	Out      io.Writer
}

func NewHandlers(services *service.Service, notifier *Notifier, cfg *config.Config, out io.Writer) *Handlers {
	return &Handlers{
		Session:  services.Session,
		Feed:     services.Feed,
		Profile:  services.Profile,
		View:     view.New(out),
		Notifier: notifier,
		Prompt:   NewPrompter(),
		Spinner:  NewSpinner(),
		Cfg:      cfg,
		Out:      out,
	}
}

// report prints err unless a controller already surfaced it, and hands it back to cobra.
func (h *Handlers) report(err error) error {
	if err == nil {
		return nil
	}
	if !h.Notifier.shown(err) {
		h.Notifier.Error(err.Error(), err)
	}
	return err
}

func (h *Handlers) spin(msg string) func() {
	spinner := h.Spinner
	if spinner == nil {
		spinner = nopSpinner{}
	}
	spinner.Start(msg)
	return spinner.Stop
}

// locate pages through the feed until postID is loaded.
func (h *Handlers) locate(ctx context.Context, postID string) error {
	for {
		state := h.Feed.State()
		for _, p := range state.Items {
			if p.PostID == postID {
				return nil
			}
		}
		if !state.HasMore {
			return fmt.Errorf("%w: post %s", apperr.ErrNotFound, postID)
		}

		before := state.PageNumber
		if err := h.Feed.LoadNextPage(ctx); err != nil {
			return err
		}
		if h.Feed.State().PageNumber == before {
			log.Printf("locate %s: feed did not advance past page %d", postID, before)
			return fmt.Errorf("%w: post %s", apperr.ErrNotFound, postID)
		}
	}
}
