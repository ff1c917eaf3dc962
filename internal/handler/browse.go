package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"communityClient/internal/format"
	"communityClient/internal/models"
)

const (
	actionMore    = "Load more"
	actionRefresh = "Refresh"
	actionPost    = "New post"
	actionLike    = "Like / unlike"
	actionComment = "Comment"
	actionDelete  = "Delete my post"
	actionAuthor  = "View author"
	actionQuit    = "Quit"
)

func (h *Handlers) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the feed interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.browse(cmd.Context())
		},
	}
}

func (h *Handlers) browse(ctx context.Context) error {
	if err := h.Feed.LoadNextPage(ctx); err != nil {
		h.report(err)
	}

	for {
		session := h.Session.Current()
		state := h.Feed.State()
		h.View.Navbar(session)
		h.View.Feed(state, session, true)

		choice, err := h.Prompt.Choose("What next?", browseActions(state, session))
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if choice == actionQuit {
			return nil
		}

		err = h.browseAction(ctx, choice, state, session)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			h.report(err)
		}
	}
}

func browseActions(state models.FeedState, session *models.Session) []string {
	actions := []string{}
	if state.HasMore {
		actions = append(actions, actionMore)
	}
	actions = append(actions, actionRefresh)

	if session != nil {
		actions = append(actions, actionPost)
		if len(state.Items) > 0 {
			actions = append(actions, actionLike, actionComment)
		}
		if len(ownPosts(state.Items, session.UserID)) > 0 {
			actions = append(actions, actionDelete)
		}
	}
	if len(state.Items) > 0 {
		actions = append(actions, actionAuthor)
	}

	return append(actions, actionQuit)
}

func (h *Handlers) browseAction(ctx context.Context, choice string, state models.FeedState, session *models.Session) error {
	switch choice {
	case actionMore:
		return h.Feed.LoadNextPage(ctx)

	case actionRefresh:
		return h.Feed.Refresh(ctx)

	case actionPost:
		text, err := h.Prompt.Input(fmt.Sprintf("What's on your mind? (max %d characters)", models.MaxPostLength), "")
		if err != nil {
			return err
		}
		_, err = h.Feed.CreatePost(ctx, text)
		return err

	case actionLike:
		post, err := h.pickPost("Which post?", state.Items)
		if err != nil {
			return err
		}
		return h.Feed.ToggleLike(ctx, post.PostID)

	case actionComment:
		post, err := h.pickPost("Comment on which post?", state.Items)
		if err != nil {
			return err
		}
		text, err := h.Prompt.Input("Write a comment...", "")
		if err != nil {
			return err
		}
		return h.Feed.AddComment(ctx, post.PostID, text)

	case actionDelete:
		post, err := h.pickPost("Delete which post?", ownPosts(state.Items, session.UserID))
		if err != nil {
			return err
		}
		ok, err := h.confirm("Are you sure you want to delete this post?")
		if err != nil || !ok {
			return err
		}
		return h.Feed.DeletePost(ctx, post.PostID)

	case actionAuthor:
		post, err := h.pickPost("Whose profile?", state.Items)
		if err != nil {
			return err
		}
		if err := h.Profile.LoadUser(ctx, post.AuthorID); err != nil {
			return err
		}
		h.View.Profile(h.Profile.State(), h.Session.Current())
		return nil
	}

	return nil
}

func (h *Handlers) pickPost(msg string, posts []models.Post) (models.Post, error) {
	labels := make([]string, 0, len(posts))
	byLabel := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		label := fmt.Sprintf("#%s %s: %s", p.PostID, p.AuthorName, format.Truncate(p.Content, 40))
		labels = append(labels, label)
		byLabel[label] = p
	}

	choice, err := h.Prompt.Choose(msg, labels)
	if err != nil {
		return models.Post{}, err
	}
	return byLabel[choice], nil
}

func ownPosts(posts []models.Post, userID string) []models.Post {
	var own []models.Post
	for _, p := range posts {
		if p.AuthorID == userID {
			own = append(own, p)
		}
	}
	return own
}
