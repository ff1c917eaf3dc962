package handlers

import (
	"strings"

	"github.com/spf13/cobra"
)

func (h *Handlers) feedCmd() *cobra.Command {
	var pages int
	var comments bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the home feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := h.spin("Loading posts...")
			for i := 0; i < pages && h.Feed.State().HasMore; i++ {
				if err := h.Feed.LoadNextPage(cmd.Context()); err != nil {
					stop()
					return h.report(err)
				}
			}
			stop()

			session := h.Session.Current()
			h.View.Navbar(session)
			h.View.Feed(h.Feed.State(), session, comments)
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	cmd.Flags().BoolVarP(&comments, "comments", "c", false, "show comments under each post")
	return cmd
}

func (h *Handlers) postCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post <text>",
		Short: "Share a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := h.Feed.CreatePost(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return h.report(err)
			}

			h.View.PostCard(*post, h.Session.Current())
			return nil
		},
	}
}

func (h *Handlers) likeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like or unlike a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.report(h.withPost(cmd, args[0], func() error {
				return h.Feed.ToggleLike(cmd.Context(), args[0])
			}))
		},
	}
}

func (h *Handlers) commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <post-id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.report(h.withPost(cmd, args[0], func() error {
				return h.Feed.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
			}))
		},
	}
}

func (h *Handlers) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.locate(cmd.Context(), args[0]); err != nil {
				return h.report(err)
			}

			if !yes {
				ok, err := h.confirm("Are you sure you want to delete this post?")
				if err != nil || !ok {
					return err
				}
			}

			return h.report(h.Feed.DeletePost(cmd.Context(), args[0]))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

// withPost loads the feed up to postID, runs fn and shows the post afterwards.
func (h *Handlers) withPost(cmd *cobra.Command, postID string, fn func() error) error {
	if err := h.locate(cmd.Context(), postID); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}

	for _, p := range h.Feed.State().Items {
		if p.PostID == postID {
			h.View.PostCard(p, h.Session.Current())
			h.View.Comments(p.Comments)
		}
	}
	return nil
}

func (h *Handlers) confirm(msg string) (bool, error) {
	choice, err := h.Prompt.Choose(msg, []string{"No", "Yes"})
	if err != nil {
		return false, err
	}
	return choice == "Yes", nil
}
