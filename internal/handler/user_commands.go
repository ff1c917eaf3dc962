package handlers

import (
	"github.com/spf13/cobra"
)

func (h *Handlers) userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <user-id>",
		Short: "Show a profile and its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := h.spin("Loading profile...")
			err := h.Profile.LoadUser(cmd.Context(), args[0])
			stop()
			if err != nil {
				return h.report(err)
			}

			h.View.Profile(h.Profile.State(), h.Session.Current())
			return nil
		},
	}
}

func (h *Handlers) followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <user-id>",
		Short: "Follow or unfollow a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.Profile.LoadUser(cmd.Context(), args[0]); err != nil {
				return h.report(err)
			}
			if err := h.Profile.ToggleFollow(cmd.Context(), args[0]); err != nil {
				return h.report(err)
			}

			h.View.ProfileHeader(h.Profile.State(), h.Session.Current())
			return nil
		},
	}
}
