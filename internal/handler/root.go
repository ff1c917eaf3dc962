package handlers

import (
	"log"

	"github.com/spf13/cobra"
)

// RootCmd builds the command tree. Every invocation first restores the stored session.
func (h *Handlers) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "community [command]",
		Short:         "Community: the social feed in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := h.Session.Restore(cmd.Context()); err != nil {
				log.Printf("restore session: %v", err)
			}
			return nil
		},
	}

	root.AddCommand(
		h.loginCmd(),
		h.registerCmd(),
		h.logoutCmd(),
		h.whoamiCmd(),
		h.profileCmd(),
		h.feedCmd(),
		h.postCmd(),
		h.likeCmd(),
		h.commentCmd(),
		h.deleteCmd(),
		h.userCmd(),
		h.followCmd(),
		h.browseCmd(),
	)

	return root
}
