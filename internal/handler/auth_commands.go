package handlers

import (
	"github.com/spf13/cobra"

	"communityClient/internal/models"
)

func (h *Handlers) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = h.Prompt.Input("Email:", ""); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = h.Prompt.Password("Password:"); err != nil {
					return err
				}
			}

			stop := h.spin("Signing in...")
			err = h.Session.Login(cmd.Context(), email, password)
			stop()
			if err != nil {
				return h.report(err)
			}

			h.View.Navbar(h.Session.Current())
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, prompted when empty")
	return cmd
}

func (h *Handlers) registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name == "" {
				if name, err = h.Prompt.Input("Name:", ""); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = h.Prompt.Input("Email:", ""); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = h.Prompt.Password("Password (min 6 characters):"); err != nil {
					return err
				}
			}

			stop := h.spin("Creating account...")
			err = h.Session.Register(cmd.Context(), name, email, password)
			stop()
			if err != nil {
				return h.report(err)
			}

			h.View.Navbar(h.Session.Current())
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, prompted when empty")
	return cmd
}

func (h *Handlers) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.Session.Logout(cmd.Context()); err != nil {
				return h.report(err)
			}
			h.Notifier.Success("Logged out")
			return nil
		},
	}
}

func (h *Handlers) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h.View.Session(h.Session.Current())
			return nil
		},
	}
}

func (h *Handlers) profileCmd() *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var name, bio string
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change your name and bio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := h.Session.Current()
			update := models.ProfileUpdate{Name: name, Bio: bio}
			if current != nil {
				var err error
				if !cmd.Flags().Changed("name") {
					if update.Name, err = h.Prompt.Input("Name:", current.Name); err != nil {
						return err
					}
				}
				if !cmd.Flags().Changed("bio") {
					if update.Bio, err = h.Prompt.Input("Bio:", current.Bio); err != nil {
						return err
					}
				}
			}

			stop := h.spin("Saving profile...")
			err := h.Session.UpdateProfile(cmd.Context(), update)
			stop()
			if err != nil {
				return h.report(err)
			}

			h.View.Session(h.Session.Current())
			return nil
		},
	}
	edit.Flags().StringVar(&name, "name", "", "new display name")
	edit.Flags().StringVar(&bio, "bio", "", "new bio, at most 500 characters")

	profile.AddCommand(edit)
	return profile
}
