package main

import (
	"github.com/spf13/cobra"
)

var (
	profileOldPassword string
	profileNewPassword string
	profileNewEmail    string
	profileCode        string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Change your password or email",
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPw, err := valueOrPrompt(cmd, profileOldPassword, "Current password")
		if err != nil {
			return err
		}
		newPw, err := valueOrPrompt(cmd, profileNewPassword, "New password")
		if err != nil {
			return err
		}
		return current.profile.ChangePassword(cmd.Context(), oldPw, newPw)
	},
}

var profileEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Request an email change; a code goes to the current address",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.profile.RequestEmailChange(cmd.Context(), profileNewEmail)
	},
}

var profileEmailVerifyCmd = &cobra.Command{
	Use:   "email-verify",
	Short: "Confirm the email change with the code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.profile.VerifyEmailChange(cmd.Context(), profileCode)
	},
}

func init() {
	profilePasswordCmd.Flags().StringVar(&profileOldPassword, "old", "", "current password")
	profilePasswordCmd.Flags().StringVar(&profileNewPassword, "new", "", "new password")
	profileEmailCmd.Flags().StringVar(&profileNewEmail, "new-email", "", "new email address")
	profileEmailVerifyCmd.Flags().StringVar(&profileCode, "code", "", "security code")

	profileCmd.AddCommand(profilePasswordCmd, profileEmailCmd, profileEmailVerifyCmd)
}
