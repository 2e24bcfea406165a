package main

import (
	"fmt"

	"github.com/Rafals/storefront/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	loginCaptcha  string
	loginGoogle   string

	registerUsername string
	registerEmail    string
	registerPassword string
	registerConfirm  string
	registerCaptcha  string

	verifyEmail string
	verifyCode  string

	resetEmail    string
	resetCode     string
	resetPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and load your cart",
	Long: `Log in with email and password, or with a Google credential (--google).

The session is stored in the credential store; the cart is loaded right after.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if loginGoogle != "" {
			sess, err := current.auth.GoogleLogin(ctx, loginGoogle)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Username)
			return nil
		}

		email, err := valueOrPrompt(cmd, loginEmail, "Email")
		if err != nil {
			return err
		}
		password, err := valueOrPrompt(cmd, loginPassword, "Password")
		if err != nil {
			return err
		}

		sess, err := current.auth.Login(ctx, usecase.LoginInput{
			Email:        email,
			Password:     password,
			CaptchaToken: loginCaptcha,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Username, sess.Role)
		renderCart(cmd.OutOrStdout(), current.cart.Lines(), current.cart.Total())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.Register(cmd.Context(), usecase.RegisterInput{
			Username:        registerUsername,
			Email:           registerEmail,
			Password:        registerPassword,
			ConfirmPassword: registerConfirm,
			CaptchaToken:    registerCaptcha,
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a new account with the emailed code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.VerifyAccount(cmd.Context(), verifyEmail, verifyCode)
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Send a password reset code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.ForgotPassword(cmd.Context(), resetEmail)
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with the reset code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.ResetPassword(cmd.Context(), resetEmail, resetCode, resetPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.auth.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, ok, err := current.auth.Whoami(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Not logged in"))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.Username, sess.Role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when empty)")
	loginCmd.Flags().StringVar(&loginCaptcha, "captcha", "", "captcha token")
	loginCmd.Flags().StringVar(&loginGoogle, "google", "", "Google credential; skips email/password")

	registerCmd.Flags().StringVar(&registerUsername, "username", "", "username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "password again")
	registerCmd.Flags().StringVar(&registerCaptcha, "captcha", "", "captcha token")

	verifyCmd.Flags().StringVar(&verifyEmail, "email", "", "email the code was sent to")
	verifyCmd.Flags().StringVar(&verifyCode, "code", "", "verification code")

	forgotPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "account email")

	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "account email")
	resetPasswordCmd.Flags().StringVar(&resetCode, "code", "", "reset code")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "new-password", "", "new password")
}
