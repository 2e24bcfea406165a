package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// current is set by the root command before any subcommand runs.
var current *app

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Shop from the terminal",
	Long:          `storefront talks to the storefront REST API: browse products, keep a cart in sync with the server, check out and manage the shop as an admin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
}

func init() {
	rootCmd.AddCommand(
		loginCmd,
		registerCmd,
		verifyCmd,
		forgotPasswordCmd,
		resetPasswordCmd,
		logoutCmd,
		whoamiCmd,
		productsCmd,
		cartCmd,
		couponCmd,
		checkoutCmd,
		ordersCmd,
		profileCmd,
		adminCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if current != nil {
		current.close(context.Background())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
