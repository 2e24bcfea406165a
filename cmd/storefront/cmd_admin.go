package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	banDays   int
	banReason string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin panel (ADMIN role only)",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := current.admin.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		renderUsers(cmd.OutOrStdout(), users)
		return nil
	},
}

var adminUserDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return current.admin.DeleteUser(cmd.Context(), id)
	},
}

var adminUserBanCmd = &cobra.Command{
	Use:   "ban <user-id>",
	Short: "Ban a user; --days 0 bans permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return current.admin.BanUser(cmd.Context(), id, banDays, banReason)
	},
}

var adminUserUnbanCmd = &cobra.Command{
	Use:   "unban <user-id>",
	Short: "Lift a ban",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return current.admin.UnbanUser(cmd.Context(), id)
	},
}

var adminCouponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "List coupons",
	RunE: func(cmd *cobra.Command, args []string) error {
		coupons, err := current.admin.ListCoupons(cmd.Context())
		if err != nil {
			return err
		}
		renderCoupons(cmd.OutOrStdout(), coupons)
		return nil
	},
}

var adminCouponCreateCmd = &cobra.Command{
	Use:   "create <code> <percent>",
	Short: "Create an active coupon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid percent %q", args[1])
		}
		return current.admin.CreateCoupon(cmd.Context(), args[0], pct)
	},
}

var adminCouponDeleteCmd = &cobra.Command{
	Use:   "delete <coupon-id>",
	Short: "Delete a coupon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return current.admin.DeleteCoupon(cmd.Context(), id)
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "delete-product <product-id>",
	Short: "Delete a product from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return current.admin.DeleteProduct(cmd.Context(), id)
	},
}

func init() {
	adminUserBanCmd.Flags().IntVar(&banDays, "days", 7, "ban length in days, 0 for permanent")
	adminUserBanCmd.Flags().StringVar(&banReason, "reason", "", "reason shown to the user")

	adminUsersCmd.AddCommand(adminUserDeleteCmd, adminUserBanCmd, adminUserUnbanCmd)
	adminCouponsCmd.AddCommand(adminCouponCreateCmd, adminCouponDeleteCmd)
	adminCmd.AddCommand(adminUsersCmd, adminCouponsCmd, adminProductDeleteCmd)
}
