package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/usecase"

	"github.com/spf13/cobra"
)

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// ---- products ----

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := current.catalog.ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

var productsSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search products by keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := current.catalog.SearchProducts(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		renderProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		p, err := current.catalog.GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		renderProduct(cmd.OutOrStdout(), p)

		if productImageOut == "" {
			return nil
		}
		img, err := current.catalog.ProductImage(cmd.Context(), p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(productImageOut, img, 0o644); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "image saved to %s\n", productImageOut)
		return nil
	},
}

var productImageOut string

// ---- cart ----

var cartAddQuantity int64

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart as the server has it",
	RunE: func(cmd *cobra.Command, args []string) error {
		// loaded once at startup; the failure, if any, is recorded there
		if err := current.cart.LastError(); err != nil {
			return err
		}
		renderCart(cmd.OutOrStdout(), current.cart.Lines(), current.cart.Total())
		return nil
	},
}

// cartMutation runs fn on the product id argument and prints the refreshed cart.
func cartMutation(use string, short string, fn func(cmd *cobra.Command, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <product-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !current.sessions.Authenticated(cmd.Context()) {
				return usecase.ErrAuthRequired
			}
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			if err := fn(cmd, id); err != nil {
				return err
			}
			renderCart(cmd.OutOrStdout(), current.cart.Lines(), current.cart.Total())
			return nil
		},
	}
}

var cartAddCmd = cartMutation("add", "Add a product (negative --quantity takes away)", func(cmd *cobra.Command, id int64) error {
	return current.cart.AddToCart(cmd.Context(), id, cartAddQuantity)
})

var cartIncCmd = cartMutation("inc", "One more of a cart line", func(cmd *cobra.Command, id int64) error {
	return current.cart.IncreaseQuantity(cmd.Context(), id)
})

var cartDecCmd = cartMutation("dec", "One less of a cart line", func(cmd *cobra.Command, id int64) error {
	return current.cart.DecreaseQuantity(cmd.Context(), id)
})

var cartRemoveCmd = cartMutation("remove", "Remove a line from the cart", func(cmd *cobra.Command, id int64) error {
	return current.cart.RemoveFromCart(cmd.Context(), id)
})

// ---- checkout ----

var (
	checkoutShipping string
	checkoutCoupon   string
	checkoutAddress  usecase.CheckoutInput
)

var couponCmd = &cobra.Command{
	Use:   "coupon <code>",
	Short: "Check a coupon against the current cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := current.checkout.ApplyCoupon(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderTotals(cmd.OutOrStdout(), current.checkout.Totals(model.ShippingMethod(checkoutShipping)), c.Code)
		return nil
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Long: fmt.Sprintf(`Place an order for the current cart.

Shipping methods: %s.`, shippingList()),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var couponCode string
		if checkoutCoupon != "" {
			c, err := current.checkout.ApplyCoupon(ctx, checkoutCoupon)
			if err != nil {
				return err
			}
			couponCode = c.Code
		}

		in := checkoutAddress
		in.ShippingMethod = model.ShippingMethod(checkoutShipping)
		renderTotals(out, current.checkout.Totals(in.ShippingMethod), couponCode)

		order, err := current.checkout.PlaceOrder(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Order %s: %s, %s\n", order.ID, order.Status, order.TotalAmount)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show your order history",
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := current.checkout.ListOrders(cmd.Context())
		if err != nil {
			return err
		}
		renderOrders(cmd.OutOrStdout(), orders)
		return nil
	},
}

func shippingList() string {
	var parts []string
	for _, m := range model.ShippingMethods() {
		parts = append(parts, fmt.Sprintf("%q (%s)", string(m), m.Cost()))
	}
	return strings.Join(parts, ", ")
}

func init() {
	productsCmd.AddCommand(productsSearchCmd, productsShowCmd)
	productsShowCmd.Flags().StringVar(&productImageOut, "image-out", "", "save the product image to this file")

	cartAddCmd.Flags().Int64VarP(&cartAddQuantity, "quantity", "q", 1, "units to add")
	cartCmd.AddCommand(cartAddCmd, cartIncCmd, cartDecCmd, cartRemoveCmd)

	couponCmd.Flags().StringVar(&checkoutShipping, "shipping", string(model.ShippingDHL), "shipping method for the preview")

	f := checkoutCmd.Flags()
	f.StringVar(&checkoutAddress.FirstName, "first-name", "", "first name")
	f.StringVar(&checkoutAddress.LastName, "last-name", "", "last name")
	f.StringVar(&checkoutAddress.Street, "street", "", "street and number")
	f.StringVar(&checkoutAddress.City, "city", "", "city")
	f.StringVar(&checkoutAddress.ZipCode, "zip", "", "zip code")
	f.StringVar(&checkoutShipping, "shipping", string(model.ShippingDHL), "shipping method")
	f.StringVar(&checkoutCoupon, "coupon", "", "coupon code")
}
