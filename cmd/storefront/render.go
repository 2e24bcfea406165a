package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/usecase"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderProducts(w io.Writer, products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No products found"))
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, headerStyle.Render("ID")+"\t"+headerStyle.Render("NAME")+"\t"+headerStyle.Render("BRAND")+"\t"+headerStyle.Render("PRICE")+"\t"+headerStyle.Render("STOCK"))
	for _, p := range products {
		stock := fmt.Sprintf("%d", p.StockQuantity)
		if !p.ProductAvailable || p.StockQuantity == 0 {
			stock = "out of stock"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Brand, p.Price, stock)
	}
	_ = tw.Flush()
}

func renderProduct(w io.Writer, p model.Product) {
	fmt.Fprintln(w, headerStyle.Render(p.Name))
	fmt.Fprintf(w, "id:        %d\n", p.ID)
	fmt.Fprintf(w, "brand:     %s\n", p.Brand)
	fmt.Fprintf(w, "category:  %s\n", p.Category)
	fmt.Fprintf(w, "price:     %s\n", p.Price)
	fmt.Fprintf(w, "stock:     %d\n", p.StockQuantity)
	fmt.Fprintf(w, "released:  %s\n", p.ReleaseDate)
	if p.Description != "" {
		fmt.Fprintln(w, mutedStyle.Render(p.Description))
	}
}

func renderCart(w io.Writer, lines []model.CartLine, total model.Money) {
	if len(lines) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Your cart is empty"))
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, headerStyle.Render("ID")+"\t"+headerStyle.Render("NAME")+"\t"+headerStyle.Render("PRICE")+"\t"+headerStyle.Render("QTY")+"\t"+headerStyle.Render("SUBTOTAL"))
	for _, l := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\t%s\n", l.ID, l.Name, l.Price, l.Quantity, l.StockQuantity, l.Subtotal())
	}
	_ = tw.Flush()
	fmt.Fprintln(w, successStyle.Render("Total: "+total.String()))
}

func renderTotals(w io.Writer, t usecase.Totals, coupon string) {
	fmt.Fprintf(w, "Subtotal:  %s\n", t.Subtotal)
	if coupon != "" {
		fmt.Fprintf(w, "Discount:  -%s (%s)\n", t.Discount, coupon)
	}
	fmt.Fprintf(w, "Shipping:  %s\n", t.Shipping)
	fmt.Fprintln(w, successStyle.Render("Total:     "+t.Total.String()))
}

func renderOrders(w io.Writer, orders []model.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No orders yet"))
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, headerStyle.Render("ORDER")+"\t"+headerStyle.Render("DATE")+"\t"+headerStyle.Render("STATUS")+"\t"+headerStyle.Render("ITEMS")+"\t"+headerStyle.Render("TOTAL"))
	for _, o := range orders {
		var n int64
		for _, it := range o.Items {
			n += it.Quantity
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", o.ID, o.CreatedAt, o.Status, n, o.TotalAmount)
	}
	_ = tw.Flush()
}

func renderUsers(w io.Writer, users []model.AdminUser) {
	tw := newTable(w)
	fmt.Fprintln(tw, headerStyle.Render("ID")+"\t"+headerStyle.Render("USERNAME")+"\t"+headerStyle.Render("EMAIL")+"\t"+headerStyle.Render("ROLE")+"\t"+headerStyle.Render("STATUS"))
	for _, u := range users {
		status := "active"
		switch {
		case u.Banned && u.BanExpiration != "":
			status = "banned until " + u.BanExpiration + " (" + u.BanReason + ")"
		case u.Banned:
			status = "banned (" + u.BanReason + ")"
		case !u.Enabled:
			status = "unverified"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, model.ParseRole(u.Role), status)
	}
	_ = tw.Flush()
}

func renderCoupons(w io.Writer, coupons []model.Coupon) {
	if len(coupons) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No coupons"))
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, headerStyle.Render("ID")+"\t"+headerStyle.Render("CODE")+"\t"+headerStyle.Render("DISCOUNT")+"\t"+headerStyle.Render("ACTIVE"))
	for _, c := range coupons {
		fmt.Fprintf(tw, "%d\t%s\t%d%%\t%t\n", c.ID, c.Code, c.DiscountPercent, c.IsActive)
	}
	_ = tw.Flush()
}
