package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/internal/router"
	"github.com/shashiranjanraj/bazaar/internal/screen"
)

// bazaar products: the dashboard as a one-shot render.
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Show the catalogue, and your profile and orders when logged in",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := screen.NewDashboard(newClient(), newSession())
		d.Load(cmd.Context())

		if d.Msg != "" {
			fmt.Println(d.Msg)
		}
		printProfile(os.Stdout, d.Profile)
		printProducts(os.Stdout, d.Products)
		printOrders(os.Stdout, d.Orders)
		return nil
	},
}

// bazaar order <product_id>: place an order for one unit.
var orderCmd = &cobra.Command{
	Use:   "order <product_id>",
	Short: "Order one unit of a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := screen.NewDashboard(newClient(), newSession())
		d.AlertFunc = func(msg string) { fmt.Println(msg) }

		// Load first so the synthesized order can carry the product's
		// name and price, the way the dashboard does it.
		d.Load(cmd.Context())
		d.PlaceOrder(cmd.Context(), args[0])

		printOrders(os.Stdout, d.Orders)
		return nil
	},
}

// bazaar profile: the standalone account view.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile and order history",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := screen.NewProfileView(newClient(), newSession())
		s.Load(cmd.Context())

		if s.Msg != "" {
			fmt.Println(s.Msg)
			return nil
		}
		if s.Profile == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		printProfile(os.Stdout, s.Profile)
		printOrders(os.Stdout, s.Orders)
		return nil
	},
}

// bazaar routes: print the client route table.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the client's routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PATH\tNAME\tAUTH\tREDIRECT")
		fmt.Fprintln(w, "----\t----\t----\t--------")
		for _, rt := range r.Routes() {
			auth := ""
			if rt.Authed {
				auth = "soft" // degrades without a token under GUARD_MODE=open
				if config.GuardMode() == router.GuardRedirect {
					auth = "redirect"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rt.Path, rt.Name, auth, rt.RedirectTo)
		}
		return w.Flush()
	},
}
