package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/session"
)

func newSession() *session.Session {
	return session.New(session.NewFileStore(config.SessionPath()))
}

func newClient() *api.Client {
	return api.NewClient(config.BaseURL())
}

// prompt reads one line for the labelled field, reusing def when the line
// is empty.
func prompt(in *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func printProducts(w io.Writer, products []api.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products available.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	fmt.Fprintln(tw, "--\t----\t-----")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", p.ProductID, p.Name, p.Price)
	}
	tw.Flush()
}

func printOrders(w io.Writer, orders []api.Order) {
	if len(orders) == 0 {
		return
	}

	fmt.Fprintln(w, "\nOrders:")
	for _, o := range orders {
		tag := ""
		if o.Local {
			tag = " (local, unconfirmed)"
		}
		fmt.Fprintf(w, "  %s  %s  %s%s\n", o.OrderID, o.Status, o.CreatedAt, tag)
		for _, item := range o.Items {
			fmt.Fprintf(w, "    %s x %d - %.2f\n", item.Name, item.Qty, item.Price)
		}
	}
}

func printProfile(w io.Writer, p *api.Profile) {
	if p == nil {
		return
	}
	fmt.Fprintf(w, "Name:   %s\nEmail:  %s\nJoined: %s\n", p.Name, p.Email, p.CreatedAt)
}

var stdin = bufio.NewReader(os.Stdin)
