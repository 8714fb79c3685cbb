package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

func main() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Close()
		os.Exit(1)
	}
}

var serverFlag string

var rootCmd = &cobra.Command{
	Use:   "bazaar",
	Short: "Terminal storefront client",
	Long: "Bazaar is a terminal client for the bazaar shop API: register with an\n" +
		"email OTP, log in, browse the catalogue, place orders, and talk to the\n" +
		"support assistant.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if serverFlag != "" {
			config.Set("BASE_URL", serverFlag)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "",
		"override the API base URL (e.g. https://shop.example.com)")

	// Account
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	// Shop
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(profileCmd)

	// Chat
	rootCmd.AddCommand(chatCmd)

	// Navigation
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(demoCmd)
}
