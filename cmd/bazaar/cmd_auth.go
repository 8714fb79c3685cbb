package main

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/internal/screen"
)

var (
	regName     string
	regEmail    string
	regPassword string
	regConfirm  string
)

// bazaar register: submit the four fields and stash the OTP exchange token.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account (sends an OTP to your email)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession()
		s := screen.NewRegister(newClient(), sess, announceNav())

		s.SetField("name", orPrompt(regName, "Name"))
		s.SetField("email", orPrompt(regEmail, "Email"))
		s.SetField("password", orPrompt(regPassword, "Password"))
		s.SetField("confirm", orPrompt(regConfirm, "Confirm password"))

		s.Submit(cmd.Context())
		fmt.Println(s.Message)
		return nil
	},
}

var verifyOTPFlag string

// bazaar verify: exchange the emailed code for a confirmed account.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the OTP sent after registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := screen.NewVerify(newClient(), newSession(), announceNav())
		s.SetOTP(orPrompt(verifyOTPFlag, "Enter OTP"))
		s.Submit(cmd.Context())
		fmt.Println(s.Message)
		return nil
	},
}

var (
	loginEmail    string
	loginPassword string
)

// bazaar login: exchange credentials for a bearer token.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := screen.NewLogin(newClient(), newSession(), announceNav())
		s.SetField("email", orPrompt(loginEmail, "Email"))
		s.SetField("password", orPrompt(loginPassword, "Password"))
		s.Submit(cmd.Context())
		fmt.Println(s.Message)
		return nil
	},
}

// bazaar logout: wipe stored credentials. A shared shell should not keep
// tokens around.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newSession().Clear(); err != nil {
			return err
		}
		fmt.Println("Session cleared.")
		return nil
	},
}

// bazaar whoami: show the claims inside the stored bearer token. The
// signature is not verified; only the server holds the secret.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the stored token says you are",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := newSession().Token()
		if token == "" {
			fmt.Println("Not logged in.")
			return nil
		}

		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return fmt.Errorf("stored token is not parseable: %w", err)
		}

		for _, key := range []string{"name", "email", "user_id"} {
			if v, ok := claims[key].(string); ok {
				fmt.Printf("%-8s %s\n", key+":", v)
			}
		}
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			fmt.Printf("%-8s %s\n", "expires:", exp.Time.Format("02 Jan 2006 15:04 MST"))
		}
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&regName, "name", "", "full name")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "email address")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password")
	registerCmd.Flags().StringVar(&regConfirm, "confirm", "", "password confirmation")

	verifyCmd.Flags().StringVar(&verifyOTPFlag, "otp", "", "the emailed one-time code")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
}

func orPrompt(flagValue, label string) string {
	if flagValue != "" {
		return flagValue
	}
	return prompt(stdin, label, "")
}

// announceNav prints where the flow continues; a one-shot command has no
// screen stack to actually switch.
func announceNav() screen.Navigator {
	return screen.NavigatorFunc(func(path string) {
		fmt.Printf("→ next: bazaar %s\n", commandFor(path))
	})
}

func commandFor(path string) string {
	switch path {
	case "/verify":
		return "verify"
	case "/login":
		return "login"
	case "/products":
		return "products"
	case "/register":
		return "register"
	case "/profile":
		return "profile"
	case "/chat":
		return "chat"
	default:
		return "browse"
	}
}
