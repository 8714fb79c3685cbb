package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/router"
	"github.com/shashiranjanraj/bazaar/internal/screen"
	"github.com/shashiranjanraj/bazaar/internal/session"
	"github.com/shashiranjanraj/bazaar/internal/shopstub"
)

// bazaar browse: walk the client's screens by route, starting at the root
// redirect.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive shell over the client's screens",
	RunE: func(cmd *cobra.Command, args []string) error {
		sh := &shell{
			client: newClient(),
			sess:   newSession(),
			routes: router.New(),
		}
		return sh.run(cmd.Context())
	},
}

// bazaar demo: browse against an in-process stub backend. OTP codes are
// printed instead of emailed, the way the real backend behaves without an
// SMTP account.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the browse shell against a local stub backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		stub := shopstub.New()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("demo: listen: %w", err)
		}
		srv := &http.Server{Handler: stub.Handler()}
		go srv.Serve(ln)
		defer srv.Close()

		config.Set("BASE_URL", "http://"+ln.Addr().String())
		fmt.Printf("Stub shop API listening on %s\n", ln.Addr())

		sh := &shell{
			client:  newClient(),
			sess:    session.New(session.NewMemStore()),
			routes:  router.New(),
			peekOTP: stub.OTPFor,
		}
		return sh.run(cmd.Context())
	},
}

// shell drives one screen at a time. Navigation requested by a screen wins
// over the prompt; the route table decides what actually renders.
type shell struct {
	client  *api.Client
	sess    *session.Session
	routes  *router.Router
	peekOTP func(string) (string, bool)

	next string // set by the recording navigator
}

func (sh *shell) nav() screen.Navigator {
	return screen.NavigatorFunc(func(path string) { sh.next = path })
}

func (sh *shell) run(ctx context.Context) error {
	current, err := sh.routes.Resolve("/", sh.authed(), config.GuardMode())
	if err != nil {
		return err
	}

	for {
		sh.next = ""
		if err := sh.render(ctx, current); err != nil {
			return err
		}

		requested := sh.next
		if requested == "" {
			var quit bool
			requested, quit = sh.promptNav()
			if quit {
				return nil
			}
		}

		resolved, err := sh.routes.Resolve(requested, sh.authed(), config.GuardMode())
		if err != nil {
			fmt.Println(err)
			continue
		}
		current = resolved
	}
}

func (sh *shell) authed() bool {
	return sh.sess.Token() != ""
}

func (sh *shell) promptNav() (string, bool) {
	fmt.Print("\nroute (go <path> | quit): ")
	line, err := stdin.ReadString('\n')
	if err == io.EOF {
		return "", true
	}

	line = strings.TrimSpace(line)
	switch {
	case line == "quit" || line == "q":
		return "", true
	case strings.HasPrefix(line, "go "):
		return strings.TrimSpace(strings.TrimPrefix(line, "go ")), false
	case strings.HasPrefix(line, "/"):
		return line, false
	default:
		fmt.Println("unknown command")
		return sh.promptNav()
	}
}

func (sh *shell) render(ctx context.Context, path string) error {
	fmt.Printf("\n── %s ──\n", path)

	switch path {
	case "/register":
		sh.renderRegister(ctx)
	case "/verify":
		sh.renderVerify(ctx)
	case "/login":
		sh.renderLogin(ctx)
	case "/products":
		return sh.renderDashboard(ctx)
	case "/chat":
		sh.renderChat(ctx)
	case "/profile":
		sh.renderProfile(ctx)
	default:
		fmt.Println("nothing to render")
	}
	return nil
}

func (sh *shell) renderRegister(ctx context.Context) {
	s := screen.NewRegister(sh.client, sh.sess, sh.nav())
	s.SetField("name", prompt(stdin, "Name", ""))
	s.SetField("email", prompt(stdin, "Email", ""))
	s.SetField("password", prompt(stdin, "Password", ""))
	s.SetField("confirm", prompt(stdin, "Confirm password", ""))
	s.Submit(ctx)
	fmt.Println(s.Message)

	if sh.peekOTP != nil {
		if otp, ok := sh.peekOTP(sh.sess.OTPToken()); ok {
			fmt.Printf("[DEV MODE] OTP: %s\n", otp)
		}
	}
}

func (sh *shell) renderVerify(ctx context.Context) {
	s := screen.NewVerify(sh.client, sh.sess, sh.nav())
	s.SetOTP(prompt(stdin, "Enter OTP", ""))
	s.Submit(ctx)
	fmt.Println(s.Message)
}

func (sh *shell) renderLogin(ctx context.Context) {
	s := screen.NewLogin(sh.client, sh.sess, sh.nav())
	s.SetField("email", prompt(stdin, "Email", ""))
	s.SetField("password", prompt(stdin, "Password", ""))
	s.Submit(ctx)
	fmt.Println(s.Message)
}

func (sh *shell) renderDashboard(ctx context.Context) error {
	d := screen.NewDashboard(sh.client, sh.sess)
	d.AlertFunc = func(msg string) { fmt.Println(msg) }
	d.Load(ctx)
	defer d.Unmount()

	for {
		if d.Msg != "" {
			fmt.Println(d.Msg)
		}
		printProfile(os.Stdout, d.Profile)
		printProducts(os.Stdout, d.Products)
		printOrders(os.Stdout, d.Orders)

		fmt.Print("\ndashboard (buy <id> | chat <msg> | go <path> | quit): ")
		line, err := stdin.ReadString('\n')
		if err == io.EOF {
			return nil
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "quit" || line == "q":
			return nil
		case strings.HasPrefix(line, "buy "):
			d.PlaceOrder(ctx, strings.TrimSpace(strings.TrimPrefix(line, "buy ")))
		case strings.HasPrefix(line, "chat "):
			seen := len(d.Chat.Transcript)
			d.Chat.SetInput(strings.TrimSpace(strings.TrimPrefix(line, "chat ")))
			d.Chat.Send(ctx)
			printTranscript(d.Chat.Transcript, seen)
		case strings.HasPrefix(line, "go "):
			sh.next = strings.TrimSpace(strings.TrimPrefix(line, "go "))
			return nil
		default:
			fmt.Println("unknown command")
		}
	}
}

func (sh *shell) renderChat(ctx context.Context) {
	panel := screen.NewChatPanel(sh.client, sh.sess)
	defer panel.Unmount()

	fmt.Println("Chat with the assistant. Empty line to leave.")
	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err == io.EOF {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		seen := len(panel.Transcript)
		panel.SetInput(line)
		panel.Send(ctx)
		printTranscript(panel.Transcript, seen)
	}
}

func (sh *shell) renderProfile(ctx context.Context) {
	s := screen.NewProfileView(sh.client, sh.sess)
	s.Load(ctx)

	switch {
	case s.Msg != "":
		fmt.Println(s.Msg)
	case s.Profile == nil:
		fmt.Println("Not logged in.")
	default:
		printProfile(os.Stdout, s.Profile)
		printOrders(os.Stdout, s.Orders)
	}
}
