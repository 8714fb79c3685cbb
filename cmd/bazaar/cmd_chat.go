package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/internal/api"
	"github.com/shashiranjanraj/bazaar/internal/screen"
)

// bazaar chat: the standalone assistant widget as a REPL. With a message
// argument it sends once and exits.
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the support assistant",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		panel := screen.NewChatPanel(newClient(), newSession())

		if len(args) == 1 {
			panel.SetInput(args[0])
			panel.Send(cmd.Context())
			printTranscript(panel.Transcript, 0)
			return nil
		}

		fmt.Println("Chat with the assistant. Empty line or /quit to leave.")
		for {
			fmt.Print("> ")
			line, err := stdin.ReadString('\n')
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			line = strings.TrimSpace(line)
			if line == "" || line == "/quit" {
				return nil
			}

			seen := len(panel.Transcript)
			panel.SetInput(line)
			panel.Send(cmd.Context())
			printTranscript(panel.Transcript, seen)
		}
	},
}

// printTranscript prints transcript entries from index from onward.
func printTranscript(transcript []api.ChatMessage, from int) {
	for _, m := range transcript[from:] {
		label := "you"
		if m.Role == api.RoleBot {
			label = "bot"
		}
		fmt.Printf("%s: %s\n", label, m.Content)
	}
}
