package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ElBenerDev/asistenteAltamirano/internal/chat"
	"github.com/ElBenerDev/asistenteAltamirano/internal/listing"
	"github.com/ElBenerDev/asistenteAltamirano/internal/render"
)

const (
	prompt       = "> "
	resetCommand = "/nuevo"
	quitCommand  = "/salir"
)

func newChatCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := chat.NewClient(opts.cfg.Chat.Endpoint, opts.cfg.Chat.Timeout, opts.logger)
			extractor := listing.NewExtractor(opts.cfg.Listings.BaseOrigin, opts.logger)
			conv := chat.NewConversation(client, extractor, opts.logger)

			return runChat(cmd, conv)
		},
	}
}

// runChat reads one message per line until EOF or /salir. Each line waits
// for its turn to finish, so input is only read while no request is pending.
func runChat(cmd *cobra.Command, conv *chat.Conversation) error {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	interactive := isTerminal(in)

	if interactive {
		fmt.Fprintf(out, "Escribí tu consulta. %s empieza una conversación nueva, %s termina.\n", resetCommand, quitCommand)
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case quitCommand:
			return nil
		case resetCommand:
			conv.Reset()
			fmt.Fprintln(out, "Conversación nueva.")
			continue
		}

		turn := conv.Submit(cmd.Context(), line)
		if err := render.Terminal(out, turn); err != nil {
			return fmt.Errorf("failed to write reply: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
