package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/communitynav/navigator/internal/app"
	"github.com/communitynav/navigator/models"
)

func chatCMD(cfgPath *string) *cobra.Command {
	var withHistory bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the resource navigator agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := buildNavigator(*cfgPath)
			if err != nil {
				return err
			}
			ctrl := app.NewChat(nav.Chat, nav.Profile, nav.ChatService, nav.ResourceService)

			out := cmd.OutOrStdout()
			if withHistory {
				if err := ctrl.LoadHistory(cmd.Context(), nav.Config.Chat.HistoryLimit); err == nil {
					for _, m := range nav.Chat.Messages() {
						renderExchange(out, m)
					}
				} else {
					fmt.Fprintf(out, "! %s\n", nav.Chat.Err())
				}
			}

			return runChatSession(cmd.Context(), ctrl, cmd.InOrStdin(), out)
		},
	}
	cmd.Flags().BoolVar(&withHistory, "history", false, "load prior exchanges before starting")
	return cmd
}

func runChatSession(ctx context.Context, ctrl *app.Chat, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Welcome! Tell me about what services you're looking for.")
	fmt.Fprintln(out, "I can help you find shelter, food, healthcare, job training, and other resources.")
	fmt.Fprintln(out, `Type "/help" for commands, "/quit" to leave.`)

	var (
		picks     []models.Location
		suggested string
	)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			if suggested == "" {
				continue
			}
			// An empty line accepts the suggested prompt from a
			// location pick.
			line, suggested = suggested, ""
		}

		if !strings.HasPrefix(line, "/") {
			sendAndRender(ctx, ctrl, out, line)
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "/quit", "/exit":
			return nil

		case "/help":
			printChatHelp(out)

		case "/location":
			query := strings.TrimSpace(strings.TrimPrefix(line, "/location"))
			if query == "" {
				fmt.Fprintln(out, "Popular cities:", strings.Join(models.SuggestedCities(), ", "))
				continue
			}
			locations, err := ctrl.SearchLocations(ctx, query)
			if err != nil {
				fmt.Fprintf(out, "! %s\n", ctrl.Store.Err())
				continue
			}
			if len(locations) == 0 {
				fmt.Fprintln(out, "No locations found matching your search.")
				continue
			}
			picks = locations
			for i, loc := range locations {
				fmt.Fprintf(out, "%d. %s (%d services available)\n", i+1, loc.City, loc.ServiceCount)
			}
			fmt.Fprintln(out, `Pick one with "/pick <n>".`)

		case "/pick":
			if len(fields) != 2 || len(picks) == 0 {
				fmt.Fprintln(out, `Search first with "/location <city>".`)
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > len(picks) {
				fmt.Fprintf(out, "Pick a number between 1 and %d.\n", len(picks))
				continue
			}
			loc := picks[n-1]
			suggested = ctrl.SelectLocation(loc)
			fmt.Fprintf(out, "Currently viewing: %s\n", loc.City)
			fmt.Fprintf(out, "Suggested: %q (press enter to send)\n", suggested)

		case "/history":
			if err := ctrl.LoadHistory(ctx, 0); err != nil {
				fmt.Fprintf(out, "! %s\n", ctrl.Store.Err())
				continue
			}
			for _, m := range ctrl.Store.Messages() {
				renderExchange(out, m)
			}

		case "/clear":
			if err := ctrl.Clear(ctx); err != nil {
				fmt.Fprintf(out, "! %s\n", ctrl.Store.Err())
				continue
			}
			fmt.Fprintln(out, "Conversation cleared.")

		case "/feedback":
			if len(fields) != 3 {
				fmt.Fprintln(out, "Usage: /feedback <message-id> up|down")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Fprintln(out, "Usage: /feedback <message-id> up|down")
				continue
			}
			ctrl.Feedback(ctx, id, fields[2] == "up")
			fmt.Fprintln(out, "Thanks for the feedback.")

		case "/copy":
			if len(fields) != 2 {
				fmt.Fprintln(out, "Usage: /copy <message-id>")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Fprintln(out, "Usage: /copy <message-id>")
				continue
			}
			if text, ok := ctrl.ResponseText(id); ok {
				fmt.Fprintln(out, text)
			} else {
				fmt.Fprintln(out, "No such message.")
			}

		case "/profile":
			renderProfile(out, ctrl.Profile.State())

		default:
			fmt.Fprintf(out, "Unknown command %q. Type /help.\n", fields[0])
		}
	}
}

func sendAndRender(ctx context.Context, ctrl *app.Chat, out io.Writer, text string) {
	if err := ctrl.Send(ctx, text); err != nil {
		fmt.Fprintf(out, "! %s\n", ctrl.Store.Err())
		return
	}
	messages := ctrl.Store.Messages()
	if len(messages) == 0 {
		return
	}
	renderExchange(out, messages[len(messages)-1])
}

func renderExchange(out io.Writer, m models.ChatMessage) {
	fmt.Fprintf(out, "[%d] you: %s\n", m.ID, m.UserMessage)
	if m.Pending() {
		fmt.Fprintln(out, "      agent: ...")
		return
	}
	fmt.Fprintf(out, "      agent: %s\n", m.AgentResponse)
	if len(m.ToolsUsed) > 0 {
		fmt.Fprintf(out, "      tools used: %s\n", strings.Join(m.ToolsUsed, ", "))
	}
}

func printChatHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  /location <city>        search cities with services")
	fmt.Fprintln(out, "  /pick <n>               use a searched location")
	fmt.Fprintln(out, "  /history                load prior exchanges")
	fmt.Fprintln(out, "  /clear                  clear the conversation")
	fmt.Fprintln(out, "  /feedback <id> up|down  rate an agent response")
	fmt.Fprintln(out, "  /copy <id>              print an agent response verbatim")
	fmt.Fprintln(out, "  /profile                show the session profile")
	fmt.Fprintln(out, "  /quit                   leave")
}
