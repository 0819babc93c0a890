package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/chat"
	"github.com/abhisek/cfdroid/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask Droid a question and stream the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if topic != "" {
			if _, err := rt.catalog.Get(topic); err != nil {
				return err
			}
		}

		backend, hint := rt.chatBackend(cmd.Context())
		if backend == nil {
			return fmt.Errorf("%s", hint)
		}

		sess := chat.NewSession(rt.store.MetadataStore(), backend, rt.sessionID, chat.Options{Logger: rt.logger})
		if _, err := sess.LoadHistory(cmd.Context()); err != nil {
			rt.logger.Warn("history not loaded", "err", err)
		}

		out := cmd.OutOrStdout()
		_, err = sess.Send(cmd.Context(), strings.Join(args, " "), chat.SendOptions{TopicID: topic}, func(ev chat.Event) {
			switch ev.Kind {
			case chat.EventChunk:
				fmt.Fprint(out, ev.Chunk)
			case chat.EventDone:
				fmt.Fprintln(out)
			}
		})
		return err
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		msgs, err := rt.store.TranscriptRepo().Recent(cmd.Context(), rt.sessionID, limit)
		if err != nil {
			return fmt.Errorf("load transcript: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(msgs) == 0 {
			fmt.Fprintln(out, "No messages yet.")
			return nil
		}
		for _, m := range msgs {
			who := "You"
			if m.Role == store.RoleAssistant {
				who = "Droid"
			}
			ts := time.UnixMilli(m.Timestamp).Local().Format("2006-01-02 15:04")
			fmt.Fprintf(out, "[%s] %s:\n%s\n\n", ts, who, m.Content)
		}
		return nil
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored conversation and start a new session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		sess := chat.NewSession(rt.store.MetadataStore(), nil, rt.sessionID, chat.Options{
			Logger:       rt.logger,
			NewSessionID: rt.rotateSession,
		})
		if err := sess.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear conversation: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Conversation cleared. A fresh session has started.")
		return nil
	},
}

func init() {
	chatCmd.Flags().StringP("topic", "t", "", "Scope the question to a service id")
	chatHistoryCmd.Flags().IntP("limit", "n", 0, "Only show the last n messages (0 for all)")

	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
}
