package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all progress and conversations and start a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprint(out, "This deletes all progress, quiz results and conversations. Continue? [y/N] ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := rt.store.MetadataStore().ClearAllSessions(cmd.Context()); err != nil {
			return fmt.Errorf("wipe sessions: %w", err)
		}
		if _, err := rt.rotateSession(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(out, "All local data wiped. A fresh session has started.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
