package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the knowledge check in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		type transition struct {
			snap quiz.Snapshot
			err  error
		}
		transitions := make(chan transition, 1)

		sess, err := quiz.NewSession(catalog.QuizQuestions(), quiz.Options{
			FeedbackDelay: rt.cfg.QuizFeedbackDelay,
			Recorder:      rt.tracker,
			Logger:        rt.logger,
			OnTransition: func(snap quiz.Snapshot, err error) {
				transitions <- transition{snap: snap, err: err}
			},
		})
		if err != nil {
			return err
		}
		defer sess.Close()

		out := cmd.OutOrStdout()
		in := bufio.NewReader(cmd.InOrStdin())

		snap := sess.Start()
		for snap.State == quiz.StateInProgress {
			q := snap.Question
			fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", snap.Index+1, snap.Total, q.Question)
			for i, opt := range q.Options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
			}

			idx, err := readChoice(in, out, len(q.Options))
			if err != nil {
				return err
			}
			fb, err := sess.Answer(idx)
			if err != nil {
				return err
			}
			if fb.Correct {
				fmt.Fprintln(out, "Correct!")
			} else {
				fmt.Fprintf(out, "Not quite. The answer is %d) %s\n", fb.CorrectIndex+1, q.Options[fb.CorrectIndex])
			}
			fmt.Fprintln(out, fb.Explanation)

			tr := <-transitions
			snap = tr.snap
			if tr.err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: result not saved: %v\n", tr.err)
			}
		}

		fmt.Fprintf(out, "\nYou scored %d / %d (%.0f%%)\n", snap.Score, snap.Total, snap.Percentage())
		p := rt.tracker.Profile()
		fmt.Fprintf(out, "Rank: %s · Level %d\n", p.Rank, p.Level)
		return nil
	},
}

// readChoice prompts until a valid 1-based option number is entered and
// returns it 0-based.
func readChoice(in *bufio.Reader, out io.Writer, n int) (int, error) {
	for {
		fmt.Fprintf(out, "Your answer [1-%d]: ", n)
		line, err := in.ReadString('\n')
		if v, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		if err != nil {
			if err == io.EOF {
				return 0, fmt.Errorf("quiz abandoned")
			}
			return 0, err
		}
		fmt.Fprintln(out, "Please enter a number from the list.")
	}
}
