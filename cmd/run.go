package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/app"
	"github.com/abhisek/cfdroid/internal/screens"
)

// runApp opens the runtime, builds screen dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	backend, hint := rt.chatBackend(cmd.Context())
	deps := &screens.Deps{
		Catalog:       rt.catalog,
		Tracker:       rt.tracker,
		Metadata:      rt.store.MetadataStore(),
		Events:        rt.store.EventRepo(),
		RotateSession: rt.rotateSession,
		ChatBackend:   backend,
		ChatHint:      hint,
		FeedbackDelay: rt.cfg.QuizFeedbackDelay,
		Logger:        rt.logger,
	}

	p := rt.tracker.Profile()
	greeting := ""
	if len(p.Recents) > 0 {
		greeting = fmt.Sprintf("Welcome back, %s", p.Rank)
	}

	return app.Run(deps, greeting)
}
