package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/models/store"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/export"
)

type HistoryCmd struct {
	env    *Environment
	limit  int
	runID  string
	output string
}

func NewHistoryCmd(env *Environment) *cobra.Command {
	hc := &HistoryCmd{env: env}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded deployment runs",
		RunE:  hc.run,
	}

	cmd.Flags().IntVar(&hc.limit, "limit", 20, "Number of runs to show, newest first")
	cmd.Flags().StringVar(&hc.runID, "run", "", "Show a single run")
	cmd.Flags().StringVarP(&hc.output, "output", "o", string(export.FormatText), "Output format: text, json or yaml")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := export.ParseFormat(hc.output)
	if err != nil {
		return err
	}

	s, closer, err := hc.env.history(ctx)
	if err != nil {
		return fmt.Errorf("failed to open deployment history: %w", err)
	}
	if s == nil {
		return errors.New("deployment history is disabled (history.path is empty)")
	}
	defer closer.Close()

	var runs []*store.DeploymentRun
	if hc.runID != "" {
		run, err := s.GetRun(ctx, hc.runID)
		if err != nil {
			return err
		}
		runs = append(runs, run)
	} else if runs, err = s.ListRuns(ctx, hc.limit); err != nil {
		return err
	}

	return export.NewHistoryReporter(cmd.OutOrStdout(), format).Handle(runs)
}
