package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yuri91/swaystart/internal/config"
	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/output"
	"github.com/yuri91/swaystart/internal/placeholder"
	"github.com/yuri91/swaystart/internal/replay"
)

// ReplayResult is the output of the replay command.
type ReplayResult struct {
	OK           bool   `yaml:"ok"           json:"ok"`
	Layout       string `yaml:"layout"       json:"layout"`
	Placeholders int    `yaml:"placeholders" json:"placeholders"`
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Rebuild a saved layout with placeholder windows",
	Long: `Read a layout document and reconstruct it: workspaces and containers
are rebuilt with one placeholder window per saved view, pre-existing
windows on the target workspaces are detached and offered as swap
candidates, and the command then waits until every placeholder has been
swapped for a matching real window (or closed).

There are no timeouts: replay finishes when the last placeholder is
resolved, or fails on the first command error.`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringP("layout", "l", "", "Path of the layout document to replay")
	replayCmd.Flags().Bool("spawn", false, "Launch each saved view's application via the WM")
	_ = replayCmd.MarkFlagRequired("layout")
}

func runReplay(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("layout")
	spawn, _ := cmd.Flags().GetBool("spawn")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	res, err := executeReplay(cfg, path, spawn)
	if err != nil {
		return err
	}
	return output.Print(res)
}

func executeReplay(cfg *config.Config, path string, spawn bool) (*ReplayResult, error) {
	doc, err := layout.ReadDocument(path)
	if err != nil {
		return nil, err
	}

	client, err := dialClient(cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	events, err := subscribeEvents(cfg)
	if err != nil {
		return nil, err
	}
	defer events.Close()

	ph := placeholder.Start(cfg.PlaceholderCommand, log)
	clean := false
	defer func() {
		if !clean {
			ph.Stop()
		}
	}()

	// Clear the target workspaces before building, keeping what was
	// there as day-zero swap candidates.
	live, err := client.GetTree()
	if err != nil {
		return nil, err
	}
	candidates, err := replay.NewReconciler(client, log).Collect(doc, live)
	if err != nil {
		return nil, err
	}

	builder := replay.NewBuilder(client, events, ph, log)
	if err := builder.Build(doc); err != nil {
		return nil, err
	}
	placeholders := builder.Registry().Len()

	if spawn {
		if err := replay.Spawn(client, doc, log); err != nil {
			return nil, err
		}
	}

	swapper := replay.NewSwapper(client, events, builder.Registry(),
		replay.UnmatchedPolicy(cfg.UnmatchedWindow), log)
	if err := swapper.Run(candidates); err != nil {
		return nil, err
	}

	// Let outstanding placeholder windows close naturally before exit.
	clean = true
	ph.WaitUntilIdle()

	return &ReplayResult{OK: true, Layout: path, Placeholders: placeholders}, nil
}
