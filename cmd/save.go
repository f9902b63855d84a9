package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yuri91/swaystart/internal/config"
	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/output"
	"github.com/yuri91/swaystart/internal/sway"
)

// SaveResult is the output of the save command.
type SaveResult struct {
	OK         bool   `yaml:"ok"         json:"ok"`
	Path       string `yaml:"path"       json:"path"`
	Workspaces int    `yaml:"workspaces" json:"workspaces"`
	Views      int    `yaml:"views"      json:"views"`
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Capture the current layout tree to a file",
	Long: `Query the live tree, derive one swallow matcher per window from its
identity attributes, and write the annotated tree as a JSON document.`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringP("output", "o", "layout.json", "Path to write the layout document")
}

func runSave(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := dialClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := executeSave(client, path)
	if err != nil {
		return err
	}
	return output.Print(res)
}

func executeSave(client *sway.Client, path string) (*SaveResult, error) {
	tree, err := client.GetTree()
	if err != nil {
		return nil, err
	}
	doc, err := layout.Capture(tree)
	if err != nil {
		return nil, err
	}
	if err := layout.WriteDocument(path, doc); err != nil {
		return nil, err
	}

	res := &SaveResult{OK: true, Path: path}
	_ = layout.Traverse(doc, layout.Callbacks{
		Workspace: func(n *layout.Node) error {
			res.Workspaces++
			return nil
		},
		View: func(n *layout.Node) error {
			res.Views++
			return nil
		},
	})
	return res, nil
}
