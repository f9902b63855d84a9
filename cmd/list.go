package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yuri91/swaystart/internal/config"
	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/output"
	"github.com/yuri91/swaystart/internal/sway"
)

// WorkspaceInfo describes one live workspace.
type WorkspaceInfo struct {
	Name    string `yaml:"name"              json:"name"`
	Output  string `yaml:"output"            json:"output"`
	Views   int    `yaml:"views"             json:"views"`
	Focused bool   `yaml:"focused,omitempty" json:"focused,omitempty"`
}

// ListResult is the output of the list command.
type ListResult struct {
	Workspaces []WorkspaceInfo `yaml:"workspaces" json:"workspaces"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List live workspaces and their view counts",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := dialClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := executeList(client)
	if err != nil {
		return err
	}
	return output.Print(res)
}

func executeList(client *sway.Client) (*ListResult, error) {
	tree, err := client.GetTree()
	if err != nil {
		return nil, err
	}

	res := &ListResult{}
	currentOutput := ""
	err = layout.Traverse(tree, layout.Callbacks{
		Output: func(n *layout.Node) error {
			if n.Name != nil {
				currentOutput = *n.Name
			}
			return nil
		},
		Workspace: func(n *layout.Node) error {
			name := ""
			if n.Name != nil {
				name = *n.Name
			}
			res.Workspaces = append(res.Workspaces, WorkspaceInfo{
				Name:    name,
				Output:  currentOutput,
				Focused: n.FindFocused() != nil,
			})
			return nil
		},
		View: func(n *layout.Node) error {
			if len(res.Workspaces) > 0 {
				res.Workspaces[len(res.Workspaces)-1].Views++
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
