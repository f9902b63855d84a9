package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordTrace walks the tree and records callback invocations in order.
func recordTrace(t *testing.T, n *Node) []string {
	t.Helper()
	var trace []string
	record := func(kind string) func(*Node) error {
		return func(n *Node) error {
			name := ""
			if n.Name != nil {
				name = *n.Name
			}
			trace = append(trace, kind+":"+name)
			return nil
		}
	}
	err := Traverse(n, Callbacks{
		Output:         record("output"),
		Workspace:      record("workspace"),
		ContainerEnter: record("enter"),
		ContainerExit:  record("exit"),
		View:           record("view"),
	})
	require.NoError(t, err)
	return trace
}

func TestTraverseOrder(t *testing.T) {
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeOutput, Name: str("DP-1"), Nodes: []*Node{
				{Type: NodeWorkspace, Name: str("1"), Nodes: []*Node{
					{Type: NodeCon, Name: str("split"), Layout: LayoutSplitH, Nodes: []*Node{
						{Type: NodeCon, Name: str("a")},
						{Type: NodeCon, Name: str("b")},
					}},
				}},
			}},
		},
	}
	assert.Equal(t, []string{
		"output:DP-1",
		"workspace:1",
		"enter:split",
		"view:a",
		"view:b",
		"exit:split",
	}, recordTrace(t, tree))
}

func TestTraverseSkipsScratchRoot(t *testing.T) {
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeRoot, Name: str(ScratchRootName), Nodes: []*Node{
				{Type: NodeOutput, Name: str("ghost"), Nodes: []*Node{
					{Type: NodeWorkspace, Name: str("ghost-ws"), Nodes: []*Node{
						{Type: NodeCon, Name: str("ghost-view")},
					}},
				}},
			}},
			{Type: NodeOutput, Name: str("DP-1"), Nodes: []*Node{
				{Type: NodeWorkspace, Name: str("1")},
			}},
		},
	}
	assert.Equal(t, []string{
		"output:DP-1",
		"workspace:1",
	}, recordTrace(t, tree))
}

func TestTraverseEmptyConIsView(t *testing.T) {
	// A con with no children is a leaf view even if it carries a
	// container layout.
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeCon, Name: str("leaf"), Layout: LayoutSplitH},
		},
	}
	assert.Equal(t, []string{"view:leaf"}, recordTrace(t, tree))
}

func TestTraverseAbortsOnCallbackError(t *testing.T) {
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeCon, Name: str("a")},
			{Type: NodeCon, Name: str("b")},
		},
	}
	var seen []string
	boom := errors.New("boom")
	err := Traverse(tree, Callbacks{
		View: func(n *Node) error {
			seen = append(seen, *n.Name)
			return boom
		},
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, seen, "traversal must stop at the first error")
}

func TestTraverseNilCallbacks(t *testing.T) {
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeOutput, Name: str("DP-1"), Nodes: []*Node{
				{Type: NodeWorkspace, Name: str("1"), Nodes: []*Node{
					{Type: NodeCon},
				}},
			}},
		},
	}
	assert.NoError(t, Traverse(tree, Callbacks{}))
}

func TestWorkspaceNames(t *testing.T) {
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeOutput, Name: str("DP-1"), Nodes: []*Node{
				{Type: NodeWorkspace, Name: str("1")},
				{Type: NodeWorkspace, Name: str("web")},
			}},
		},
	}
	names := WorkspaceNames(tree)
	assert.Equal(t, map[string]bool{"1": true, "web": true}, names)
}

func TestFindFocusedAndParentOf(t *testing.T) {
	tree := &Node{
		Type: NodeRoot,
		Nodes: []*Node{
			{Type: NodeWorkspace, ID: 1, Name: str("1"), Nodes: []*Node{
				{Type: NodeCon, ID: 2, Nodes: []*Node{
					{Type: NodeCon, ID: 3},
					{Type: NodeCon, ID: 4, Focused: true},
				}},
			}},
		},
	}
	focused := tree.FindFocused()
	require.NotNil(t, focused)
	assert.Equal(t, int64(4), focused.ID)

	parent := tree.ParentOf(focused.ID)
	require.NotNil(t, parent)
	assert.Equal(t, int64(2), parent.ID)

	assert.Nil(t, tree.ParentOf(99))
}
