package layout

// Callbacks is the set of optional hooks invoked by Traverse. A nil
// callback is a no-op. The same traversal drives capture, replay,
// reconciliation and spawning with different strategies.
type Callbacks struct {
	// Output is invoked for an output node before its children.
	Output func(n *Node) error
	// Workspace is invoked for a workspace node before its children.
	Workspace func(n *Node) error
	// ContainerEnter is invoked for a non-empty con before its children.
	ContainerEnter func(n *Node) error
	// ContainerExit is invoked for a non-empty con after its children.
	ContainerExit func(n *Node) error
	// View is invoked for a con with no children; it is not descended into.
	View func(n *Node) error
}

// Traverse walks n's children depth-first in list order, firing the
// typed callbacks. The reserved scratchpad subtree is skipped entirely.
// The first callback error aborts the traversal; callbacks already
// invoked are not rolled back.
func Traverse(n *Node, cb Callbacks) error {
	for _, c := range n.Nodes {
		container := false
		switch c.Type {
		case NodeRoot:
			if c.isScratchRoot() {
				continue
			}
		case NodeOutput:
			if err := call(cb.Output, c); err != nil {
				return err
			}
		case NodeWorkspace:
			if err := call(cb.Workspace, c); err != nil {
				return err
			}
		case NodeCon:
			if len(c.Nodes) == 0 {
				if err := call(cb.View, c); err != nil {
					return err
				}
				continue
			}
			container = true
			if err := call(cb.ContainerEnter, c); err != nil {
				return err
			}
		}
		if err := Traverse(c, cb); err != nil {
			return err
		}
		if container {
			if err := call(cb.ContainerExit, c); err != nil {
				return err
			}
		}
	}
	return nil
}

func call(fn func(*Node) error, n *Node) error {
	if fn == nil {
		return nil
	}
	return fn(n)
}

// WorkspaceNames collects the names of every workspace referenced in
// the tree.
func WorkspaceNames(n *Node) map[string]bool {
	names := make(map[string]bool)
	_ = Traverse(n, Callbacks{
		Workspace: func(w *Node) error {
			if w.Name != nil {
				names[*w.Name] = true
			}
			return nil
		},
	})
	return names
}
