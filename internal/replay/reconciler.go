package replay

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yuri91/swaystart/internal/layout"
)

// Reconciler clears target workspaces of pre-existing content before
// replay begins. Every top-level child of a workspace named in the
// document is detached (set floating) so the new tiling structure can
// be built without interference, and every view under such a workspace
// becomes a day-zero swap candidate.
type Reconciler struct {
	conn Conn
	log  *zap.Logger
}

func NewReconciler(conn Conn, log *zap.Logger) *Reconciler {
	return &Reconciler{conn: conn, log: log}
}

// Collect walks the live tree and returns the detached-window
// candidates. Workspaces not referenced by the document are left
// untouched.
func (r *Reconciler) Collect(doc, live *layout.Node) ([]*layout.Node, error) {
	names := layout.WorkspaceNames(doc)
	var candidates []*layout.Node
	inTarget := false

	err := layout.Traverse(live, layout.Callbacks{
		Output: func(n *layout.Node) error {
			inTarget = false
			return nil
		},
		Workspace: func(n *layout.Node) error {
			inTarget = n.Name != nil && names[*n.Name]
			if !inTarget {
				return nil
			}
			for _, c := range n.Nodes {
				r.log.Debug("detach existing container",
					zap.Int64("id", c.ID),
					zap.String("workspace", *n.Name))
				if err := r.conn.RunCommand(fmt.Sprintf("[con_id=%d] floating enable", c.ID)); err != nil {
					return err
				}
			}
			return nil
		},
		View: func(n *layout.Node) error {
			if inTarget {
				candidates = append(candidates, n)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
