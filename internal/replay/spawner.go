package replay

import (
	"go.uber.org/zap"

	"github.com/yuri91/swaystart/internal/layout"
)

// Spawn walks the document and asks the WM to launch the real
// application behind every leaf. Launched windows arrive through the
// event stream and are matched by the swapper like any other window.
func Spawn(conn Conn, doc *layout.Node, log *zap.Logger) error {
	return layout.Traverse(doc, layout.Callbacks{
		View: func(n *layout.Node) error {
			app := spawnTarget(n)
			if app == "" {
				log.Warn("leaf has no identity to spawn")
				return nil
			}
			log.Debug("spawn application", zap.String("app", app))
			return conn.RunCommand("exec " + app)
		},
	})
}

func spawnTarget(n *layout.Node) string {
	for _, m := range n.Swallows {
		if m.AppID != nil {
			return *m.AppID
		}
		if m.Class != nil {
			return *m.Class
		}
	}
	if n.AppID != nil {
		return *n.AppID
	}
	return ""
}
