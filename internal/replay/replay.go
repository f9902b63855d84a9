// Package replay reconstructs a saved layout: it replays the document
// as a tree of placeholder windows, then swaps each placeholder for the
// real window that matches its recorded swallow rules.
package replay

import (
	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/sway"
)

// Conn is the synchronous command/query surface of the window manager.
type Conn interface {
	// RunCommand executes one logical command and waits for its ack.
	RunCommand(cmd string) error
	// GetTree returns a full snapshot of the live layout tree.
	GetTree() (*layout.Node, error)
}

// Events is a blocking stream of window-change events, delivered
// strictly in order. A terminated stream surfaces as an error.
type Events interface {
	Next() (*sway.WindowEvent, error)
}

// Placeholders creates inert placeholder windows. CreateWindow is
// fire-and-forget; the caller observes the window's existence through
// the event stream, never through this interface.
type Placeholders interface {
	CreateWindow(title, appID string)
}
