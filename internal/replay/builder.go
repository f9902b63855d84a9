package replay

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/sway"
)

// placeholderPrefix tags every placeholder window's app_id so the
// swapper can tell placeholders apart from real windows.
const placeholderPrefix = "swaystart-ph-"

func isPlaceholder(n *layout.Node) bool {
	return n.AppID != nil && strings.HasPrefix(*n.AppID, placeholderPrefix)
}

// Builder drives the traversal over a saved document, issuing the
// layout-construction commands and creating one placeholder per leaf.
// Each placeholder is awaited through two milestones (new, then focus)
// before the next sibling-relative command is issued, then recorded in
// the registry together with the leaf's swallow matchers.
type Builder struct {
	conn         Conn
	events       Events
	placeholders Placeholders
	registry     *Registry
	log          *zap.Logger
	seq          int
}

func NewBuilder(conn Conn, events Events, placeholders Placeholders, log *zap.Logger) *Builder {
	return &Builder{
		conn:         conn,
		events:       events,
		placeholders: placeholders,
		registry:     NewRegistry(),
		log:          log,
	}
}

// Registry returns the matcher registry populated by Build.
func (b *Builder) Registry() *Registry {
	return b.registry
}

// Build replays the document as a tree of placeholders. Any command
// failure aborts immediately; placeholders already created are left on
// screen.
func (b *Builder) Build(doc *layout.Node) error {
	return layout.Traverse(doc, layout.Callbacks{
		Output:         b.onOutput,
		Workspace:      b.onWorkspace,
		ContainerEnter: b.onContainerEnter,
		ContainerExit:  b.onContainerExit,
		View:           b.onView,
	})
}

func (b *Builder) run(cmd string) error {
	b.log.Debug("run command", zap.String("cmd", cmd))
	return b.conn.RunCommand(cmd)
}

func (b *Builder) onOutput(n *layout.Node) error {
	if n.Name == nil {
		return fmt.Errorf("output node has no name")
	}
	return b.run("focus output " + *n.Name)
}

func (b *Builder) onWorkspace(n *layout.Node) error {
	if n.Name == nil {
		return fmt.Errorf("workspace node has no name")
	}
	return b.run("workspace " + *n.Name)
}

// onContainerEnter normalizes the current focus into a fresh horizontal
// split before applying the recorded style: the layout command is only
// well-defined relative to a known starting layout.
func (b *Builder) onContainerEnter(n *layout.Node) error {
	if err := b.run("splith"); err != nil {
		return err
	}
	switch n.Layout {
	case layout.LayoutSplitH, layout.LayoutSplitV, layout.LayoutTabbed, layout.LayoutStacked:
		return b.run("layout " + string(n.Layout))
	default:
		return fmt.Errorf("unsupported layout style %q", n.Layout)
	}
}

// onContainerExit sizes the container's children from their recorded
// percentages and refocuses the parent. Children are resized in reverse
// order because resize addressing is focus-relative: each resize
// consumes the current focus before moving to the previous sibling.
func (b *Builder) onContainerExit(n *layout.Node) error {
	var dim string
	switch n.Layout {
	case layout.LayoutSplitV:
		dim = "height"
	case layout.LayoutSplitH:
		dim = "width"
	default:
		// Tabbed and stacked containers have no linear extent.
		return b.run("focus parent")
	}

	extent, err := b.focusedParentExtent(dim)
	if err != nil {
		return err
	}
	for i := len(n.Nodes) - 1; i >= 0; i-- {
		c := n.Nodes[i]
		if c.Percent == nil {
			return fmt.Errorf("child %d of container has no recorded percent", i)
		}
		px := int(math.Floor(*c.Percent * float64(extent)))
		if err := b.run(fmt.Sprintf("resize set %s %d px", dim, px)); err != nil {
			return err
		}
		if err := b.run("focus prev sibling"); err != nil {
			return err
		}
	}
	return b.run("focus parent")
}

// focusedParentExtent queries the live tree and returns the pixel
// extent of the focused container's parent along the split axis.
func (b *Builder) focusedParentExtent(dim string) (int, error) {
	tree, err := b.conn.GetTree()
	if err != nil {
		return 0, err
	}
	focused := tree.FindFocused()
	if focused == nil {
		return 0, fmt.Errorf("no focused container in live tree")
	}
	parent := tree.ParentOf(focused.ID)
	if parent == nil {
		return 0, fmt.Errorf("focused container %d has no parent", focused.ID)
	}
	if parent.Rect == nil {
		return 0, fmt.Errorf("container %d has no geometry", parent.ID)
	}
	if dim == "height" {
		return parent.Rect.Height, nil
	}
	return parent.Rect.Width, nil
}

// onView creates one placeholder for the leaf and blocks until the WM
// reports it as a new window and then as focused. Replay never waits
// for a real application window, only for the placeholder.
func (b *Builder) onView(n *layout.Node) error {
	b.seq++
	tag := fmt.Sprintf("%s%d", placeholderPrefix, b.seq)
	b.placeholders.CreateWindow(placeholderTitle(n), tag)

	win, err := b.waitNewWindow(tag)
	if err != nil {
		return err
	}
	if err := b.waitWindowFocus(win.ID); err != nil {
		return err
	}

	matchers := n.Swallows
	if len(matchers) == 0 {
		matchers = []layout.Matcher{layout.DeriveMatcher(n)}
	}
	b.registry.Add(win.ID, matchers)
	return nil
}

// placeholderTitle labels the placeholder after the window it stands in
// for, so the skeleton layout is readable while swaps are pending.
func placeholderTitle(n *layout.Node) string {
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
	return "placeholder"
}

func (b *Builder) waitNewWindow(appID string) (*layout.Node, error) {
	b.log.Debug("wait for new window", zap.String("app_id", appID))
	for {
		ev, err := b.events.Next()
		if err != nil {
			return nil, err
		}
		if ev.Change == sway.WindowNew && ev.Container.AppID != nil && *ev.Container.AppID == appID {
			b.log.Debug("new window",
				zap.Int64("id", ev.Container.ID),
				zap.String("app_id", appID))
			return &ev.Container, nil
		}
	}
}

func (b *Builder) waitWindowFocus(id int64) error {
	for {
		ev, err := b.events.Next()
		if err != nil {
			return err
		}
		if ev.Change == sway.WindowFocus && ev.Container.ID == id {
			b.log.Debug("window focused", zap.Int64("id", id))
			return nil
		}
	}
}
