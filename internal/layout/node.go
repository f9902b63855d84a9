package layout

// NodeType is the kind of a tree node as reported by the WM.
type NodeType string

const (
	NodeRoot        NodeType = "root"
	NodeOutput      NodeType = "output"
	NodeWorkspace   NodeType = "workspace"
	NodeCon         NodeType = "con"
	NodeFloatingCon NodeType = "floating_con"
)

// Layout is a container's split/grouping style.
type Layout string

const (
	LayoutSplitH  Layout = "splith"
	LayoutSplitV  Layout = "splitv"
	LayoutTabbed  Layout = "tabbed"
	LayoutStacked Layout = "stacked"
	LayoutOutput  Layout = "output"
	LayoutNone    Layout = "none"
)

// ScratchRootName is the reserved name of the scratchpad subtree.
// Sway uses the i3 name for compatibility.
const ScratchRootName = "__i3"

// Rect is a node's pixel geometry.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowProperties carries X11 identity attributes of an xwayland view.
type WindowProperties struct {
	Class    *string `json:"class,omitempty"`
	Instance *string `json:"instance,omitempty"`
	Title    *string `json:"title,omitempty"`
}

// Node is a single node of a layout tree. The same type is used for the
// live tree returned by the WM and for the persisted document; fields
// that only exist on live nodes (ID, Rect, Focused, FloatingNodes) are
// zero in documents and omitted when serializing.
type Node struct {
	ID               int64             `json:"id,omitempty"`
	Name             *string           `json:"name,omitempty"`
	Type             NodeType          `json:"type"`
	Layout           Layout            `json:"layout,omitempty"`
	Percent          *float64          `json:"percent,omitempty"`
	Rect             *Rect             `json:"rect,omitempty"`
	Focused          bool              `json:"focused,omitempty"`
	Num              *int              `json:"num,omitempty"`
	AppID            *string           `json:"app_id,omitempty"`
	WindowProperties *WindowProperties `json:"window_properties,omitempty"`
	Nodes            []*Node           `json:"nodes,omitempty"`
	FloatingNodes    []*Node           `json:"floating_nodes,omitempty"`
	Swallows         []Matcher         `json:"swallows,omitempty"`
}

// IsLeaf reports whether n is a view: a con with no tiling children.
// Containers and views are not independent kinds; an empty con is a view.
func (n *Node) IsLeaf() bool {
	return (n.Type == NodeCon || n.Type == NodeFloatingCon) && len(n.Nodes) == 0
}

// isScratchRoot reports whether n is the reserved scratchpad subtree,
// which is excluded from every traversal.
func (n *Node) isScratchRoot() bool {
	return n.Type == NodeRoot && n.Name != nil && *n.Name == ScratchRootName
}

// Class returns the xwayland window class, or nil for wayland-native views.
func (n *Node) Class() *string {
	if n.WindowProperties == nil {
		return nil
	}
	return n.WindowProperties.Class
}

// Instance returns the xwayland window instance, or nil.
func (n *Node) Instance() *string {
	if n.WindowProperties == nil {
		return nil
	}
	return n.WindowProperties.Instance
}

// FindFocused returns the node with input focus, searching tiling and
// floating children, or nil if no node in the subtree is focused.
func (n *Node) FindFocused() *Node {
	if n.Focused {
		return n
	}
	for _, c := range n.Nodes {
		if f := c.FindFocused(); f != nil {
			return f
		}
	}
	for _, c := range n.FloatingNodes {
		if f := c.FindFocused(); f != nil {
			return f
		}
	}
	return nil
}

// ParentOf returns the node whose tiling children contain id, or nil.
func (n *Node) ParentOf(id int64) *Node {
	for _, c := range n.Nodes {
		if c.ID == id {
			return n
		}
		if p := c.ParentOf(id); p != nil {
			return p
		}
	}
	return nil
}
