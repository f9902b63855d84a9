package layout

import "fmt"

// Capture rebuilds a live tree into a document tree: live-only fields
// are dropped, floating windows are excluded, and each leaf view gets
// one derived swallow matcher. The rebuild is bottom-up and pure; the
// input tree is never mutated.
func Capture(live *Node) (*Node, error) {
	switch live.Type {
	case NodeOutput:
		if live.Name == nil {
			return nil, fmt.Errorf("output node %d has no name", live.ID)
		}
	case NodeWorkspace:
		if live.Name == nil {
			return nil, fmt.Errorf("workspace node %d has no name", live.ID)
		}
	}

	doc := &Node{
		Name:             live.Name,
		Type:             live.Type,
		Layout:           live.Layout,
		Percent:          live.Percent,
		Num:              live.Num,
		AppID:            live.AppID,
		WindowProperties: captureProperties(live.WindowProperties),
	}

	if live.IsLeaf() {
		doc.Swallows = []Matcher{DeriveMatcher(live)}
		return doc, nil
	}

	for _, c := range live.Nodes {
		if c.isScratchRoot() {
			continue
		}
		child, err := Capture(c)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, child)
	}
	return doc, nil
}

// captureProperties strips the volatile title from xwayland properties.
func captureProperties(p *WindowProperties) *WindowProperties {
	if p == nil {
		return nil
	}
	return &WindowProperties{Class: p.Class, Instance: p.Instance}
}
