package layout

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func liveFixture() *Node {
	return &Node{
		ID:   1,
		Type: NodeRoot,
		Rect: &Rect{Width: 3840, Height: 2160},
		Nodes: []*Node{
			{ID: 2, Type: NodeOutput, Name: str("DP-1"), Rect: &Rect{Width: 1920, Height: 1080}, Nodes: []*Node{
				{ID: 3, Type: NodeWorkspace, Name: str("1"), Num: intp(1), Layout: LayoutSplitH, Nodes: []*Node{
					{
						ID: 4, Type: NodeCon, Layout: LayoutSplitV, Percent: f64(1.0),
						Rect: &Rect{Width: 1920, Height: 1080},
						Nodes: []*Node{
							{
								ID: 5, Type: NodeCon, Percent: f64(0.5), Focused: true,
								Name:  str("fish /home"),
								AppID: str("term"),
							},
							{
								ID: 6, Type: NodeCon, Percent: f64(0.5),
								Name: str("Issue #7 - Firefox"),
								WindowProperties: &WindowProperties{
									Class:    str("Firefox"),
									Instance: str("Navigator"),
									Title:    str("Issue #7 - Firefox"),
								},
							},
						},
					},
				}},
			}},
		},
	}
}

func intp(v int) *int { return &v }

func TestCaptureDerivesLeafMatchers(t *testing.T) {
	doc, err := Capture(liveFixture())
	require.NoError(t, err)

	ws := doc.Nodes[0].Nodes[0]
	con := ws.Nodes[0]
	require.Len(t, con.Nodes, 2)

	termLeaf := con.Nodes[0]
	require.Len(t, termLeaf.Swallows, 1)
	assert.Equal(t, "term", *termLeaf.Swallows[0].AppID)
	assert.Nil(t, termLeaf.Swallows[0].Name, "titles must not enter derived matchers")

	ffLeaf := con.Nodes[1]
	require.Len(t, ffLeaf.Swallows, 1)
	assert.Nil(t, ffLeaf.Swallows[0].AppID)
	assert.Equal(t, "Firefox", *ffLeaf.Swallows[0].Class)
	assert.Equal(t, "Navigator", *ffLeaf.Swallows[0].Instance)
	assert.Nil(t, ffLeaf.WindowProperties.Title, "captured properties must drop the title")
}

func TestCaptureDropsLiveOnlyFields(t *testing.T) {
	doc, err := Capture(liveFixture())
	require.NoError(t, err)

	var check func(n *Node)
	check = func(n *Node) {
		assert.Zero(t, n.ID)
		assert.Nil(t, n.Rect)
		assert.False(t, n.Focused)
		for _, c := range n.Nodes {
			check(c)
		}
	}
	check(doc)

	// Percent and num survive.
	ws := doc.Nodes[0].Nodes[0]
	assert.Equal(t, 1, *ws.Num)
	assert.Equal(t, 0.5, *ws.Nodes[0].Nodes[0].Percent)
}

func TestCaptureSkipsScratchRoot(t *testing.T) {
	live := liveFixture()
	live.Nodes = append([]*Node{
		{Type: NodeRoot, Name: str(ScratchRootName), Nodes: []*Node{
			{Type: NodeCon, AppID: str("hidden")},
		}},
	}, live.Nodes...)

	doc, err := Capture(live)
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, NodeOutput, doc.Nodes[0].Type)
}

func TestCaptureUnnamedWorkspaceFails(t *testing.T) {
	live := liveFixture()
	live.Nodes[0].Nodes[0].Name = nil

	_, err := Capture(live)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace")
}

func TestCaptureUnnamedOutputFails(t *testing.T) {
	live := liveFixture()
	live.Nodes[0].Name = nil

	_, err := Capture(live)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := Capture(liveFixture())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, WriteDocument(path, doc))

	loaded, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
