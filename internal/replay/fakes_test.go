package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuri91/swaystart/internal/layout"
	"github.com/yuri91/swaystart/internal/sway"
)

// fakeConn records every command and serves a canned tree snapshot.
type fakeConn struct {
	cmds   []string
	tree   *layout.Node
	failOn string
}

func (f *fakeConn) RunCommand(cmd string) error {
	f.cmds = append(f.cmds, cmd)
	if f.failOn != "" && strings.Contains(cmd, f.failOn) {
		return fmt.Errorf("command %q failed", cmd)
	}
	return nil
}

func (f *fakeConn) GetTree() (*layout.Node, error) {
	if f.tree == nil {
		return nil, errors.New("no tree snapshot configured")
	}
	return f.tree, nil
}

// fakeEvents replays a scripted event sequence, then reports stream end.
type fakeEvents struct {
	events []*sway.WindowEvent
	pos    int
}

func (f *fakeEvents) Next() (*sway.WindowEvent, error) {
	if f.pos >= len(f.events) {
		return nil, errors.New("event stream ended")
	}
	ev := f.events[f.pos]
	f.pos++
	return ev, nil
}

// fakePlaceholders records create requests.
type fakePlaceholders struct {
	titles []string
	tags   []string
}

func (f *fakePlaceholders) CreateWindow(title, appID string) {
	f.titles = append(f.titles, title)
	f.tags = append(f.tags, appID)
}

func windowEvent(change sway.WindowChange, id int64, appID string) *sway.WindowEvent {
	ev := &sway.WindowEvent{Change: change, Container: layout.Node{ID: id, Type: layout.NodeCon}}
	if appID != "" {
		ev.Container.AppID = str(appID)
	}
	return ev
}
