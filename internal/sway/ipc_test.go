package sway

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listen starts a one-shot fake WM on a unix socket and returns its
// path. handler runs on the first accepted connection.
func listen(t *testing.T, handler func(conn net.Conn)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sway.sock")
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}()
	return path
}

func TestMessageFraming(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_ = writeMessage(server, msgRunCommand, []byte("workspace 1"))
	}()

	kind, payload, err := readMessage(client)
	require.NoError(t, err)
	assert.Equal(t, msgRunCommand, kind)
	assert.Equal(t, "workspace 1", string(payload))
}

func TestReadMessageBadMagic(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = server.Write([]byte("xx-ipc\x00\x00\x00\x00\x00\x00\x00\x00"))
	}()

	_, _, err := readMessage(client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad ipc magic")
}

func TestSocketPathPrecedence(t *testing.T) {
	t.Setenv("SWAYSOCK", "/run/sway.sock")
	t.Setenv("I3SOCK", "/run/i3.sock")
	p, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "/run/sway.sock", p)

	t.Setenv("SWAYSOCK", "")
	p, err = SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "/run/i3.sock", p)

	t.Setenv("I3SOCK", "")
	_, err = SocketPath()
	assert.Error(t, err)
}

func TestRunCommandSuccess(t *testing.T) {
	path := listen(t, func(conn net.Conn) {
		kind, payload, err := readMessage(conn)
		if err != nil || kind != msgRunCommand || string(payload) != "workspace 1" {
			return
		}
		_ = writeMessage(conn, msgRunCommand, []byte(`[{"success":true}]`))
	})

	c, err := DialPath(path)
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.RunCommand("workspace 1"))
}

func TestRunCommandFailure(t *testing.T) {
	path := listen(t, func(conn net.Conn) {
		_, _, _ = readMessage(conn)
		_ = writeMessage(conn, msgRunCommand, []byte(`[{"success":false,"error":"unknown command"}]`))
	})

	c, err := DialPath(path)
	require.NoError(t, err)
	defer c.Close()

	err = c.RunCommand("frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRoundTripSkipsUnsolicitedFrames(t *testing.T) {
	path := listen(t, func(conn net.Conn) {
		_, _, _ = readMessage(conn)
		// An event frame arrives ahead of the real reply.
		_ = writeMessage(conn, eventWindow, []byte(`{"change":"focus","container":{}}`))
		_ = writeMessage(conn, msgRunCommand, []byte(`[{"success":true}]`))
	})

	c, err := DialPath(path)
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.RunCommand("nop"))
}

func TestGetTree(t *testing.T) {
	const tree = `{
		"id": 1, "type": "root", "nodes": [
			{"id": 2, "type": "output", "name": "DP-1", "nodes": [
				{"id": 3, "type": "workspace", "name": "1", "num": 1, "nodes": [
					{"id": 4, "type": "con", "app_id": "term", "focused": true,
					 "rect": {"x": 0, "y": 0, "width": 1920, "height": 1080}}
				]}
			]}
		]
	}`
	path := listen(t, func(conn net.Conn) {
		kind, _, err := readMessage(conn)
		if err != nil || kind != msgGetTree {
			return
		}
		_ = writeMessage(conn, msgGetTree, []byte(tree))
	})

	c, err := DialPath(path)
	require.NoError(t, err)
	defer c.Close()

	root, err := c.GetTree()
	require.NoError(t, err)

	ws := root.Nodes[0].Nodes[0]
	assert.Equal(t, "1", *ws.Name)
	assert.Equal(t, 1, *ws.Num)

	leaf := ws.Nodes[0]
	assert.Equal(t, int64(4), leaf.ID)
	assert.Equal(t, "term", *leaf.AppID)
	assert.True(t, leaf.Focused)
	assert.Equal(t, 1920, leaf.Rect.Width)
}

func TestDialPathMissingSocket(t *testing.T) {
	_, err := DialPath(filepath.Join(t.TempDir(), "nope.sock"))
	assert.Error(t, err)
}
