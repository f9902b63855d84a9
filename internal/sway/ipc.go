// Package sway speaks the i3-ipc protocol to a sway (or i3) socket:
// length-prefixed JSON frames over a UNIX stream socket. One connection
// is used for synchronous commands and queries, a second subscribed
// connection delivers window events.
package sway

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/yuri91/swaystart/internal/layout"
)

var magic = [6]byte{'i', '3', '-', 'i', 'p', 'c'}

const headerSize = len(magic) + 8

const (
	msgRunCommand uint32 = 0
	msgSubscribe  uint32 = 2
	msgGetTree    uint32 = 4

	eventFlag   uint32 = 0x80000000
	eventWindow uint32 = eventFlag | 3
)

// SocketPath returns the WM control socket path from the environment.
func SocketPath() (string, error) {
	if p := os.Getenv("SWAYSOCK"); p != "" {
		return p, nil
	}
	if p := os.Getenv("I3SOCK"); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("neither SWAYSOCK nor I3SOCK is set")
}

func writeMessage(w io.Writer, kind uint32, payload []byte) error {
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic[:])
	binary.LittleEndian.PutUint32(buf[6:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[10:], kind)
	copy(buf[headerSize:], payload)
	_, err := w.Write(buf)
	return err
}

func readMessage(r io.Reader) (uint32, []byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	if !bytes.Equal(hdr[:6], magic[:]) {
		return 0, nil, fmt.Errorf("bad ipc magic %q", hdr[:6])
	}
	length := binary.LittleEndian.Uint32(hdr[6:])
	kind := binary.LittleEndian.Uint32(hdr[10:])
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return kind, payload, nil
}

// Client is a synchronous command/query connection to the WM.
type Client struct {
	conn net.Conn
}

// Dial connects to the socket named by the environment.
func Dial() (*Client, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	return DialPath(path)
}

// DialPath connects to an explicit socket path.
func DialPath(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sway socket: %w", err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) roundTrip(kind uint32, payload []byte) ([]byte, error) {
	if err := writeMessage(c.conn, kind, payload); err != nil {
		return nil, fmt.Errorf("send ipc message: %w", err)
	}
	for {
		replyKind, reply, err := readMessage(c.conn)
		if err != nil {
			return nil, fmt.Errorf("read ipc reply: %w", err)
		}
		if replyKind != kind {
			// This connection never subscribes, but be tolerant of
			// unsolicited frames.
			continue
		}
		return reply, nil
	}
}

type commandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RunCommand executes one logical WM command and waits for its
// acknowledgement. Any unsuccessful result is returned as an error.
func (c *Client) RunCommand(cmd string) error {
	reply, err := c.roundTrip(msgRunCommand, []byte(cmd))
	if err != nil {
		return err
	}
	var results []commandResult
	if err := json.Unmarshal(reply, &results); err != nil {
		return fmt.Errorf("parse command reply: %w", err)
	}
	for _, r := range results {
		if !r.Success {
			return fmt.Errorf("command %q failed: %s", cmd, r.Error)
		}
	}
	return nil
}

// GetTree returns a full snapshot of the live layout tree.
func (c *Client) GetTree() (*layout.Node, error) {
	reply, err := c.roundTrip(msgGetTree, nil)
	if err != nil {
		return nil, err
	}
	var root layout.Node
	if err := json.Unmarshal(reply, &root); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}
	return &root, nil
}
