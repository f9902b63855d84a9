package sway

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/yuri91/swaystart/internal/layout"
)

// WindowChange is the kind of a window event.
type WindowChange string

const (
	WindowNew   WindowChange = "new"
	WindowClose WindowChange = "close"
	WindowFocus WindowChange = "focus"
)

// WindowEvent reports a change to one window, with a snapshot of the
// affected container.
type WindowEvent struct {
	Change    WindowChange `json:"change"`
	Container layout.Node  `json:"container"`
}

// EventStream is a blocking stream of window events on a dedicated
// subscribed connection.
type EventStream struct {
	conn net.Conn
}

// Subscribe opens a new connection to the socket named by the
// environment and subscribes it to window events.
func Subscribe() (*EventStream, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	return SubscribePath(path)
}

// SubscribePath subscribes on an explicit socket path.
func SubscribePath(path string) (*EventStream, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to sway socket: %w", err)
	}
	if err := writeMessage(conn, msgSubscribe, []byte(`["window"]`)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	_, reply, err := readMessage(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(reply, &ack); err != nil || !ack.Success {
		conn.Close()
		return nil, fmt.Errorf("subscription refused: %s", reply)
	}
	return &EventStream{conn: conn}, nil
}

// Next blocks until the next window event arrives. Frames of other
// event kinds are discarded. A closed stream is an error: the replay
// protocol never treats stream termination as completion.
func (s *EventStream) Next() (*WindowEvent, error) {
	for {
		kind, payload, err := readMessage(s.conn)
		if err != nil {
			return nil, fmt.Errorf("event stream ended: %w", err)
		}
		if kind != eventWindow {
			continue
		}
		var ev WindowEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("parse window event: %w", err)
		}
		return &ev, nil
	}
}

func (s *EventStream) Close() error {
	return s.conn.Close()
}
