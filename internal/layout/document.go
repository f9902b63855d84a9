package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadDocument loads a persisted layout document from disk.
func ReadDocument(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return &n, nil
}

// WriteDocument saves a layout document to disk as indented JSON.
func WriteDocument(path string, n *Node) error {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}
