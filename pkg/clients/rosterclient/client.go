// Package rosterclient loads the canonical member roster from a plain
// text file, one name per line.
package rosterclient

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Client reads the member roster file
type Client struct {
	path string
}

// NewClient creates a roster client for the given file path
func NewClient(path string) *Client {
	return &Client{path: path}
}

// ListMembers returns the canonical member names in file order, with
// blank lines skipped and whitespace trimmed. A missing or unreadable
// file is an error; the caller treats an empty roster as fatal.
func (c *Client) ListMembers(ctx context.Context) ([]string, error) {
	file, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open members file: %w", err)
	}
	defer file.Close()

	members := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name != "" {
			members = append(members, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members file: %w", err)
	}

	return members, nil
}
