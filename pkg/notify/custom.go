package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// customChannel pipes the Result as json into a user script.
type customChannel struct {
	scriptPath string
}

func newCustomChannel(scriptPath string) *customChannel {
	return &customChannel{scriptPath: scriptPath}
}

func (c *customChannel) send(ctx context.Context, r Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.scriptPath) //nolint:gosec // path comes from user config
	cmd.Stdin = bytes.NewReader(data)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	setupProcessGroup(cmd)

	if err = cmd.Run(); err != nil {
		if output := strings.TrimSpace(out.String()); output != "" {
			return fmt.Errorf("script %s: %w, output: %s", c.scriptPath, err, output)
		}
		return fmt.Errorf("script %s: %w", c.scriptPath, err)
	}
	return nil
}
