// Package pipefilter runs a shell command with a payload on stdin and
// captures its stdout, the mechanism every backend's Source.Transform
// uses to implement "piping through an external filter".
package pipefilter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Run executes command via "sh -c command", feeding in as stdin, and
// returns stdout. A non-zero exit carries stderr's text in the error,
// since that's almost always more useful to the user than the exit
// code alone.
func Run(ctx context.Context, command string, in []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = bytes.NewReader(in)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return nil, fmt.Errorf("%s: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
