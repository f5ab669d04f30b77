package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// Executor handles the execution of hooks with timeout support.
type Executor struct {
	timeoutMs int
}

// NewExecutor creates a new Executor with the specified timeout in milliseconds.
func NewExecutor(timeoutMs int) *Executor {
	return &Executor{
		timeoutMs: timeoutMs,
	}
}

// Execute runs a single hook with the given payload and returns its response.
// The payload is marshaled to JSON and written to the hook's stdin; the
// hook's stdout is parsed as a Response.
func (e *Executor) Execute(h *Hook, p Payload) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(e.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, h.Executable)
	cmd.Dir = h.Path

	payloadJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	cmd.Stdin = bytes.NewReader(payloadJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("hook execution timeout after %dms", e.timeoutMs)
	}

	if err != nil {
		stderrStr := stderr.String()
		if stderrStr != "" {
			return nil, fmt.Errorf("hook execution failed: %w, stderr: %s", err, stderrStr)
		}
		return nil, fmt.Errorf("hook execution failed: %w", err)
	}

	var response Response
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		return nil, fmt.Errorf("failed to parse hook response: %w, stdout: %s", err, stdout.String())
	}

	return &response, nil
}

// Dispatch runs every hook subscribed to the event, sequentially. Failures
// are logged and do not stop the remaining hooks.
func (e *Executor) Dispatch(m *Manager, event string, p Payload) {
	for _, h := range m.ForEvent(event) {
		resp, err := e.Execute(h, p)
		if err != nil {
			log.Printf("Hook %s failed for event %s: %v", h.Manifest.Name, event, err)
			continue
		}
		if !resp.Success && resp.Error != "" {
			log.Printf("Hook %s reported error for event %s: %s", h.Manifest.Name, event, resp.Error)
		}
	}
}
