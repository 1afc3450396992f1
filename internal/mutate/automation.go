package mutate

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// AutomationMutator drives an external office automation tool (LibreOffice
// by default) to stamp a document. The tool renders a proper diagonal
// watermark through its own document model. Requires the stamping macro to
// be installed in the user profile.
type AutomationMutator struct {
	Tool    string        // Binary name or path, e.g. "soffice".
	Text    string        // Watermark text.
	Timeout time.Duration // Budget for one invocation.
}

// Name implements [Mutator].
func (m *AutomationMutator) Name() Strategy { return StrategyAutomation }

// Mutate invokes the automation tool headless with the stamping macro.
// The document is modified in place by the macro.
func (m *AutomationMutator) Mutate(path string) error {
	if m.Tool == "" {
		return fmt.Errorf("no automation tool configured")
	}
	bin, err := exec.LookPath(m.Tool)
	if err != nil {
		return fmt.Errorf("%s not found on PATH", m.Tool)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
	defer cancel()

	macro := fmt.Sprintf("macro:///Standard.DocSwap.Stamp(%q,%q)", path, m.Text)
	cmd := exec.CommandContext(ctx, bin,
		"--headless", "--norestore", "--nologo", "--nolockcheck",
		macro,
	)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %s", m.Tool, m.Timeout)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %v: %s", m.Tool, err, outputTail(string(out), 3))
	}
	return nil
}

// outputTail returns the last n non-empty lines of tool output, joined for
// inclusion in an error message.
func outputTail(out string, n int) string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, strings.TrimSpace(l))
		}
	}
	if len(lines) == 0 {
		return "(no output)"
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
