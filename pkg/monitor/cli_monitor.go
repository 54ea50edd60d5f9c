package monitor

import (
	"fmt"
	"io"
	"os"
)

// CLIMonitor implements the Monitor interface, providing a direct
// terminal-based view of completed turns flowing through the pipeline.
type CLIMonitor struct {
	writer io.Writer // stderr: stdout belongs to the stdio transport
}

// NewCLIMonitor creates a new CLI monitor
func NewCLIMonitor() *CLIMonitor {
	return &CLIMonitor{
		writer: os.Stderr,
	}
}

// Start starts the CLI monitor
func (m *CLIMonitor) Start() error {
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	fmt.Fprintln(m.writer, "💬 CLI Monitor Active - Completed turns will appear here")
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	return nil
}

// Stop stops the CLI monitor
func (m *CLIMonitor) Stop() error {
	return nil
}

// OnTurn receives and displays a completed turn
func (m *CLIMonitor) OnTurn(record TurnRecord) {
	timestamp := record.Timestamp.Format("2006-01-02 15:04:05")

	prompt := truncate(record.Prompt, 80)
	response := truncate(record.Response, 80)

	// Use gray color for timestamp
	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m [%s/%s] Q: %s\n", timestamp, record.TurnID, record.Model, prompt)
	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m [AI] %s\n", timestamp, response)
}

// truncate 以 rune 為單位截斷，避免把多位元組字元切成亂碼
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
