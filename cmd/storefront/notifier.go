package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// styledNotifier prints toasts as colored lines.
type styledNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func newStyledNotifier(out io.Writer) *styledNotifier {
	return &styledNotifier{out: out}
}

func (n *styledNotifier) Success(msg string) { n.print(successStyle, "✔ "+msg) }
func (n *styledNotifier) Info(msg string)    { n.print(infoStyle, "ℹ "+msg) }
func (n *styledNotifier) Error(msg string)   { n.print(errorStyle, "✖ "+msg) }

func (n *styledNotifier) print(style lipgloss.Style, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, style.Render(msg))
}
