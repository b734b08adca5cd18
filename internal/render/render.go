// Package render writes report segments and progress to a terminal.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/astrotally/internal/model"
	"github.com/verte-zerg/astrotally/internal/stats"
)

const terminalWidthBackup = 80

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B6FD4")).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Sink receives the styled report.
type Sink interface {
	Render(segments []model.Segment) error
}

// Writer prints one segment per line, styled when Color is set.
type Writer struct {
	W     io.Writer
	Color bool
}

// Render implements Sink.
func (s Writer) Render(segments []model.Segment) error {
	for _, seg := range segments {
		text := seg.Text
		if s.Color {
			text = StyleFor(seg.Emphasis).Render(text)
		}
		if _, err := fmt.Fprintln(s.W, text); err != nil {
			return err
		}
	}
	return nil
}

// StyleFor maps an emphasis tag to its terminal style.
func StyleFor(e model.Emphasis) lipgloss.Style {
	switch e {
	case model.EmphasisHeading:
		return headingStyle
	case model.EmphasisDetail:
		return detailStyle
	default:
		return bodyStyle
	}
}

// ProgressBar renders p.Clamped as a bar of the given width.
func ProgressBar(p model.Progress, width int, color bool) string {
	opts := []progress.Option{progress.WithWidth(width), progress.WithoutPercentage()}
	if color {
		opts = append(opts, progress.WithDefaultGradient())
	} else {
		opts = append(opts, progress.WithSolidFill("#FFFFFF"), progress.WithFillCharacters('#', '-'))
	}
	bar := progress.New(opts...)
	return bar.ViewAs(float64(p.Clamped) / 100)
}

// Progress prints the progress bar followed by its label.
func Progress(w io.Writer, p model.Progress, width int, color bool) error {
	label := stats.ProgressText(p)
	if color {
		label = labelStyle.Render(label)
	}
	if _, err := fmt.Fprintf(w, "%s %3d%%\n", ProgressBar(p, width, color), p.Clamped); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, label)
	return err
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the width of stdout or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// BarWidth fits a progress bar into a line of the given width.
func BarWidth(total int) int {
	w := total - 6
	return max(10, min(w, 60))
}
