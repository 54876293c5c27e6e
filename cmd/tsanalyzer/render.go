package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tsanalyzer/internal/analyzer"
)

var (
	badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	badgeStyles = map[analyzer.Status]lipgloss.Style{
		analyzer.ApproveAsOptimal:      badgeBase.Foreground(lipgloss.Color("#101F38")).Background(lipgloss.Color("#8BC34A")),
		analyzer.ApproveWithComment:    badgeBase.Foreground(lipgloss.Color("#101F38")).Background(lipgloss.Color("#4db6ac")),
		analyzer.DisapproveWithComment: badgeBase.Foreground(lipgloss.Color("#f2f2f2")).Background(lipgloss.Color("#e53935")),
		analyzer.ReferToMentor:         badgeBase.Foreground(lipgloss.Color("#101F38")).Background(lipgloss.Color("#FFC107")),
	}
)

// badge renders a status as a colored label.
func badge(status analyzer.Status) string {
	style, ok := badgeStyles[status]
	if !ok {
		style = badgeBase
	}
	return style.Render(strings.ToUpper(strings.ReplaceAll(string(status), "_", " ")))
}

// commentary turns the comments of out into one markdown document.
func commentary(out *analyzer.Output) string {
	if len(out.Comments) == 0 {
		return "_No comments._\n"
	}
	var sb strings.Builder
	for i, c := range out.Comments {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&sb, "**%s** `%s`\n\n%s\n", c.Type, c.Key, c.Message)
	}
	return sb.String()
}

// renderPretty writes a human-readable view of out: the status badge
// followed by the comment prose rendered as markdown.
func renderPretty(w io.Writer, out *analyzer.Output, style string) error {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	body, err := renderer.Render(commentary(out))
	if err != nil {
		return fmt.Errorf("failed to render comments: %w", err)
	}

	fmt.Fprintf(w, "\n%s\n%s", badge(out.Status), body)
	return nil
}
