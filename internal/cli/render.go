package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwalitptl/password-analyzer/internal/content"
	"github.com/jwalitptl/password-analyzer/internal/model"
	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

const barWidth = 20

type renderer struct {
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	card    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newRenderer(w io.Writer, noColor bool) *renderer {
	if noColor {
		plain := lipgloss.NewStyle()
		return &renderer{
			title: plain, label: plain, muted: plain, card: plain,
			success: plain, warning: plain, failure: plain,
		}
	}

	r := lipgloss.NewRenderer(w)
	return &renderer{
		title: r.NewStyle().Bold(true),
		label: r.NewStyle().Foreground(lipgloss.Color("245")),
		muted: r.NewStyle().Faint(true),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

func (r *renderer) tagStyle(tag string) lipgloss.Style {
	switch tag {
	case "success":
		return r.success
	case "warning":
		return r.warning
	default:
		return r.failure
	}
}

// Result renders the verdict card for a scored password
func (r *renderer) Result(res *strength.Result) string {
	style := r.tagStyle(res.Tag)

	lines := []string{
		style.Render(res.Emoji + " " + res.Message),
		fmt.Sprintf("%s %d/%d %s",
			r.label.Render("Score:"),
			res.Score, strength.MaxScore,
			style.Render(bar(res.NormalizedScore)),
		),
		"",
	}

	if len(res.Feedback) == 0 {
		lines = append(lines, r.success.Render(content.NoFeedbackMessage))
	} else {
		lines = append(lines, r.title.Render("Suggestions for improvement:"))
		for i, f := range res.Feedback {
			icon := "•"
			if i < len(res.FeedbackIcons) {
				icon = res.FeedbackIcons[i]
			}
			lines = append(lines, "  "+icon+" "+f)
		}
	}

	return r.card.Render(strings.Join(lines, "\n"))
}

// Generated renders a generated password followed by its verdict
func (r *renderer) Generated(gp *model.GeneratedPassword, copied bool) string {
	var b strings.Builder
	b.WriteString(r.label.Render("Generated password:"))
	b.WriteString("\n")
	b.WriteString(r.title.Render(gp.Password))
	b.WriteString("\n")
	if copied {
		b.WriteString(r.muted.Render("Copied to clipboard."))
		b.WriteString("\n")
	}
	b.WriteString(r.Result(gp.Result))
	return b.String()
}

func (r *renderer) Tips(sections []model.TipSection) string {
	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		lines := []string{r.title.Render(s.Icon + " " + s.Title)}
		for _, item := range s.Items {
			lines = append(lines, "  • "+item)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// bar draws fraction, clamped to [0,1], as a fixed-width progress bar
func bar(fraction float64) string {
	filled := int(math.Round(math.Max(0, math.Min(1, fraction)) * barWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}
