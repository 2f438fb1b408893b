// Package tui provides the interactive review screen for analysis sessions
// suspended at the human gate.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/summa-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// mode is the interaction state of the review screen.
type mode int

const (
	// modeDeciding waits for the approve/reject keystroke.
	modeDeciding mode = iota

	// modeFeedback collects the free-text note for the pending decision.
	modeFeedback
)

// Review is the bubbletea model for the human-gate review screen. It renders
// the verdict and summary of one awaiting-review session and collects an
// approve/reject decision plus optional feedback. The caller applies the
// decision after the program exits; the model itself never touches services.
type Review struct {
	session *domain.Session
	styles  *styles.Styles
	input   textinput.Model

	mode            mode
	pendingApproval bool

	decided  bool
	approved bool
	feedback string

	width int
}

// NewReview creates a review screen for the given session.
func NewReview(session *domain.Session, s *styles.Styles) *Review {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Optional feedback..."
	ti.CharLimit = 512
	ti.Width = 60

	return &Review{
		session: session,
		styles:  s,
		input:   ti,
		width:   80,
	}
}

// Init initialises the review screen.
func (r *Review) Init() tea.Cmd {
	return nil
}

// Update handles messages for the review screen.
func (r *Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		inputWidth := msg.Width - 10
		if inputWidth < 20 {
			inputWidth = 20
		}
		r.input.Width = inputWidth
		return r, nil

	case tea.KeyMsg:
		return r.handleKeyMsg(msg)
	}

	return r, nil
}

// handleKeyMsg handles key presses.
func (r *Review) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.mode == modeFeedback {
		switch msg.String() {
		case "enter":
			r.decided = true
			r.approved = r.pendingApproval
			r.feedback = strings.TrimSpace(r.input.Value())
			return r, tea.Quit
		case "esc":
			r.mode = modeDeciding
			r.input.Blur()
			r.input.Reset()
			return r, nil
		case "ctrl+c":
			return r, tea.Quit
		}

		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return r, cmd
	}

	switch msg.String() {
	case "a":
		r.pendingApproval = true
		r.mode = modeFeedback
		return r, r.input.Focus()
	case "r":
		r.pendingApproval = false
		r.mode = modeFeedback
		return r, r.input.Focus()
	case "q", "esc", "ctrl+c":
		return r, tea.Quit
	}

	return r, nil
}

// View renders the review screen.
func (r *Review) View() string {
	if r.session == nil {
		return r.styles.Error.Render("No session to review.")
	}

	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Review: " + r.session.ID))
	b.WriteString("\n")
	b.WriteString(r.styles.Muted.Render(r.session.SourceURI))
	b.WriteString("\n\n")

	r.renderVerdict(&b)
	r.renderSummary(&b)

	if r.mode == modeFeedback {
		action := "Approve"
		if !r.pendingApproval {
			action = "Reject"
		}
		b.WriteString(r.styles.Subtitle.Render(action + " with feedback"))
		b.WriteString("\n")
		b.WriteString(r.styles.InputField.Render(r.input.View()))
		b.WriteString("\n")
		b.WriteString(r.styles.Help.Render("enter confirm • esc back"))
	} else {
		b.WriteString(r.styles.Help.Render("a approve • r reject • q quit"))
	}

	return b.String()
}

// renderVerdict writes the per-rule assessments and recommendations.
func (r *Review) renderVerdict(b *strings.Builder) {
	verdict := r.session.Verdict
	if verdict == nil {
		return
	}

	b.WriteString(r.styles.Subtitle.Render("Rule assessments"))
	b.WriteString("\n")

	for _, a := range verdict.Assessments {
		if a.Satisfied {
			b.WriteString(r.styles.Success.Render("  ✓ " + a.Rule))
		} else {
			line := "  ✗ " + a.Rule
			if a.Feedback != "" {
				line += ": " + a.Feedback
			}
			b.WriteString(r.styles.Error.Render(line))
		}
		b.WriteString("\n")
	}

	if verdict.Diagnostic != "" {
		b.WriteString(r.styles.Warning.Render("  ! " + verdict.Diagnostic))
		b.WriteString("\n")
	}

	if len(verdict.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Subtitle.Render("Recommendations"))
		b.WriteString("\n")
		for _, rec := range verdict.Recommendations {
			b.WriteString(r.styles.Normal.Render("  - " + rec))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
}

// renderSummary writes the candidate summary block.
func (r *Review) renderSummary(b *strings.Builder) {
	if r.session.Summary == "" {
		return
	}

	b.WriteString(r.styles.Subtitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(r.styles.Normal.Render(wrap(r.session.Summary, r.width-4)))
	b.WriteString("\n\n")
}

// Decision returns the outcome once the program has exited. decided is false
// when the user quit without choosing.
func (r *Review) Decision() (approved bool, feedback string, decided bool) {
	return r.approved, r.feedback, r.decided
}

// wrap breaks text into lines no longer than width characters, on word
// boundaries where possible.
func wrap(text string, width int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > width {
			b.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}

// RunReview runs the review screen as a standalone program and returns the
// decision. It blocks until the user exits the screen.
func RunReview(session *domain.Session) (approved bool, feedback string, decided bool, err error) {
	model := NewReview(session, nil)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, "", false, fmt.Errorf("review screen: %w", err)
	}

	review, ok := final.(*Review)
	if !ok {
		return false, "", false, fmt.Errorf("review screen: unexpected model %T", final)
	}

	approved, feedback, decided = review.Decision()
	return approved, feedback, decided, nil
}
