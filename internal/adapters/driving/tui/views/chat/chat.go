// Package chat provides the documentation Q&A view component for the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/components/input"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/messages"
	"github.com/designdocs-labs/designdocs-cli/internal/adapters/driving/tui/styles"
	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
	"github.com/designdocs-labs/designdocs-cli/internal/core/ports/driving"
)

// turn is one question/answer exchange in the session.
type turn struct {
	question string
	answer   string
	sources  []string
}

// View is the documentation Q&A view.
type View struct {
	styles      *styles.Styles
	chatService driving.ChatService

	input   *input.QuestionInput
	turns   []turn
	history []domain.ChatMessage
	width   int
	height  int
	ready   bool
	err     error
	waiting bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, chatService driving.ChatService) *View {
	return &View{
		styles:      s,
		chatService: chatService,
		input:       input.NewQuestionInput(s),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Reset clears the session.
func (v *View) Reset() {
	v.turns = nil
	v.history = nil
	v.err = nil
	v.waiting = false
	v.input.Reset()
}

// ask returns a command that sends the question to the chat service.
func (v *View) ask(question string, history []domain.ChatMessage) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.AnswerReceived{Question: question, Err: fmt.Errorf("chat service not available")}
		}

		resp, err := v.chatService.Ask(context.Background(), question, "", history)
		if err != nil {
			return messages.AnswerReceived{Question: question, Err: err}
		}
		return messages.AnswerReceived{
			Question: question,
			Answer:   resp.Message,
			Sources:  resp.Sources,
		}
	}
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.input.SetWidth(msg.Width)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(v.input.Value())
			if question == "" || v.waiting {
				return v, nil
			}
			v.waiting = true
			v.err = nil
			v.input.Reset()
			return v, v.ask(question, v.history)

		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.AnswerReceived:
		v.waiting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.turns = append(v.turns, turn{
			question: msg.Question,
			answer:   msg.Answer,
			sources:  msg.Sources,
		})
		v.history = append(v.history,
			domain.ChatMessage{Role: domain.RoleUser, Content: msg.Question},
			domain.ChatMessage{Role: domain.RoleAssistant, Content: msg.Answer},
		)
		return v, nil

	case messages.ErrorOccurred:
		v.waiting = false
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the chat view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Chat"))
	b.WriteString("\n\n")

	for _, t := range v.turns {
		b.WriteString(v.styles.Subtitle.Render("You: "))
		b.WriteString(v.styles.Normal.Render(t.question))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(t.answer))
		b.WriteString("\n")
		if len(t.sources) > 0 {
			b.WriteString(v.styles.Muted.Render("Sources: " + strings.Join(t.sources, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(v.styles.Muted.Render("Thinking..."))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] ask  [esc] back"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Turns returns the number of completed exchanges.
func (v *View) Turns() int {
	return len(v.turns)
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
