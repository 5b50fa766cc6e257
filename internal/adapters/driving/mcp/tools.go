package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// GenerateInput is the input schema for the generate_docs tool.
type GenerateInput struct {
	FileKey string `json:"file_key" jsonschema:"the design file key to document"`
	DocType string `json:"doc_type,omitempty" jsonschema:"documentation audience: user, dev, or both (default both)"`
}

// GenerateOutput is the output schema for the generate_docs tool.
type GenerateOutput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Sections []string `json:"sections"`
}

// AskInput is the input schema for the ask_docs tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the documentation"`
	FileKey  string `json:"file_key,omitempty" jsonschema:"limit context to one design file key"`
}

// AskOutput is the output schema for the ask_docs tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources,omitempty"`
}

// CheckInput is the input schema for the check_changes tool.
type CheckInput struct {
	FileKey string `json:"file_key,omitempty" jsonschema:"check one file; empty checks every watched file"`
}

// CheckOutput is the output schema for the check_changes tool.
type CheckOutput struct {
	Changes []ChangeOutput `json:"changes"`
	Count   int            `json:"count"`
}

// ChangeOutput is one detected change.
type ChangeOutput struct {
	FileKey    string `json:"file_key"`
	FileName   string `json:"file_name"`
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_docs",
		Description: "Generate documentation for a design file",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_docs",
		Description: "Answer a question using the generated design documentation",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_changes",
		Description: "Check watched design files for new versions",
	}, s.handleCheck)
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	docType := domain.DocType(input.DocType)
	if !docType.IsValid() {
		docType = domain.DocTypeBoth
	}

	doc, err := s.ports.Generator.Generate(ctx, input.FileKey, docType, nil)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	output := GenerateOutput{
		ID:       doc.ID,
		Title:    doc.Title,
		Sections: make([]string, len(doc.Sections)),
	}
	for i := range doc.Sections {
		output.Sections[i] = doc.Sections[i].Title
	}
	return nil, output, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Chat == nil {
		return nil, AskOutput{}, errors.New("chat service is not configured")
	}

	resp, err := s.ports.Chat.Ask(ctx, input.Question, input.FileKey, nil)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: resp.Message, Sources: resp.Sources}, nil
}

func (s *Server) handleCheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckInput,
) (*mcp.CallToolResult, CheckOutput, error) {
	if s.ports.Poller == nil {
		return nil, CheckOutput{}, errors.New("change poller is not configured")
	}

	var events []domain.FileChangeEvent
	if input.FileKey != "" {
		event, err := s.ports.Poller.CheckFile(ctx, input.FileKey)
		if err != nil {
			return nil, CheckOutput{}, err
		}
		if event != nil {
			events = append(events, *event)
		}
	} else {
		events = s.ports.Poller.CheckAll(ctx)
	}

	output := CheckOutput{
		Changes: make([]ChangeOutput, len(events)),
		Count:   len(events),
	}
	for i, event := range events {
		output.Changes[i] = ChangeOutput{
			FileKey:    event.FileKey,
			FileName:   event.FileName,
			OldVersion: event.OldVersion,
			NewVersion: event.NewVersion,
		}
	}
	return nil, output, nil
}
