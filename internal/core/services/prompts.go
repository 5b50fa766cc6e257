package services

import (
	"fmt"
	"strings"

	"github.com/designdocs-labs/designdocs-cli/internal/core/domain"
)

// Truncation caps keep the design summary inside the model's context
// window. Frames are capped per page.
const (
	maxPromptComponents = 20
	maxPromptStyles     = 20
	maxPromptColors     = 15
	maxPromptTypography = 15
	maxPromptFrames     = 10
)

// buildDocPrompt renders the design summary and the doc-type-specific
// instructions into a single generation prompt.
func buildDocPrompt(info *domain.DesignInfo, docType domain.DocType) string {
	var b strings.Builder

	b.WriteString(`You are an expert technical documentation writer specializing in UI/UX design documentation.
Your task is to generate COMPREHENSIVE and DETAILED documentation for the following design.

IMPORTANT: Generate extensive, thorough documentation. Do NOT be brief. Each section should be detailed and informative.

`)
	fmt.Fprintf(&b, "# Design: %s\n\n", info.FileName)
	fmt.Fprintf(&b, "## Pages and Screens\n%s\n\n", formatPages(info.Pages))
	fmt.Fprintf(&b, "## Components\n%s\n\n", formatComponents(info.Components))
	fmt.Fprintf(&b, "## Design Styles\n%s\n\n", formatStyles(info.Styles))
	fmt.Fprintf(&b, "## Color Palette\n%s\n\n", formatStyleNames(info.Colors, maxPromptColors, "No color styles defined."))
	fmt.Fprintf(&b, "## Typography\n%s\n\n", formatStyleNames(info.Typography, maxPromptTypography, "No typography styles defined."))
	b.WriteString("---\n\n")

	switch docType {
	case domain.DocTypeUser:
		b.WriteString(userDocInstructions)
	case domain.DocTypeDeveloper:
		b.WriteString(developerDocInstructions)
	default:
		b.WriteString(bothDocInstructions)
	}

	b.WriteString(`

FORMATTING REQUIREMENTS:
- Use Markdown format with proper headings (##, ###, ####)
- Use bullet points and numbered lists for clarity
- Include tables where appropriate for specifications
- Use code blocks for CSS values or technical specifications

REMEMBER: Generate EXTENSIVE documentation. Do not summarize or abbreviate.`)

	return b.String()
}

const userDocInstructions = `Generate COMPREHENSIVE USER documentation. Be DETAILED and THOROUGH in each section.

Required sections (write extensively about each):

## 1. Application Overview
- Detailed description of what this application does
- Target audience and use cases
- Key features and capabilities

## 2. Screen-by-Screen Guide
For EACH screen/page, provide:
- Screen name and purpose
- Detailed description of all visible elements
- Step-by-step instructions for using the screen

## 3. Navigation Guide
- How to move between screens
- Navigation patterns used (tabs, menus, buttons)

## 4. User Workflows
- Common task flows with step-by-step guides
- Expected outcomes for each workflow

## 5. UI Elements Reference
- Buttons, form fields, icons, status indicators and their meanings

## 6. Tips and Best Practices

Write in a friendly, accessible tone. Use clear headings, numbered steps, and bullet points.`

const developerDocInstructions = `Generate COMPREHENSIVE DEVELOPER documentation. Be DETAILED and THOROUGH in each section.

Required sections (write extensively about each):

## 1. Design System Overview
- Architecture, design principles, naming conventions

## 2. Component Library
For EACH component: purpose, variants, visual states, sizing, usage guidelines

## 3. Design Tokens
- Colors with hex/RGB values and semantic usage
- Typography scale, line heights, font weights
- Spacing scale, padding and margin conventions
- Border radius and shadow definitions

## 4. Layout Specifications
- Grid system, breakpoints, container widths

## 5. Component Specifications
For each major frame: exact dimensions, padding, colors, typography

## 6. Interaction States
- Hover, focus, active, loading and error states

## 7. Accessibility Guidelines
- Contrast requirements, focus indicators, keyboard navigation

## 8. Implementation Notes
- Suggested styling approach and reusable patterns

Write in technical language suitable for developers.`

const bothDocInstructions = `Generate COMPREHENSIVE documentation for BOTH users and developers. Be DETAILED and THOROUGH.

For EACH major screen/frame, create a section with BOTH perspectives:

## User Perspective
- What the screen does, all visible elements, step-by-step usage, navigation

## Developer Perspective
- Component structure, design tokens used, exact dimensions, states, implementation notes

After all screen sections, include a design system summary covering both
perspectives: application overview and workflows for users; the complete
color palette, typography scale, spacing system and accessibility
guidelines for developers.`

func formatPages(pages []domain.PageInfo) string {
	if len(pages) == 0 {
		return "No pages found."
	}

	var lines []string
	for _, page := range pages {
		lines = append(lines, fmt.Sprintf("### %s", nameOr(page.Name, "Unnamed Page")))

		if len(page.Frames) > 0 {
			lines = append(lines, "Frames/Screens:")
			frames := page.Frames
			if len(frames) > maxPromptFrames {
				frames = frames[:maxPromptFrames]
			}
			for _, frame := range frames {
				size := ""
				if frame.Width > 0 || frame.Height > 0 {
					size = fmt.Sprintf(" (%.0fx%.0f)", frame.Width, frame.Height)
				}
				lines = append(lines, fmt.Sprintf("  - %s%s", nameOr(frame.Name, "Unnamed"), size))

				if summary := childTypeSummary(frame.Children); summary != "" {
					lines = append(lines, fmt.Sprintf("    Contains: %s", summary))
				}
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// childTypeSummary counts children by node type, e.g. "3 TEXT, 2 RECTANGLE".
func childTypeSummary(children []domain.NodeSummary) string {
	if len(children) == 0 {
		return ""
	}
	counts := make(map[string]int)
	var order []string
	for _, child := range children {
		if counts[child.Type] == 0 {
			order = append(order, child.Type)
		}
		counts[child.Type]++
	}
	parts := make([]string, 0, len(order))
	for _, typ := range order {
		parts = append(parts, fmt.Sprintf("%d %s", counts[typ], typ))
	}
	return strings.Join(parts, ", ")
}

func formatComponents(components []domain.DesignComponent) string {
	if len(components) == 0 {
		return "No components defined."
	}
	if len(components) > maxPromptComponents {
		components = components[:maxPromptComponents]
	}

	lines := make([]string, 0, len(components))
	for _, comp := range components {
		line := fmt.Sprintf("- **%s**", nameOr(comp.Name, "Unnamed"))
		if comp.Description != "" {
			line += ": " + comp.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatStyles(styles []domain.DesignStyle) string {
	if len(styles) == 0 {
		return "No styles defined."
	}
	if len(styles) > maxPromptStyles {
		styles = styles[:maxPromptStyles]
	}

	lines := make([]string, 0, len(styles))
	for _, style := range styles {
		lines = append(lines, fmt.Sprintf("- %s (%s)", nameOr(style.Name, "Unnamed"), style.Type))
	}
	return strings.Join(lines, "\n")
}

func formatStyleNames(styles []domain.DesignStyle, limit int, empty string) string {
	if len(styles) == 0 {
		return empty
	}
	if len(styles) > limit {
		styles = styles[:limit]
	}

	lines := make([]string, 0, len(styles))
	for _, style := range styles {
		lines = append(lines, "- "+nameOr(style.Name, "Unnamed"))
	}
	return strings.Join(lines, "\n")
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
