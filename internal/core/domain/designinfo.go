package domain

import "sort"

// MaxFrameDepth caps frame recursion during extraction to bound the
// payload handed to the LLM.
const MaxFrameDepth = 5

// DesignInfo is the flattened summary of a design file used as LLM
// prompt input: pages, frames, elements, named components, and styles
// bucketed into colour and typography groups.
type DesignInfo struct {
	FileName     string
	FileKey      string
	Version      string
	LastModified string

	Pages      []PageInfo
	Components []DesignComponent
	Styles     []DesignStyle
	Colors     []DesignStyle
	Typography []DesignStyle
}

// PageInfo summarises one page of a design file.
type PageInfo struct {
	ID   string
	Name string
	Type string

	// Frames are the page's top-level frames (screens).
	Frames []NodeSummary

	// Elements are the page's top-level non-frame nodes.
	Elements []NodeSummary
}

// NodeSummary is a flattened view of a frame or element.
// Frames and groups carry children up to MaxFrameDepth.
type NodeSummary struct {
	ID          string
	Name        string
	Type        string
	Visible     bool
	LayoutMode  string
	Text        string
	ComponentID string
	Width       float64
	Height      float64
	Children    []NodeSummary
}

// ExtractDesignInfo flattens a fetched design file into the summary
// structure. Pages are the document's direct children; frame recursion
// stops at MaxFrameDepth. Styles tagged FILL become colours and styles
// tagged TEXT become typography; every style also stays in Styles.
func ExtractDesignInfo(file *DesignFile) DesignInfo {
	info := DesignInfo{
		FileName:     file.Name,
		FileKey:      file.Key,
		Version:      file.Version,
		LastModified: file.LastModified.Format("2006-01-02T15:04:05Z07:00"),
	}

	for i := range file.Document.Children {
		info.Pages = append(info.Pages, extractPage(&file.Document.Children[i]))
	}

	// Map iteration order is random; sort for stable prompts.
	for _, comp := range file.Components {
		info.Components = append(info.Components, comp)
	}
	sort.Slice(info.Components, func(i, j int) bool {
		return info.Components[i].Name < info.Components[j].Name
	})

	for _, style := range file.Styles {
		info.Styles = append(info.Styles, style)
		switch style.Type {
		case StyleTypeFill:
			info.Colors = append(info.Colors, style)
		case StyleTypeText:
			info.Typography = append(info.Typography, style)
		}
	}
	sort.Slice(info.Styles, func(i, j int) bool { return info.Styles[i].Name < info.Styles[j].Name })
	sort.Slice(info.Colors, func(i, j int) bool { return info.Colors[i].Name < info.Colors[j].Name })
	sort.Slice(info.Typography, func(i, j int) bool { return info.Typography[i].Name < info.Typography[j].Name })

	return info
}

func extractPage(page *DesignNode) PageInfo {
	pageInfo := PageInfo{
		ID:   page.ID,
		Name: page.Name,
		Type: page.Type,
	}

	for i := range page.Children {
		child := &page.Children[i]
		if child.Type == NodeTypeFrame {
			pageInfo.Frames = append(pageInfo.Frames, extractFrame(child, 0))
		} else {
			pageInfo.Elements = append(pageInfo.Elements, extractElement(child))
		}
	}

	return pageInfo
}

func extractFrame(frame *DesignNode, depth int) NodeSummary {
	summary := NodeSummary{
		ID:         frame.ID,
		Name:       frame.Name,
		Type:       frame.Type,
		Visible:    frame.Visible,
		LayoutMode: frame.LayoutMode,
		Width:      frame.Width,
		Height:     frame.Height,
	}

	if depth >= MaxFrameDepth {
		return summary
	}

	for i := range frame.Children {
		child := &frame.Children[i]
		if child.Type == NodeTypeFrame || child.Type == NodeTypeGroup {
			summary.Children = append(summary.Children, extractFrame(child, depth+1))
		} else {
			summary.Children = append(summary.Children, extractElement(child))
		}
	}

	return summary
}

func extractElement(element *DesignNode) NodeSummary {
	return NodeSummary{
		ID:          element.ID,
		Name:        element.Name,
		Type:        element.Type,
		Visible:     element.Visible,
		Text:        element.Characters,
		ComponentID: element.ComponentID,
		Width:       element.Width,
		Height:      element.Height,
	}
}
