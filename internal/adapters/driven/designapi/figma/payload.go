package figma

import "github.com/designdocs-labs/designdocs-cli/internal/core/domain"

// Wire formats for the Figma REST API. Only the fields the CLI reads
// are declared; the API returns much more.

type userPayload struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Email  string `json:"email"`
	ImgURL string `json:"img_url"`
}

type filePayload struct {
	Name         string                      `json:"name"`
	Version      string                      `json:"version"`
	LastModified string                      `json:"lastModified"`
	ThumbnailURL string                      `json:"thumbnailUrl"`
	Document     nodePayload                 `json:"document"`
	Components   map[string]componentPayload `json:"components"`
	Styles       map[string]stylePayload     `json:"styles"`
}

type nodePayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Children    []nodePayload `json:"children"`
	Visible     *bool         `json:"visible"`
	LayoutMode  string        `json:"layoutMode"`
	Characters  string        `json:"characters"`
	ComponentID string        `json:"componentId"`

	AbsoluteBoundingBox *struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"absoluteBoundingBox"`
}

// toDomain converts the wire node tree recursively. The API omits
// "visible" for visible nodes, so a missing field means true.
func (n nodePayload) toDomain() domain.DesignNode {
	node := domain.DesignNode{
		ID:          n.ID,
		Name:        n.Name,
		Type:        n.Type,
		Visible:     n.Visible == nil || *n.Visible,
		LayoutMode:  n.LayoutMode,
		Characters:  n.Characters,
		ComponentID: n.ComponentID,
	}
	if n.AbsoluteBoundingBox != nil {
		node.Width = n.AbsoluteBoundingBox.Width
		node.Height = n.AbsoluteBoundingBox.Height
	}
	if len(n.Children) > 0 {
		node.Children = make([]domain.DesignNode, 0, len(n.Children))
		for _, child := range n.Children {
			node.Children = append(node.Children, child.toDomain())
		}
	}
	return node
}

type componentPayload struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type stylePayload struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	StyleType   string `json:"styleType"`
	Description string `json:"description"`
}

type versionPayload struct {
	ID          string      `json:"id"`
	CreatedAt   string      `json:"created_at"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	User        userPayload `json:"user"`
}
