package domain

import "time"

// Node types with special handling during design info extraction.
const (
	NodeTypeFrame = "FRAME"
	NodeTypeGroup = "GROUP"
)

// Style type tags used to bucket styles during extraction.
const (
	StyleTypeFill = "FILL"
	StyleTypeText = "TEXT"
)

// DesignNode is a single element in a design file's node tree.
type DesignNode struct {
	// ID is the node identifier within the file.
	ID string

	// Name is the layer name given by the designer.
	Name string

	// Type is the node type (DOCUMENT, CANVAS, FRAME, TEXT, ...).
	Type string

	// Children are the nested nodes, in document order.
	Children []DesignNode

	// Visible reports whether the node is shown. The API omits the
	// field for visible nodes, so adapters default it to true.
	Visible bool

	// Width and Height are taken from the absolute bounding box.
	// Zero when the API reports no box for the node.
	Width  float64
	Height float64

	// LayoutMode is the auto-layout direction for frames, if any.
	LayoutMode string

	// Characters is the text content for TEXT nodes.
	Characters string

	// ComponentID references the component this node instantiates, if any.
	ComponentID string
}

// DesignComponent is a named, reusable component defined in a file.
type DesignComponent struct {
	// Key is the component's stable cross-file key.
	Key string

	// NodeID is the component's node within this file.
	NodeID string

	// Name is the component name.
	Name string

	// Description is the designer-provided description, if any.
	Description string
}

// DesignStyle is a shared style defined in a file.
type DesignStyle struct {
	// ID is the style identifier within the file.
	ID string

	// Name is the style name.
	Name string

	// Type is the style type tag (FILL, TEXT, EFFECT, GRID).
	Type string

	// Description is the designer-provided description, if any.
	Description string
}

// DesignUser identifies a design API user.
type DesignUser struct {
	ID     string
	Handle string
	Email  string
	ImgURL string
}

// DesignVersion is one entry in a file's version history.
type DesignVersion struct {
	ID          string
	CreatedAt   time.Time
	Label       string
	Description string
	User        DesignUser
}

// FileMeta is the lightweight metadata returned by a shallow file fetch.
// The poller uses it to detect changes without pulling the node tree.
type FileMeta struct {
	Key          string
	Name         string
	Version      string
	LastModified time.Time
}

// DesignFile is a fully fetched design document.
type DesignFile struct {
	// Key is the design API file key.
	Key string

	// Name is the file's display name.
	Name string

	// Version is the current version identifier.
	Version string

	// LastModified is the remote modification timestamp.
	LastModified time.Time

	// ThumbnailURL is the file thumbnail, if any.
	ThumbnailURL string

	// Document is the root of the node tree. Its children are pages.
	Document DesignNode

	// Components maps node ID to component definition.
	Components map[string]DesignComponent

	// Styles maps style ID to style definition.
	Styles map[string]DesignStyle
}

// ProjectFile is a file listing entry from a project.
type ProjectFile struct {
	Key          string
	Name         string
	FileType     string
	ThumbnailURL string
	LastModified string
}

// Project is a project listing entry from a team.
type Project struct {
	ID   string
	Name string
}
