// Package domain defines the core business entities for designdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - WatchedFile: A remote design file tracked for version changes
//   - FileChangeEvent: A detected version transition on a watched file
//   - DesignFile: A fetched design document with its node tree
//   - Documentation: Generated documentation split into ordered sections
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
