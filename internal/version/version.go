// Package version records the model release identifiers. Version is
// overridable at build time; CatalogRevision tracks the static clump
// and void catalogs.
package version

var (
	// Version is the current model release
	Version = "dev"
	// CatalogRevision is the clump/void catalog revision
	CatalogRevision = "2026.1"
)
