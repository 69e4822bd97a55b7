// Package sources extracts candidate comic image URLs from the supported
// comic sources: a paginated HTML archive, a JSON archive feed and an RSS
// feed. Each source keeps its markup patterns to itself so a change on one
// site only touches one file.
package sources
