// Package docindex builds and serves a searchable knowledge base of
// application documentation (Blender and After Effects). It crawls
// documentation sites or local HTML trees, extracts and normalizes the main
// content, splits it into bounded chunks, embeds each chunk and persists the
// result as a corpus that can be queried by cosine similarity.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package docindex
