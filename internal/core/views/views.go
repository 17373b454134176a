// Package views names the eight dashboard views of a document and renders
// each one as wrapped plain text.
package views

import "strings"

// ID identifies a dashboard view
type ID string

const (
	Summary     ID = "summary"
	MindMap     ID = "mindmap"
	Roadmap     ID = "roadmap"
	Decisions   ID = "decisions"
	Modules     ID = "modules"
	Automations ID = "automations"
	Content     ID = "content"
	Loops       ID = "loops"
)

// Default is the view shown after a session is created or selected
const Default = Summary

// View is an ID with its navigation label
type View struct {
	ID    ID
	Label string
}

var all = []View{
	{Summary, "Executive"},
	{MindMap, "Theme Map"},
	{Roadmap, "Roadmap"},
	{Decisions, "Decisions"},
	{Modules, "Projects"},
	{Automations, "AI/Automations"},
	{Content, "Content"},
	{Loops, "Open Loops"},
}

// All returns every view in navigation order
func All() []View {
	out := make([]View, len(all))
	copy(out, all)
	return out
}

// Parse resolves a view by id or label, case-insensitively
func Parse(s string) (ID, bool) {
	s = strings.TrimSpace(s)
	for _, v := range all {
		if strings.EqualFold(s, string(v.ID)) || strings.EqualFold(s, v.Label) {
			return v.ID, true
		}
	}
	return "", false
}

// Valid reports whether id is one of the eight views
func Valid(id ID) bool {
	return index(id) >= 0
}

// Label returns the navigation label, or the id itself when unknown
func Label(id ID) string {
	if i := index(id); i >= 0 {
		return all[i].Label
	}
	return string(id)
}

// Next returns the view after id, wrapping around
func Next(id ID) ID {
	i := index(id)
	if i < 0 {
		return Default
	}
	return all[(i+1)%len(all)].ID
}

// Prev returns the view before id, wrapping around
func Prev(id ID) ID {
	i := index(id)
	if i < 0 {
		return Default
	}
	return all[(i-1+len(all))%len(all)].ID
}

func index(id ID) int {
	for i, v := range all {
		if v.ID == id {
			return i
		}
	}
	return -1
}
