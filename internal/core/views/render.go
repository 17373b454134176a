package views

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/neilberkman/kapro/internal/core/models"
)

// MinWidth is the narrowest wrap width Render will use
const MinWidth = 40

var columnHeaders = map[models.ColumnName]string{
	models.ColumnNow:   "Immediate Execution (Next 7 Days)",
	models.ColumnNext:  "In Queue (2-4 Weeks)",
	models.ColumnLater: "On Horizon (1-3 Months)",
}

// Render formats one view of doc, wrapped to width. Unknown ids render the
// summary view.
func Render(doc *models.Document, id ID, width int) string {
	if doc == nil {
		return ""
	}
	if width < MinWidth {
		width = MinWidth
	}

	w := &writer{width: width}
	switch id {
	case MindMap:
		renderMindMap(w, doc.ThemeMap)
	case Roadmap:
		renderRoadmap(w, doc.Roadmap)
	case Decisions:
		renderDecisions(w, doc.DecisionBoard)
	case Modules:
		renderModules(w, doc.ProjectModules)
	case Automations:
		renderAutomations(w, doc.Automations)
	case Content:
		renderContent(w, doc.Content)
	case Loops:
		renderLoops(w, doc.OpenLoops)
	default:
		renderSummary(w, doc.ExecutiveSummary, doc.TheOneMove)
	}
	return strings.TrimRight(w.String(), "\n") + "\n"
}

// Markdown renders every view of a session, in navigation order
func Markdown(s models.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "_Architected %s_\n", s.CreatedAt().Format("Jan 2, 2006 15:04"))
	for _, v := range all {
		fmt.Fprintf(&b, "\n## %s\n\n", v.Label)
		b.WriteString(Render(&s.Data, v.ID, 100))
	}
	return b.String()
}

type writer struct {
	strings.Builder
	width int
}

func (w *writer) heading(s string) {
	w.WriteString(s + "\n")
	w.WriteString(strings.Repeat("─", min(len([]rune(s)), w.width)) + "\n")
}

func (w *writer) para(s string, pad uint) {
	wrapped := wordwrap.String(s, w.width-int(pad))
	w.WriteString(indent.String(wrapped, pad) + "\n")
}

func (w *writer) field(label, value string, pad uint) {
	w.para(label+": "+value, pad)
}

func (w *writer) bullets(items []string, pad uint, empty string) {
	if len(items) == 0 {
		if empty != "" {
			w.para(empty, pad)
		}
		return
	}
	for _, item := range items {
		wrapped := wordwrap.String(item, w.width-int(pad)-2)
		lines := strings.Split(wrapped, "\n")
		w.WriteString(indent.String("• "+lines[0], pad) + "\n")
		for _, line := range lines[1:] {
			w.WriteString(indent.String(line, pad+2) + "\n")
		}
	}
}

func (w *writer) blank() { w.WriteString("\n") }

func renderSummary(w *writer, s models.ExecutiveSummary, move models.OneMove) {
	w.heading("Direction")
	w.para(s.Direction, 0)
	w.blank()
	w.heading("Key Opportunities")
	w.bullets(s.Opportunities, 0, "None identified")
	w.blank()
	w.heading("Systemic Risks")
	w.bullets(s.Risks, 0, "None identified")
	w.blank()
	w.heading("The One Move")
	w.para(move.Action, 0)
	w.para("Why: "+move.Reason, 2)
}

func renderMindMap(w *writer, m models.ThemeMap) {
	w.heading(m.Title)
	for _, n := range m.Nodes {
		renderNode(w, n, 0)
	}
}

func renderNode(w *writer, n models.MindMapNode, depth uint) {
	pad := depth * 2
	w.bullets([]string{n.Title}, pad, "")
	if n.Notes != "" {
		w.para(n.Notes, pad+4)
	}
	for _, child := range n.Nodes {
		renderNode(w, child, depth+1)
	}
}

func renderRoadmap(w *writer, r models.Roadmap) {
	for i, col := range r.Columns {
		if i > 0 {
			w.blank()
		}
		header := string(col.Name)
		if sub, ok := columnHeaders[col.Name]; ok {
			header += " · " + sub
		}
		w.heading(header)
		if len(col.Tasks) == 0 {
			w.para("No tasks assigned", 2)
			continue
		}
		for _, t := range col.Tasks {
			w.bullets([]string{fmt.Sprintf("[%s] %s", t.Effort, t.Title)}, 0, "")
			w.para(t.Why, 4)
			w.field("DoD", t.DoD, 4)
			if len(t.Dependencies) > 0 {
				w.field("Relies on", strings.Join(t.Dependencies, ", "), 4)
			}
		}
	}
}

func renderDecisions(w *writer, d models.DecisionBoard) {
	sections := []struct {
		title string
		items []string
	}{
		{"KEEP (Commit)", d.Keep},
		{"KILL (Eliminate)", d.Kill},
		{"PARK (Delayed)", d.Park},
		{"RESEARCH (Unknowns)", d.Research},
	}
	for i, s := range sections {
		if i > 0 {
			w.blank()
		}
		w.heading(s.title)
		w.bullets(s.items, 0, "No assets detected")
	}
}

func renderModules(w *writer, mods []models.ProjectModule) {
	if len(mods) == 0 {
		w.para("No project modules identified.", 0)
		return
	}
	for i, m := range mods {
		if i > 0 {
			w.blank()
		}
		w.heading(m.Name)
		w.field("Goal", m.Goal, 0)
		w.field("Audience", m.Audience, 0)
		w.para("Key Assets:", 0)
		w.bullets(m.Assets, 2, "none")
		w.para("Success Metrics:", 0)
		w.bullets(m.Metrics, 2, "none")
		w.field("First Test", m.FirstTest, 0)
	}
}

func renderAutomations(w *writer, autos []models.Automation) {
	if len(autos) == 0 {
		w.para("No automations identified.", 0)
		return
	}
	for i, a := range autos {
		if i > 0 {
			w.blank()
		}
		w.heading(a.Name)
		w.field("Trigger", a.Trigger, 0)
		w.para("Workflow Steps:", 0)
		for j, step := range a.Steps {
			w.para(fmt.Sprintf("%d. %s", j+1, step), 2)
		}
		w.field("Output", a.Output, 0)
		if len(a.Tools) > 0 {
			w.field("Tools", strings.Join(a.Tools, ", "), 0)
		}
		w.field("MVP Version", a.MVP, 0)
	}
}

func renderContent(w *writer, c models.Content) {
	w.heading("Hooks")
	w.bullets(c.Hooks, 0, "None")
	w.blank()
	w.heading("Short Scripts")
	if len(c.ShortScripts) == 0 {
		w.para("None", 0)
	}
	for _, s := range c.ShortScripts {
		w.bullets([]string{s.Title}, 0, "")
		w.para(s.Outline, 4)
	}
	w.blank()
	w.heading("Long-form Outlines")
	if len(c.LongOutlines) == 0 {
		w.para("None", 0)
	}
	for _, o := range c.LongOutlines {
		w.bullets([]string{o.Title}, 0, "")
		for j, part := range o.Structure {
			w.para(fmt.Sprintf("%d. %s", j+1, part), 4)
		}
	}
}

func renderLoops(w *writer, loops []string) {
	w.heading("Open Loops & Conflicts")
	w.bullets(loops, 0, "No critical open loops detected. Proceed with the roadmap!")
	w.blank()
	w.heading("The Operating Rhythm")
	w.field("Daily Focus", "Complete one NOW task per day. Review blockers.", 0)
	w.field("Weekly Audit", "Move tasks from NEXT to NOW. Archive finished projects.", 0)
}
