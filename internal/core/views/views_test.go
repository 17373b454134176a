package views

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/kapro/internal/core/document"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(t *testing.T) *models.Document {
	t.Helper()
	raw, err := os.ReadFile("../document/testdata/sample.json")
	require.NoError(t, err)
	doc, err := document.Parse(string(raw))
	require.NoError(t, err)
	return doc
}

func TestAll(t *testing.T) {
	got := All()
	require.Len(t, got, 8)
	assert.Equal(t, Summary, got[0].ID)
	assert.Equal(t, "Executive", got[0].Label)
	assert.Equal(t, Loops, got[7].ID)

	got[0].Label = "changed"
	assert.Equal(t, "Executive", All()[0].Label)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want ID
		ok   bool
	}{
		{"summary", Summary, true},
		{"ROADMAP", Roadmap, true},
		{"Theme Map", MindMap, true},
		{" ai/automations ", Automations, true},
		{"Projects", Modules, true},
		{"timeline", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNextPrev(t *testing.T) {
	assert.Equal(t, MindMap, Next(Summary))
	assert.Equal(t, Summary, Next(Loops))
	assert.Equal(t, Loops, Prev(Summary))
	assert.Equal(t, Decisions, Prev(Modules))
	assert.Equal(t, Default, Next("bogus"))
	assert.Equal(t, Default, Prev("bogus"))

	id := Summary
	for range All() {
		id = Next(id)
	}
	assert.Equal(t, Summary, id)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Open Loops", Label(Loops))
	assert.Equal(t, "bogus", Label("bogus"))
	assert.True(t, Valid(Content))
	assert.False(t, Valid("bogus"))
}

func TestRender_Summary(t *testing.T) {
	out := Render(sampleDoc(t), Summary, 80)
	assert.Contains(t, out, "The One Move")
	assert.Contains(t, out, "Finish v2")
	assert.Contains(t, out, "Key Opportunities")
}

func TestRender_UnknownFallsBackToSummary(t *testing.T) {
	doc := sampleDoc(t)
	assert.Equal(t, Render(doc, Summary, 80), Render(doc, "bogus", 80))
}

func TestRender_Roadmap(t *testing.T) {
	out := Render(sampleDoc(t), Roadmap, 80)
	assert.Contains(t, out, "NOW · Immediate Execution")
	assert.Contains(t, out, "[S] Ship v2")
	assert.Contains(t, out, "DoD: Deployed to prod")
}

func TestRender_Decisions(t *testing.T) {
	out := Render(sampleDoc(t), Decisions, 80)
	assert.Contains(t, out, "RESEARCH (Unknowns)")
	assert.Contains(t, out, "Usage-based pricing")
	assert.Contains(t, out, "Mobile app")
}

func TestRender_MindMapNested(t *testing.T) {
	out := Render(sampleDoc(t), MindMap, 80)
	assert.Contains(t, out, "v2 Launch")
	assert.Contains(t, out, "Email drip")
}

func TestRender_EmptyLoops(t *testing.T) {
	doc := sampleDoc(t)
	doc.OpenLoops = []string{}
	out := Render(doc, Loops, 80)
	assert.Contains(t, out, "No critical open loops detected")
}

func TestRender_Wraps(t *testing.T) {
	doc := sampleDoc(t)
	doc.ExecutiveSummary.Direction = strings.TrimSpace(strings.Repeat("word ", 40))
	out := Render(doc, Summary, 10)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), MinWidth, line)
	}
}

func TestRender_Nil(t *testing.T) {
	assert.Equal(t, "", Render(nil, Summary, 80))
}

func TestMarkdown(t *testing.T) {
	sess := models.Session{
		ID:        "a",
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local).UnixMilli(),
		Title:     "v2 Launch",
		Data:      *sampleDoc(t),
	}
	out := Markdown(sess)
	assert.True(t, strings.HasPrefix(out, "# v2 Launch\n"))
	for _, v := range All() {
		assert.Contains(t, out, "## "+v.Label)
	}
}
