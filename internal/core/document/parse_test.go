package document

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.json")
	require.NoError(t, err)
	return string(data)
}

// sampleMap returns the sample decoded into a generic map so tests can
// remove or null individual keys.
func sampleMap(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(loadSample(t)), &m))
	return m
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func requireMalformed(t *testing.T, err error, reason string) *MalformedOutputError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedOutput))
	var mErr *MalformedOutputError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, reason, mErr.Reason)
	return mErr
}

func TestParse_Valid(t *testing.T) {
	doc, err := Parse(loadSample(t))
	require.NoError(t, err)

	assert.Equal(t, "v2 Launch", doc.ThemeMap.Title)
	assert.Equal(t, "Finish v2", doc.TheOneMove.Action)
	require.Len(t, doc.Roadmap.Columns, 3)
	assert.Equal(t, "Ship v2", doc.Roadmap.Columns[0].Tasks[0].Title)
	assert.NotNil(t, doc.Roadmap.Columns[0].Tasks[0].Dependencies)
	assert.Empty(t, doc.Roadmap.Columns[2].Tasks)
	assert.Equal(t, []string{"Usage-based pricing", "Mobile app"}, doc.DecisionBoard.Research)
	assert.Equal(t, "Email drip", doc.ThemeMap.Nodes[0].Nodes[1].Nodes[0].Title)
}

func TestParse_Fenced(t *testing.T) {
	sample := loadSample(t)
	tests := []struct {
		name string
		text string
	}{
		{"plain fence", "```\n" + sample + "\n```"},
		{"json fence", "```json\n" + sample + "\n```"},
		{"surrounding whitespace", "\n\n  ```json\n" + sample + "```  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, "v2 Launch", doc.ThemeMap.Title)
		})
	}
}

func TestParse_DoubleFenceIsNotUnwrapped(t *testing.T) {
	text := "```\n```json\n" + loadSample(t) + "\n```\n```"
	_, err := Parse(text)
	requireMalformed(t, err, ReasonSyntax)
}

func TestParse_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   \n\t", "```\n```", "```json```"} {
		_, err := Parse(text)
		requireMalformed(t, err, ReasonEmpty)
	}
}

func TestParse_NotJSON(t *testing.T) {
	_, err := Parse("not json")
	requireMalformed(t, err, ReasonSyntax)

	_, err = Parse(`["an", "array"]`)
	requireMalformed(t, err, ReasonSyntax)

	_, err = Parse(loadSample(t) + "{}")
	requireMalformed(t, err, ReasonSyntax)
}

func TestParse_MissingTopLevelKey(t *testing.T) {
	keys := []string{
		"executiveSummary", "themeMap", "roadmap", "decisionBoard",
		"projectModules", "automations", "content", "openLoops", "theOneMove",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			m := sampleMap(t)
			delete(m, key)
			_, err := Parse(encode(t, m))
			mErr := requireMalformed(t, err, ReasonMissing)
			assert.Equal(t, []string{key}, mErr.Missing)
		})
	}
}

func TestParse_NullRequiredKey(t *testing.T) {
	m := sampleMap(t)
	m["openLoops"] = nil
	_, err := Parse(encode(t, m))
	mErr := requireMalformed(t, err, ReasonMissing)
	assert.Equal(t, []string{"openLoops"}, mErr.Missing)
}

func TestParse_MissingNestedKeys(t *testing.T) {
	m := sampleMap(t)
	task := m["roadmap"].(map[string]any)["columns"].([]any)[0].(map[string]any)["tasks"].([]any)[0].(map[string]any)
	delete(task, "dod")
	delete(m["theOneMove"].(map[string]any), "reason")

	_, err := Parse(encode(t, m))
	mErr := requireMalformed(t, err, ReasonMissing)
	assert.ElementsMatch(t, []string{"roadmap.columns[0].tasks[0].dod", "theOneMove.reason"}, mErr.Missing)
	assert.Contains(t, mErr.Error(), "theOneMove.reason")
}

func TestParse_OptionalNodeFields(t *testing.T) {
	m := sampleMap(t)
	m["themeMap"] = map[string]any{
		"title": "Bare",
		"nodes": []any{
			map[string]any{"title": "leaf"},
			map[string]any{"title": "explicit null", "nodes": nil},
		},
	}
	doc, err := Parse(encode(t, m))
	require.NoError(t, err)
	assert.Nil(t, doc.ThemeMap.Nodes[0].Nodes)
	assert.Empty(t, doc.ThemeMap.Nodes[0].Notes)
}

func TestParse_MissingNestedNodeTitle(t *testing.T) {
	m := sampleMap(t)
	m["themeMap"] = map[string]any{
		"title": "Deep",
		"nodes": []any{
			map[string]any{"title": "a", "nodes": []any{map[string]any{"notes": "no title"}}},
		},
	}
	_, err := Parse(encode(t, m))
	mErr := requireMalformed(t, err, ReasonMissing)
	assert.Equal(t, []string{"themeMap.nodes[0].nodes[0].title"}, mErr.Missing)
}

func TestParse_WrongType(t *testing.T) {
	m := sampleMap(t)
	m["openLoops"] = "not a list"
	_, err := Parse(encode(t, m))
	requireMalformed(t, err, ReasonShape)
}

func TestParse_TooDeep(t *testing.T) {
	node := map[string]any{"title": "leaf"}
	for i := 0; i < MaxDepth+1; i++ {
		node = map[string]any{"title": "n", "nodes": []any{node}}
	}
	m := sampleMap(t)
	m["themeMap"] = map[string]any{"title": "Deep", "nodes": []any{node}}
	_, err := Parse(encode(t, m))
	requireMalformed(t, err, ReasonShape)
}

func TestParse_RoundTrip(t *testing.T) {
	doc, err := Parse(loadSample(t))
	require.NoError(t, err)

	serialized := encode(t, doc)
	for _, text := range []string{serialized, "```json\n" + serialized + "\n```"} {
		again, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, doc, again)
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{}", "{}"},
		{"  {}  ", "{}"},
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"```json\n{}", "```json\n{}"},
		{"prefix ```json\n{}\n```", "prefix ```json\n{}\n```"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripFence(tt.in), "StripFence(%q)", tt.in)
	}
}

func TestSchema(t *testing.T) {
	s := Schema()
	assert.ElementsMatch(t, []string{
		"executiveSummary", "themeMap", "roadmap", "decisionBoard",
		"projectModules", "automations", "content", "openLoops", "theOneMove",
	}, s.Required)

	js := SchemaJSON()
	assert.True(t, strings.Contains(js, `"MindMapNode"`))
	assert.True(t, strings.Contains(js, `"LATER"`))
}
