package models

// Document is the structured result of architecting one transcript.
// Every top-level section is required; arrays may be empty.
type Document struct {
	ExecutiveSummary ExecutiveSummary `json:"executiveSummary" jsonschema:"required"`
	ThemeMap         ThemeMap         `json:"themeMap" jsonschema:"required"`
	Roadmap          Roadmap          `json:"roadmap" jsonschema:"required"`
	DecisionBoard    DecisionBoard    `json:"decisionBoard" jsonschema:"required"`
	ProjectModules   []ProjectModule  `json:"projectModules" jsonschema:"required"`
	Automations      []Automation     `json:"automations" jsonschema:"required"`
	Content          Content          `json:"content" jsonschema:"required"`
	OpenLoops        []string         `json:"openLoops" jsonschema:"required"`
	TheOneMove       OneMove          `json:"theOneMove" jsonschema:"required"`
}

// ExecutiveSummary is the top-of-dashboard direction statement
type ExecutiveSummary struct {
	Direction     string   `json:"direction" jsonschema:"required"`
	Opportunities []string `json:"opportunities" jsonschema:"required"`
	Risks         []string `json:"risks" jsonschema:"required"`
}

// ThemeMap is the root of the mind map
type ThemeMap struct {
	Title string        `json:"title" jsonschema:"required"`
	Nodes []MindMapNode `json:"nodes" jsonschema:"required"`
}

// MindMapNode is one node of the theme tree. Notes and Nodes are optional;
// Nodes is serialized even when nil so that an explicit empty list survives
// a round trip.
type MindMapNode struct {
	Title string        `json:"title" jsonschema:"required"`
	Notes string        `json:"notes,omitempty"`
	Nodes []MindMapNode `json:"nodes"`
}

// ColumnName is a roadmap time box
type ColumnName string

const (
	ColumnNow   ColumnName = "NOW"
	ColumnNext  ColumnName = "NEXT"
	ColumnLater ColumnName = "LATER"
)

// Effort is a t-shirt size estimate
type Effort string

const (
	EffortSmall  Effort = "S"
	EffortMedium Effort = "M"
	EffortLarge  Effort = "L"
)

// Roadmap groups tasks into NOW / NEXT / LATER columns
type Roadmap struct {
	Columns []Column `json:"columns" jsonschema:"required"`
}

// Column is a single roadmap time box
type Column struct {
	Name  ColumnName `json:"name" jsonschema:"required,enum=NOW,enum=NEXT,enum=LATER"`
	Tasks []Task     `json:"tasks" jsonschema:"required"`
}

// Task is one roadmap item. Dependencies are free text, not references.
type Task struct {
	Title        string   `json:"title" jsonschema:"required"`
	Why          string   `json:"why" jsonschema:"required"`
	DoD          string   `json:"dod" jsonschema:"required"`
	Effort       Effort   `json:"effort" jsonschema:"required,enum=S,enum=M,enum=L"`
	Dependencies []string `json:"dependencies" jsonschema:"required"`
}

// DecisionBoard holds four independent buckets. The same item may appear
// in more than one bucket.
type DecisionBoard struct {
	Keep     []string `json:"keep" jsonschema:"required"`
	Kill     []string `json:"kill" jsonschema:"required"`
	Park     []string `json:"park" jsonschema:"required"`
	Research []string `json:"research" jsonschema:"required"`
}

// ProjectModule is a self-contained project extracted from the transcript
type ProjectModule struct {
	Name      string   `json:"name" jsonschema:"required"`
	Goal      string   `json:"goal" jsonschema:"required"`
	Audience  string   `json:"audience" jsonschema:"required"`
	Assets    []string `json:"assets" jsonschema:"required"`
	Metrics   []string `json:"metrics" jsonschema:"required"`
	FirstTest string   `json:"firstTest" jsonschema:"required"`
}

// Automation is a blueprint for an AI or automation workflow
type Automation struct {
	Name    string   `json:"name" jsonschema:"required"`
	Trigger string   `json:"trigger" jsonschema:"required"`
	Steps   []string `json:"steps" jsonschema:"required"`
	Output  string   `json:"output" jsonschema:"required"`
	Tools   []string `json:"tools" jsonschema:"required"`
	MVP     string   `json:"mvp" jsonschema:"required"`
}

// Content collects content-extraction artifacts
type Content struct {
	Hooks        []string      `json:"hooks" jsonschema:"required"`
	ShortScripts []ShortScript `json:"shortScripts" jsonschema:"required"`
	LongOutlines []LongOutline `json:"longOutlines" jsonschema:"required"`
}

// ShortScript is a short-form content idea
type ShortScript struct {
	Title   string `json:"title" jsonschema:"required"`
	Outline string `json:"outline" jsonschema:"required"`
}

// LongOutline is a long-form content structure
type LongOutline struct {
	Title     string   `json:"title" jsonschema:"required"`
	Structure []string `json:"structure" jsonschema:"required"`
}

// OneMove is the single highest-leverage action
type OneMove struct {
	Action string `json:"action" jsonschema:"required"`
	Reason string `json:"reason" jsonschema:"required"`
}
