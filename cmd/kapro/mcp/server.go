package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/neilberkman/kapro/internal/core/views"
)

// Loader returns the saved sessions, newest first. *history.Store implements it.
type Loader interface {
	Load() []models.Session
}

// ListBlueprintsArgs defines arguments for the list_blueprints tool
type ListBlueprintsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Max blueprints to return (default: 20)"`
}

// GetBlueprintArgs defines arguments for the get_blueprint tool
type GetBlueprintArgs struct {
	ID   string `json:"id" jsonschema:"description=Blueprint id or unique id prefix,required"`
	View string `json:"view,omitempty" jsonschema:"description=Render one view as text instead of returning JSON"`
}

// BlueprintSummary represents a blueprint in the list view
type BlueprintSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CreatedAt  string `json:"created_at"`
	TheOneMove string `json:"the_one_move"`
	Tasks      int    `json:"tasks"`
	Projects   int    `json:"projects"`
}

// StartServer serves the blueprint tools over stdio
func StartServer(version string, loader Loader) error {
	s := NewServer(version, loader)
	return server.ServeStdio(s)
}

// NewServer builds the MCP server with every tool registered
func NewServer(version string, loader Loader) *server.MCPServer {
	s := server.NewMCPServer(
		"Knowledge Architect",
		version,
	)

	listTool := mcp.NewTool("list_blueprints",
		mcp.WithDescription("List saved Knowledge Architect blueprints, newest first, with their single highest-leverage action"),
		mcp.WithNumber("limit",
			mcp.Description("Max blueprints to return (default: 20)")),
	)
	s.AddTool(listTool, makeListBlueprintsHandler(loader))

	viewIDs := make([]string, 0, len(views.All()))
	for _, v := range views.All() {
		viewIDs = append(viewIDs, string(v.ID))
	}
	getTool := mcp.NewTool("get_blueprint",
		mcp.WithDescription("Retrieve one blueprint: the full structured document as JSON, or a single dashboard view rendered as text"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Blueprint id or unique id prefix")),
		mcp.WithString("view",
			mcp.Description("Optional view to render as text"),
			mcp.Enum(viewIDs...)),
	)
	s.AddTool(getTool, makeGetBlueprintHandler(loader))

	return s
}

func makeListBlueprintsHandler(loader Loader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListBlueprintsArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit <= 0 {
			limit = 20
		}

		sessions := loader.Load()
		if len(sessions) > limit {
			sessions = sessions[:limit]
		}

		blueprints := make([]BlueprintSummary, 0, len(sessions))
		for _, s := range sessions {
			tasks := 0
			for _, col := range s.Data.Roadmap.Columns {
				tasks += len(col.Tasks)
			}
			blueprints = append(blueprints, BlueprintSummary{
				ID:         s.ID,
				Title:      s.Title,
				CreatedAt:  s.CreatedAt().Format("2006-01-02 15:04:05"),
				TheOneMove: s.Data.TheOneMove.Action,
				Tasks:      tasks,
				Projects:   len(s.Data.ProjectModules),
			})
		}

		resultJSON, err := json.Marshal(map[string]interface{}{
			"blueprints": blueprints,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}

func makeGetBlueprintHandler(loader Loader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetBlueprintArgs
		argsBytes, _ := json.Marshal(request.Params.Arguments)
		if err := json.Unmarshal(argsBytes, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		sess, err := history.Find(loader.Load(), args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if args.View != "" {
			id, ok := views.Parse(args.View)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown view %q", args.View)), nil
			}
			return mcp.NewToolResultText(views.Render(&sess.Data, id, 100)), nil
		}

		resultJSON, err := json.Marshal(sess)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcp.NewToolResultText(string(resultJSON)), nil
	}
}
