package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carelfelix2/scrapper/internal/api"
	"github.com/carelfelix2/scrapper/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolset binds the tool handlers to one API client.
type toolset struct {
	client *api.Client
}

func registerTools(s *server.MCPServer, client *api.Client) {
	ts := &toolset{client: client}

	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search collected products by name"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("skip",
			mcp.Description("Result offset (default: 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Results per page (default: 20)"),
		),
	)
	s.AddTool(searchTool, ts.handleSearchProducts)

	listProductsTool := mcp.NewTool("list_products",
		mcp.WithDescription("List collected products, optionally filtered by platform"),
		mcp.WithString("platform",
			mcp.Description("Platform filter: shopee, tokopedia, tiktok_shop (default: all)"),
		),
		mcp.WithNumber("skip",
			mcp.Description("Result offset (default: 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Results per page (default: 20)"),
		),
	)
	s.AddTool(listProductsTool, ts.handleListProducts)

	historyTool := mcp.NewTool("product_history",
		mcp.WithDescription("Get a product's price history"),
		mcp.WithNumber("product_id",
			mcp.Required(),
			mcp.Description("Product ID"),
		),
		mcp.WithNumber("limit",
			mcp.Description("History points (default: 50)"),
		),
	)
	s.AddTool(historyTool, ts.handleProductHistory)

	listTasksTool := mcp.NewTool("list_tasks",
		mcp.WithDescription("List scraping tasks with their current status"),
		mcp.WithNumber("skip",
			mcp.Description("Result offset (default: 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Tasks per page (default: 10)"),
		),
	)
	s.AddTool(listTasksTool, ts.handleListTasks)

	getTaskTool := mcp.NewTool("get_task",
		mcp.WithDescription("Get one scraping task by ID"),
		mcp.WithNumber("task_id",
			mcp.Required(),
			mcp.Description("Task ID"),
		),
	)
	s.AddTool(getTaskTool, ts.handleGetTask)

	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Submit a new scraping task"),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Target platform: shopee, tokopedia, tiktok_shop"),
		),
		mcp.WithString("task_type",
			mcp.Description("Task type (default: keyword_search)"),
		),
		mcp.WithString("keyword",
			mcp.Description("Search keyword (keyword_search tasks)"),
		),
		mcp.WithString("url",
			mcp.Description("Target URL (all other task types)"),
		),
	)
	s.AddTool(createTaskTool, ts.handleCreateTask)
}

func (ts *toolset) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	skip := request.GetInt("skip", 0)
	limit := request.GetInt("limit", 20)

	page, err := ts.client.SearchProducts(ctx, query, skip, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
	}
	return jsonResult(page)
}

func (ts *toolset) handleListProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform := models.Platform(request.GetString("platform", ""))
	if platform != "" && !platform.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown platform %q", platform)), nil
	}
	skip := request.GetInt("skip", 0)
	limit := request.GetInt("limit", 20)

	page, err := ts.client.ListProducts(ctx, platform, skip, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
	}
	return jsonResult(page)
}

func (ts *toolset) handleProductHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("product_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("product_id is required"), nil
	}
	limit := request.GetInt("limit", 50)

	history, err := ts.client.ProductHistory(ctx, int64(id), limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history error: %v", err)), nil
	}
	return jsonResult(history)
}

func (ts *toolset) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	skip := request.GetInt("skip", 0)
	limit := request.GetInt("limit", 10)

	page, err := ts.client.ListTasks(ctx, skip, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list error: %v", err)), nil
	}
	return jsonResult(page)
}

func (ts *toolset) handleGetTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("task_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("task_id is required"), nil
	}

	task, err := ts.client.GetTask(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get error: %v", err)), nil
	}
	return jsonResult(task)
}

func (ts *toolset) handleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform := models.Platform(request.GetString("platform", ""))
	if !platform.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown platform %q", platform)), nil
	}
	taskType := request.GetString("task_type", models.TaskTypeKeywordSearch)

	value := request.GetString("url", "")
	if taskType == models.TaskTypeKeywordSearch {
		value = request.GetString("keyword", "")
		if value == "" {
			return mcp.NewToolResultError("keyword is required for keyword_search tasks"), nil
		}
	} else if value == "" {
		return mcp.NewToolResultError("url is required for this task type"), nil
	}

	task, err := ts.client.CreateTask(ctx, platform, taskType, models.TaskInput(taskType, value))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create error: %v", err)), nil
	}
	return jsonResult(task)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
