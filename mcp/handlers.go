package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/drace-lint/drace/app"
	"github.com/drace-lint/drace/domain"
	"github.com/drace-lint/drace/internal/config"
	"github.com/drace-lint/drace/service"
)

// HandleCheckDuplication handles the check_duplication tool.
func HandleCheckDuplication(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := domain.DefaultDuplicationRequest()
	req.Paths = []string{path}
	req.ConfigPath = config.SearchRoot(path)
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = io.Discard

	if v, ok := args["min_occurrences"].(float64); ok && v >= 2 {
		req.MinOccurrences = int(v)
	}
	if v, ok := args["max_window"].(float64); ok && v >= 1 {
		req.MaxWindow = int(v)
	}
	if v, ok := args["recursive"].(bool); ok {
		req.Recursive = v
	}

	useCase := app.NewCheckUseCase(
		service.NewDuplicationService(service.NewParallelExecutor(), service.NewProgressManager()),
		service.NewFileReader(),
		service.NewDuplicationFormatter(),
		service.NewDuplicationConfigLoader(),
	)

	response, err := useCase.Execute(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplication analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleRunFlakes handles the run_flakes tool.
func HandleRunFlakes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := domain.DefaultLintRequest()
	req.Paths = []string{path}
	req.OutputFormat = domain.OutputFormatJSON
	req.OutputWriter = io.Discard
	if v, ok := args["executable"].(string); ok && v != "" {
		req.Executable = v
	}

	useCase := app.NewLintUseCase(
		service.NewLintService(),
		service.NewFileReader(),
		service.NewLintFormatter(),
	)

	response, err := useCase.Execute(ctx, *req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("lint check failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
