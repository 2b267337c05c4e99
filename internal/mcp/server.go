package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/formlens/mcp-survey-reader/internal/config"
	"github.com/formlens/mcp-survey-reader/internal/pdf"
	"github.com/formlens/mcp-survey-reader/internal/synth"
)

// Server represents the MCP server instance
type Server struct {
	config        *config.Config
	surveyService *pdf.Service
	mcpServer     *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, surveyService *pdf.Service) (*Server, error) {
	if surveyService == nil {
		return nil, fmt.Errorf("surveyService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:        cfg,
		surveyService: surveyService,
		mcpServer:     mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register schema extraction tool for a single questionnaire
	extractFileTool := mcp.NewTool(
		"survey_extract_file",
		mcp.WithDescription("Extract the question schema from a PDF questionnaire"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF questionnaire"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	// Register directory-wide schema extraction tool
	extractDirectoryTool := mcp.NewTool(
		"survey_extract_directory",
		mcp.WithDescription("Extract question schemas from every PDF questionnaire in a directory"),
		mcp.WithString("directory",
			mcp.Description("Directory path to process (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(extractDirectoryTool, s.handleExtractDirectory)

	// Register questionnaire validation tool
	validateFileTool := mcp.NewTool(
		"survey_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF questionnaire"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF questionnaire"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	// Register questionnaire search tool
	searchDirectoryTool := mcp.NewTool(
		"survey_search_directory",
		mcp.WithDescription("Search for PDF questionnaires in a directory with optional name filtering"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive filename filter"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	// Register synthetic response generation tool
	generateResponsesTool := mcp.NewTool(
		"survey_generate_responses",
		mcp.WithDescription("Generate synthetic responses for a PDF questionnaire"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF questionnaire"),
		),
		mcp.WithNumber("responses",
			mcp.Description("Number of responses to generate (uses default if empty)"),
		),
		mcp.WithNumber("seed",
			mcp.Description("Random seed for reproducible output (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(generateResponsesTool, s.handleGenerateResponses)

	// Register server info tool
	serverInfoTool := mcp.NewTool(
		"survey_server_info",
		mcp.WithDescription("Get server information, available tools, and directory contents"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.surveyService.ExtractFile(pdf.ExtractFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.MarshalIndent(result.Schema, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted %d question(s) from %s (%d pages)\n\n%s",
		len(result.Schema.Questions), result.Path, result.Pages, payload)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.SurveyDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	result, err := s.surveyService.ExtractDirectory(pdf.ExtractDirectoryRequest{Directory: directory})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(result.Schemas) == 0 {
		return mcp.NewToolResultText(
			fmt.Sprintf("No PDF questionnaires found in directory: %s", result.Directory)), nil
	}

	payload, err := json.MarshalIndent(result.Schemas, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Extracted schemas from %d questionnaire(s) in %s (%d unreadable)\n\n%s",
		len(result.Schemas), result.Directory, result.Failed, payload)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.surveyService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF questionnaire %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.SurveyDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.surveyService.SearchDirectory(pdf.SearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF questionnaires found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleGenerateResponses(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	responses := s.config.Responses
	if n, ok := args["responses"].(float64); ok && n > 0 {
		responses = int(n)
	}

	seed := s.config.Seed
	if v, ok := args["seed"].(float64); ok {
		seed = int64(v)
	}

	extracted, err := s.surveyService.ExtractFile(pdf.ExtractFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := synth.NewSession(seed)
	generated := session.GenerateResponses(extracted.Schema, responses)

	payload, err := json.MarshalIndent(generated, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Generated %d synthetic response(s) for %s (seed %d)\n\n%s",
		len(generated), extracted.Schema.Title, seed, payload)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseText := fmt.Sprintf("%s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	responseText += fmt.Sprintf("Default Directory: %s\n", s.config.SurveyDirectory)
	responseText += fmt.Sprintf("Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	responseText += fmt.Sprintf("Responses Per Questionnaire: %d\n", s.config.Responses)
	responseText += fmt.Sprintf("Random Seed: %d\n\n", s.config.Seed)

	files, err := s.surveyService.FindPDFsInDirectory(s.config.SurveyDirectory)
	if err == nil && len(files) > 0 {
		responseText += fmt.Sprintf("Directory Contents (%d PDF questionnaire(s) found):\n", len(files))
		for i, file := range files {
			if i >= 10 { // Limit to first 10 files for readability
				responseText += fmt.Sprintf("   ... and %d more files\n", len(files)-10)
				break
			}
			responseText += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		responseText += "\n"
	} else {
		responseText += "Directory Contents: No PDF questionnaires found in default directory\n\n"
	}

	responseText += "Available Tools:\n"
	for _, tool := range toolSummaries {
		responseText += fmt.Sprintf("\n• %s\n", tool.name)
		responseText += fmt.Sprintf("  Description: %s\n", tool.description)
		responseText += fmt.Sprintf("  Parameters: %s\n", tool.parameters)
	}

	return mcp.NewToolResultText(responseText), nil
}

type toolSummary struct {
	name        string
	description string
	parameters  string
}

var toolSummaries = []toolSummary{
	{
		name:        "survey_extract_file",
		description: "Extract the question schema from a PDF questionnaire",
		parameters:  "path (required)",
	},
	{
		name:        "survey_extract_directory",
		description: "Extract question schemas from every PDF questionnaire in a directory",
		parameters:  "directory (optional)",
	},
	{
		name:        "survey_validate_file",
		description: "Validate if a file is a readable PDF questionnaire",
		parameters:  "path (required)",
	},
	{
		name:        "survey_search_directory",
		description: "Search for PDF questionnaires in a directory",
		parameters:  "directory (optional), query (optional)",
	},
	{
		name:        "survey_generate_responses",
		description: "Generate synthetic responses for a PDF questionnaire",
		parameters:  "path (required), responses (optional), seed (optional)",
	},
	{
		name:        "survey_server_info",
		description: "Get server information, available tools, and directory contents",
		parameters:  "none",
	},
}

// Formatting methods
func (s *Server) formatSearchDirectoryResult(result *pdf.SearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF questionnaire(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting survey MCP server in stdio mode")
		log.Printf("Survey directory: %s", s.config.SurveyDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs library handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
