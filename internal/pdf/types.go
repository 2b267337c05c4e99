package pdf

import "github.com/formlens/mcp-survey-reader/internal/schema"

// FileInfo represents information about a PDF questionnaire file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ReadFileRequest represents a request to extract text from a PDF file
type ReadFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest represents a request to find PDF files in a directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ExtractFileRequest represents a request to extract a question schema
// from a single PDF file
type ExtractFileRequest struct {
	Path string `json:"path"`
}

// ExtractDirectoryRequest represents a request to extract question schemas
// from every PDF file in a directory
type ExtractDirectoryRequest struct {
	Directory string `json:"directory"`
}

// Response Types

// ReadFileResult represents the result of a PDF text extraction
type ReadFileResult struct {
	Content string `json:"content"`
	Path    string `json:"path"`
	Pages   int    `json:"pages"`
	Size    int64  `json:"size"`
}

// ValidateFileResult represents the result of a PDF validation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// ExtractFileResult represents the result of a single-file schema extraction
type ExtractFileResult struct {
	Schema *schema.DocumentSchema `json:"schema"`
	Path   string                 `json:"path"`
	Pages  int                    `json:"pages"`
}

// ExtractDirectoryResult represents the result of a directory-wide schema
// extraction. Failed counts files whose text could not be extracted; those
// still contribute a default-question schema so downstream consumers always
// see one schema per questionnaire.
type ExtractDirectoryResult struct {
	Schemas   []*schema.DocumentSchema `json:"schemas"`
	Directory string                   `json:"directory"`
	Processed int                      `json:"processed"`
	Failed    int                      `json:"failed"`
}

// SearchDirectoryResult represents the result of a directory scan
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}
