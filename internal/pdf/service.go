package pdf

import (
	"fmt"
	"log"

	"github.com/formlens/mcp-survey-reader/internal/pdf/security"
	"github.com/formlens/mcp-survey-reader/internal/schema"
)

// Service handles questionnaire file operations by orchestrating the PDF
// components and the schema extractor
type Service struct {
	maxFileSize   int64
	reader        *Reader
	validator     *Validator
	search        *Search
	extractor     *schema.Extractor
	pathValidator *security.PathValidator
}

// NewService creates a new questionnaire service with all components
func NewService(maxFileSize int64, configuredDirectory string) (*Service, error) {
	return NewServiceWithExtractConfig(maxFileSize, configuredDirectory, schema.DefaultExtractConfig())
}

// NewServiceWithExtractConfig creates a service with a custom extraction
// configuration
func NewServiceWithExtractConfig(
	maxFileSize int64,
	configuredDirectory string,
	extractCfg schema.ExtractConfig,
) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		reader:        NewReader(maxFileSize),
		validator:     NewValidator(maxFileSize),
		search:        NewSearch(maxFileSize),
		extractor:     schema.NewExtractorWithConfig(extractCfg),
		pathValidator: pathValidator,
	}, nil
}

// ReadFile reads the text content of a PDF questionnaire
func (s *Service) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.reader.ReadFile(req)
}

// ValidateFile performs validation on a PDF questionnaire
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// SearchDirectory searches for PDF questionnaires in a directory
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	// If no directory specified, use configured directory
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// ExtractFile extracts the question schema from a single PDF questionnaire
func (s *Service) ExtractFile(req ExtractFileRequest) (*ExtractFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	read, err := s.reader.ReadFile(ReadFileRequest{Path: req.Path})
	if err != nil {
		return nil, err
	}

	title := schema.TitleFromFilename(req.Path)
	doc := s.extractor.Extract(read.Content, title, req.Path)

	return &ExtractFileResult{
		Schema: doc,
		Path:   req.Path,
		Pages:  read.Pages,
	}, nil
}

// ExtractDirectory extracts question schemas from every PDF questionnaire in
// a directory. A file whose text cannot be extracted still yields a schema,
// reduced to the default questions, so one unreadable scan never empties the
// batch.
func (s *Service) ExtractDirectory(req ExtractDirectoryRequest) (*ExtractDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	files, err := s.search.FindPDFsInDirectory(req.Directory)
	if err != nil {
		return nil, err
	}

	result := &ExtractDirectoryResult{
		Schemas:   make([]*schema.DocumentSchema, 0, len(files)),
		Directory: req.Directory,
	}

	for _, file := range files {
		title := schema.TitleFromFilename(file.Path)

		read, err := s.reader.ReadFile(ReadFileRequest{Path: file.Path})
		if err != nil {
			log.Printf("Failed to read %s: %v", file.Path, err)
			result.Failed++
			result.Schemas = append(result.Schemas, s.extractor.Extract("", title, file.Path))
			continue
		}

		result.Schemas = append(result.Schemas, s.extractor.Extract(read.Content, title, file.Path))
		result.Processed++
	}

	return result, nil
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// FindPDFsInDirectory finds all PDF questionnaires in a directory
func (s *Service) FindPDFsInDirectory(directory string) ([]FileInfo, error) {
	return s.search.FindPDFsInDirectory(directory)
}
