package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PageBreakMarker separates per-page text in extracted content. The schema
// extractor treats it as an ordinary low-value line and skips it.
const PageBreakMarker = "--- Page Break ---"

// Reader extracts plain text from PDF questionnaire files
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadFile extracts the text content of a PDF file, one page after another,
// with pages separated by PageBreakMarker lines.
func (r *Reader) ReadFile(req ReadFileRequest) (*ReadFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	content, err := r.extractTextContent(pdfReader)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	return &ReadFileResult{
		Content: content,
		Path:    req.Path,
		Pages:   pdfReader.NumPage(),
		Size:    fileInfo.Size(),
	}, nil
}

// validatePDFFile performs basic validation on a PDF file
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// extractTextContent extracts text content from a PDF reader
func (r *Reader) extractTextContent(pdfReader *pdf.Reader) (string, error) {
	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if totalLength+len(content) > r.maxTextSize {
			remaining := r.maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if pageNum < pdfReader.NumPage() {
			builder.WriteString("\n\n" + PageBreakMarker + "\n\n")
		}
	}

	text := builder.String()
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}
