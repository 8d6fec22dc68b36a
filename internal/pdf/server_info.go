package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdflens/mcp-pdf-inspector/internal/descriptions"
)

// LazyDirectoryScanner performs bounded directory scanning. Every call scans
// fresh; no results are retained between calls.
type LazyDirectoryScanner struct {
	maxDepth    int
	fileLimit   int
	timeLimit   time.Duration
	skipHidden  bool
	skipSymlink bool
}

// PDFServerInfo assembles the server capability report
type PDFServerInfo struct {
	scanner *LazyDirectoryScanner
	service *Service
}

// ScanResult represents the result of a directory scan
type ScanResult struct {
	Files        []FileInfo
	ScanTime     time.Duration
	FilesScanned int
	Truncated    bool
}

// NewLazyDirectoryScanner creates a new lazy directory scanner
func NewLazyDirectoryScanner(maxDepth, fileLimit int, timeLimit time.Duration) *LazyDirectoryScanner {
	return &LazyDirectoryScanner{
		maxDepth:    maxDepth,
		fileLimit:   fileLimit,
		timeLimit:   timeLimit,
		skipHidden:  true,
		skipSymlink: true,
	}
}

// ScanDirectory performs lazy directory scanning with context cancellation
func (s *LazyDirectoryScanner) ScanDirectory(ctx context.Context, root string) (*ScanResult, error) {
	startTime := time.Now()
	visited := make(map[string]bool)
	var files []FileInfo
	filesScanned := 0
	truncated := false

	err := s.scanRecursive(ctx, root, 0, visited, &files, &filesScanned, &truncated, startTime)

	result := &ScanResult{
		Files:        files,
		ScanTime:     time.Since(startTime),
		FilesScanned: filesScanned,
		Truncated:    truncated,
	}

	return result, err
}

// scanRecursive performs the actual recursive directory traversal
func (s *LazyDirectoryScanner) scanRecursive(ctx context.Context, path string, depth int,
	visited map[string]bool, files *[]FileInfo, filesScanned *int, truncated *bool, startTime time.Time,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if s.maxDepth > 0 && depth >= s.maxDepth {
		return nil
	}

	if s.fileLimit > 0 && len(*files) >= s.fileLimit {
		*truncated = true
		return nil
	}

	if s.timeLimit > 0 && time.Since(startTime) > s.timeLimit {
		*truncated = true
		return nil
	}

	// Resolve symlinks and check for cycles
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil
	}

	if visited[realPath] {
		return nil
	}
	visited[realPath] = true

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil // Skip directories we can't read
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entryPath := filepath.Join(path, entry.Name())
		*filesScanned++

		if s.skipHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		if s.skipSymlink && entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		if entry.IsDir() {
			if err := s.scanRecursive(ctx, entryPath, depth+1, visited, files, filesScanned, truncated, startTime); err != nil {
				return err
			}
		} else {
			if s.isPDFFile(entry.Name()) {
				info, err := entry.Info()
				if err != nil {
					continue
				}

				fileInfo := FileInfo{
					Name:         entry.Name(),
					Path:         entryPath,
					Size:         info.Size(),
					ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
				}

				*files = append(*files, fileInfo)

				if s.fileLimit > 0 && len(*files) >= s.fileLimit {
					*truncated = true
					return nil
				}
			}
		}
	}

	return nil
}

// isPDFFile checks if a file is a PDF based on extension
func (s *LazyDirectoryScanner) isPDFFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf"
}

// NewPDFServerInfo creates a new server info handler
func NewPDFServerInfo(service *Service) *PDFServerInfo {
	return &PDFServerInfo{
		scanner: NewLazyDirectoryScanner(5, 100, 3*time.Second), // max 5 levels, 100 files, 3 second limit
		service: service,
	}
}

// GetServerInfo scans the configured directory and reports server capabilities
func (p *PDFServerInfo) GetServerInfo(ctx context.Context, serverName, version, defaultDirectory string) (*PDFServerInfoResult, error) {
	validatedDir := defaultDirectory
	if err := p.service.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		validatedDir = p.service.pathValidator.GetConfiguredDirectory()
	}

	scanCtx := ctx
	if ctx == context.Background() {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	scanResult, err := p.scanner.ScanDirectory(scanCtx, validatedDir)
	if err != nil && ctx.Err() == nil {
		// Only swallow errors that are not due to caller cancellation
		scanResult = &ScanResult{Files: []FileInfo{}}
	}

	result := &PDFServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       p.service.maxFileSize,
		AvailableTools:    p.getAvailableTools(),
		DirectoryContents: scanResult.Files,
		UsageGuidance:     p.getUsageGuidance(),
	}

	return result, nil
}

// getAvailableTools returns the list of available tools
func (p *PDFServerInfo) getAvailableTools() []ToolInfo {
	pathParam := "path (required): Path to the PDF file, or an http(s) URL"
	pagesParam := "pages (optional): Page range such as '1-5', '3', '1,4,7-9' (all pages if empty)"

	return []ToolInfo{
		{
			Name:        "pdf_read_text",
			Description: descriptions.GetToolDescription("pdf_read_text"),
			Usage:       "Use this tool to extract text in reading order. Best first step for any text-based PDF.",
			Parameters:  pathParam + ", " + pagesParam,
		},
		{
			Name:        "pdf_search_text",
			Description: descriptions.GetToolDescription("pdf_search_text"),
			Usage:       "Use this tool to find where a phrase occurs before reading whole pages.",
			Parameters:  pathParam + ", query (required): Text to search for, " + pagesParam + ", case_sensitive (optional): Match case exactly",
		},
		{
			Name:        "pdf_extract_images",
			Description: descriptions.GetToolDescription("pdf_extract_images"),
			Usage: "Use this tool when pdf_read_text reports 'scanned_images' or 'mixed' content, " +
				"or when you need the document's image inventory.",
			Parameters: pathParam + ", " + pagesParam,
		},
		{
			Name:        "pdf_inspect_objects",
			Description: descriptions.GetToolDescription("pdf_inspect_objects"),
			Usage:       "Use this tool to see the raw object graph: counts by type, stream objects, catalog keys.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_inspect_tags",
			Description: descriptions.GetToolDescription("pdf_inspect_tags"),
			Usage:       "Use this tool to walk the logical structure tree of a tagged PDF.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_inspect_fonts",
			Description: descriptions.GetToolDescription("pdf_inspect_fonts"),
			Usage:       "Use this tool to inventory fonts: embedding, subsetting, encodings, pages used.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_inspect_annotations",
			Description: descriptions.GetToolDescription("pdf_inspect_annotations"),
			Usage:       "Use this tool to classify annotations: links, form widgets, markup such as highlights and notes.",
			Parameters:  pathParam + ", " + pagesParam,
		},
		{
			Name:        "pdf_inspect_signatures",
			Description: descriptions.GetToolDescription("pdf_inspect_signatures"),
			Usage:       "Use this tool to list signature fields and whether each is signed. Structure only, no cryptographic verification.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_metadata",
			Description: descriptions.GetToolDescription("pdf_metadata"),
			Usage:       "Use this tool to get document metadata: title, author, dates, version, encryption, tagging.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_validate_tags",
			Description: descriptions.GetToolDescription("pdf_validate_tags"),
			Usage:       "Use this tool to run accessibility-oriented checks on the tag structure.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_validate_metadata",
			Description: descriptions.GetToolDescription("pdf_validate_metadata"),
			Usage:       "Use this tool to run the fixed metadata completeness checks.",
			Parameters:  pathParam,
		},
		{
			Name:        "pdf_compare_files",
			Description: descriptions.GetToolDescription("pdf_compare_files"),
			Usage:       "Use this tool to compare two documents structurally, property by property, plus a font set comparison.",
			Parameters:  "path1 (required): First PDF file or URL, path2 (required): Second PDF file or URL",
		},
		{
			Name:        "pdf_search_directory",
			Description: descriptions.GetToolDescription("pdf_search_directory"),
			Usage:       "Use this tool to find PDF files by name. Supports fuzzy matching.",
			Parameters: "directory (optional): Directory to search (configured directory if empty), " +
				"query (optional): Filename query for fuzzy matching",
		},
		{
			Name:        "pdf_server_info",
			Description: descriptions.GetToolDescription("pdf_server_info"),
			Usage:       "Use this tool to get server capabilities and the configured directory's contents.",
			Parameters:  "No parameters required",
		},
	}
}

// getUsageGuidance returns comprehensive usage guidance
func (p *PDFServerInfo) getUsageGuidance() string {
	maxFileSizeMB := p.service.maxFileSize / (1024 * 1024)

	return fmt.Sprintf(`PDF Inspector Usage Guide:

1. START WITH DISCOVERY:
   - Use 'pdf_search_directory' to find available PDF files
   - Use 'pdf_server_info' to get server capabilities and current directory contents
   - Use 'pdf_metadata' for a quick profile of a specific file

2. READ CONTENT:
   - Use 'pdf_read_text' to extract text in reading order
   - Check the 'content_type' field in the response:
     * "text": PDF contains readable text
     * "scanned_images": PDF contains only scanned images (no extractable text)
     * "mixed": PDF contains both text and images
     * "no_content": PDF appears empty or unreadable
   - Use 'pdf_search_text' to locate a phrase before reading whole pages
   - Use 'pdf_extract_images' when content_type is "scanned_images" or "mixed"

3. INSPECT INTERNALS:
   - Use 'pdf_inspect_objects' for the raw object graph and catalog keys
   - Use 'pdf_inspect_tags' for the logical structure tree of tagged PDFs
   - Use 'pdf_inspect_fonts' for font embedding and encoding details
   - Use 'pdf_inspect_annotations' for links, form widgets, and markup
   - Use 'pdf_inspect_signatures' for signature field structure

4. VALIDATE AND COMPARE:
   - Use 'pdf_validate_tags' for accessibility-oriented tag checks
   - Use 'pdf_validate_metadata' for metadata completeness checks
   - Use 'pdf_compare_files' to diff two documents structurally

IMPORTANT NOTES:
- Page ranges accept forms like '1-5', '3', '1,4,7-9'; ranges clamp to the document, single pages must exist
- File paths may also be http(s) URLs; remote files are fetched per call and never cached
- The server can handle files up to %dMB
- Signature inspection reports structure only and performs no cryptographic verification
- Every call opens the document fresh; nothing is cached between calls
- Large directories may have truncated results in pdf_server_info; use pdf_search_directory for comprehensive searches`, maxFileSizeMB)
}
