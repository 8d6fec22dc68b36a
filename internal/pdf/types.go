package pdf

// FileInfo represents information about a PDF file on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// TextRun is one positioned glyph run on a page. X and Y are the translation
// components of the run's text transform, i.e. its baseline position.
type TextRun struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// PageText is the reconstructed reading-order text of one page
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// TextMatch locates one search hit inside a page's reconstructed text
type TextMatch struct {
	Page     int    `json:"page"`
	Line     int    `json:"line"`
	LineText string `json:"line_text"`
}

// ImageInfo represents information about an image in a PDF
type ImageInfo struct {
	PageNumber int    `json:"page_number"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format"`
	Size       int64  `json:"size"`
}

// TagNode is one element of the logical structure tree. ContentCount counts
// directly attached marked-content items, not nested elements.
type TagNode struct {
	Role         string     `json:"role"`
	ContentCount int        `json:"content_count"`
	Children     []*TagNode `json:"children,omitempty"`
}

// TagsAnalysis is the result of walking a document's tag tree
type TagsAnalysis struct {
	IsTagged      bool           `json:"is_tagged"`
	RootTag       *TagNode       `json:"root_tag,omitempty"`
	MaxDepth      int            `json:"max_depth"`
	TotalElements int            `json:"total_elements"`
	RoleCounts    map[string]int `json:"role_counts"`
}

// FontRecord describes one font, merged by base-font name across the
// document. PagesUsed is sorted ascending and deduplicated.
type FontRecord struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Encoding   string `json:"encoding,omitempty"`
	IsEmbedded bool   `json:"is_embedded"`
	IsSubset   bool   `json:"is_subset"`
	PagesUsed  []int  `json:"pages_used"`
}

// AnnotationRecord describes one annotation object found on a page
type AnnotationRecord struct {
	Subtype          string    `json:"subtype"`
	Page             int       `json:"page"`
	Rect             []float64 `json:"rect,omitempty"`
	Contents         string    `json:"contents,omitempty"`
	Author           string    `json:"author,omitempty"`
	ModificationDate string    `json:"modification_date,omitempty"`
	HasAppearance    bool      `json:"has_appearance"`
}

// SignatureField describes one interactive signature form field. IsSigned
// reflects field structure only, never cryptographic validity.
type SignatureField struct {
	FieldName   string `json:"field_name"`
	IsSigned    bool   `json:"is_signed"`
	SignerName  string `json:"signer_name,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Location    string `json:"location,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	SigningTime string `json:"signing_time,omitempty"`
	Filter      string `json:"filter,omitempty"`
	SubFilter   string `json:"sub_filter,omitempty"`
}

// ValidationIssue is one check outcome. Codes are stable identifiers and
// appear at most once per run.
type ValidationIssue struct {
	Severity string `json:"severity"` // "error", "warning" or "info"
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
}

// StructuralDiff compares one property across two documents. Status is
// "match" exactly when the two stringified values are equal.
type StructuralDiff struct {
	Property   string `json:"property"`
	File1Value string `json:"file1_value"`
	File2Value string `json:"file2_value"`
	Status     string `json:"status"` // "match" or "differ"
}

// FontComparison is the set difference of two documents' font names
type FontComparison struct {
	OnlyInFile1 []string `json:"only_in_file1"`
	OnlyInFile2 []string `json:"only_in_file2"`
	InBoth      []string `json:"in_both"`
}

// Request Types

// PDFReadTextRequest represents a request for reading-order text from a page range
type PDFReadTextRequest struct {
	Path  string `json:"path"`
	Pages string `json:"pages,omitempty"`
}

// PDFSearchTextRequest represents a request for text matches within a page range
type PDFSearchTextRequest struct {
	Path          string `json:"path"`
	Query         string `json:"query"`
	Pages         string `json:"pages,omitempty"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
}

// PDFExtractImagesRequest represents a request for image assets from a page range
type PDFExtractImagesRequest struct {
	Path  string `json:"path"`
	Pages string `json:"pages,omitempty"`
}

// PDFInspectObjectsRequest represents a request for object-graph statistics
type PDFInspectObjectsRequest struct {
	Path string `json:"path"`
}

// PDFInspectTagsRequest represents a request for a tag-tree analysis
type PDFInspectTagsRequest struct {
	Path string `json:"path"`
}

// PDFInspectFontsRequest represents a request for the document font inventory
type PDFInspectFontsRequest struct {
	Path string `json:"path"`
}

// PDFInspectAnnotationsRequest represents a request for annotations from a page range
type PDFInspectAnnotationsRequest struct {
	Path  string `json:"path"`
	Pages string `json:"pages,omitempty"`
}

// PDFInspectSignaturesRequest represents a request for signature field structure
type PDFInspectSignaturesRequest struct {
	Path string `json:"path"`
}

// PDFMetadataRequest represents a request for document metadata
type PDFMetadataRequest struct {
	Path string `json:"path"`
}

// PDFValidateTagsRequest represents a request for tag-structure checks
type PDFValidateTagsRequest struct {
	Path string `json:"path"`
}

// PDFValidateMetadataRequest represents a request for metadata checks
type PDFValidateMetadataRequest struct {
	Path string `json:"path"`
}

// PDFCompareRequest represents a request to compare two documents structurally
type PDFCompareRequest struct {
	Path1 string `json:"path1"`
	Path2 string `json:"path2"`
}

// PDFSearchDirectoryRequest represents a request to search for PDF files in a directory
type PDFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// PDFReadTextResult carries reading-order text per page plus the content
// classification used to steer callers toward image extraction.
type PDFReadTextResult struct {
	Path        string     `json:"path"`
	TotalPages  int        `json:"total_pages"`
	PagesRead   []int      `json:"pages_read"`
	PageTexts   []PageText `json:"page_texts"`
	ContentType string     `json:"content_type"` // "text", "scanned_images", "mixed", "no_content"
	HasImages   bool       `json:"has_images"`
	ImageCount  int        `json:"image_count"`
	Truncated   bool       `json:"truncated"`
}

// PDFSearchTextResult lists matches in ascending page, then line, order
type PDFSearchTextResult struct {
	Path         string      `json:"path"`
	Query        string      `json:"query"`
	PagesScanned []int       `json:"pages_scanned"`
	TotalMatches int         `json:"total_matches"`
	Matches      []TextMatch `json:"matches"`
}

// PDFExtractImagesResult distinguishes images detected in page resources
// from those whose parameters could actually be decoded.
type PDFExtractImagesResult struct {
	Path            string      `json:"path"`
	ImagesDetected  int         `json:"images_detected"`
	ImagesExtracted int         `json:"images_extracted"`
	Images          []ImageInfo `json:"images"`
}

// PDFInspectObjectsResult summarizes the raw object graph
type PDFInspectObjectsResult struct {
	Path              string         `json:"path"`
	Version           string         `json:"version"`
	Encrypted         bool           `json:"encrypted"`
	TotalObjects      int            `json:"total_objects"`
	FreeObjects       int            `json:"free_objects"`
	CompressedObjects int            `json:"compressed_objects"`
	StreamObjects     int            `json:"stream_objects"`
	ObjectsByType     map[string]int `json:"objects_by_type"`
	CatalogKeys       []string       `json:"catalog_keys"`
}

// PDFInspectTagsResult is the tag-tree analysis for one document
type PDFInspectTagsResult struct {
	Path     string       `json:"path"`
	Analysis TagsAnalysis `json:"analysis"`
}

// PDFInspectFontsResult inventories fonts across the whole document
type PDFInspectFontsResult struct {
	Path         string       `json:"path"`
	Fonts        []FontRecord `json:"fonts"`
	TotalFonts   int          `json:"total_fonts"`
	PagesScanned int          `json:"pages_scanned"`
}

// PDFInspectAnnotationsResult classifies annotations across a page range
type PDFInspectAnnotationsResult struct {
	Path             string             `json:"path"`
	TotalAnnotations int                `json:"total_annotations"`
	Annotations      []AnnotationRecord `json:"annotations"`
	BySubtype        map[string]int     `json:"by_subtype"`
	ByPage           map[int]int        `json:"by_page"`
	HasLinks         bool               `json:"has_links"`
	HasForms         bool               `json:"has_forms"`
	HasMarkup        bool               `json:"has_markup"`
}

// PDFInspectSignaturesResult reports signature field structure
type PDFInspectSignaturesResult struct {
	Path          string           `json:"path"`
	TotalFields   int              `json:"total_fields"`
	SignedCount   int              `json:"signed_count"`
	UnsignedCount int              `json:"unsigned_count"`
	Fields        []SignatureField `json:"fields"`
	Note          string           `json:"note"`
}

// PDFMetadataResult carries the document information dictionary plus
// file-level and catalog-derived properties.
type PDFMetadataResult struct {
	Path             string `json:"path"`
	FileSize         int64  `json:"file_size"`
	PageCount        int    `json:"page_count"`
	Version          string `json:"version,omitempty"`
	Encrypted        bool   `json:"encrypted"`
	Tagged           bool   `json:"tagged"`
	Title            string `json:"title,omitempty"`
	Author           string `json:"author,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Keywords         string `json:"keywords,omitempty"`
	Creator          string `json:"creator,omitempty"`
	Producer         string `json:"producer,omitempty"`
	CreationDate     string `json:"creation_date,omitempty"`
	ModificationDate string `json:"modification_date,omitempty"`
	HasSignatures    bool   `json:"has_signatures"`
}

// PDFValidationResult is the outcome of one fixed check sequence
type PDFValidationResult struct {
	Path        string            `json:"path"`
	TotalChecks int               `json:"total_checks"`
	Passed      int               `json:"passed"`
	Failed      int               `json:"failed"`
	Warnings    int               `json:"warnings"`
	Issues      []ValidationIssue `json:"issues"`
	Summary     string            `json:"summary"`
}

// PDFCompareResult is the structural comparison of two documents
type PDFCompareResult struct {
	File1          string           `json:"file1"`
	File2          string           `json:"file2"`
	Diffs          []StructuralDiff `json:"diffs"`
	FontComparison FontComparison   `json:"font_comparison"`
	Summary        string           `json:"summary"`
}

// PDFSearchDirectoryResult represents the result of a PDF directory search
type PDFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// PDFServerInfoRequest represents a request to get server information and capabilities
type PDFServerInfoRequest struct {
	// No parameters needed for server info
}

// PDFServerInfoResult represents server information and usage guidance
type PDFServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
