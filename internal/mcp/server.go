package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdflens/mcp-pdf-inspector/internal/config"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	pathArg := func() mcp.ToolOption {
		return mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file, or an http(s) URL"),
		)
	}
	pagesArg := func() mcp.ToolOption {
		return mcp.WithString("pages",
			mcp.Description("Page range such as '1-5', '3', '1,4,7-9' (all pages if empty)"),
		)
	}

	readTextTool := mcp.NewTool(
		"pdf_read_text",
		mcp.WithDescription("Extract text from a PDF in reading order, page by page"),
		pathArg(),
		pagesArg(),
	)
	s.mcpServer.AddTool(readTextTool, s.handlePDFReadText)

	searchTextTool := mcp.NewTool(
		"pdf_search_text",
		mcp.WithDescription("Search for a text query within a PDF and report matching lines"),
		pathArg(),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to search for"),
		),
		pagesArg(),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Match case exactly (default false)"),
		),
	)
	s.mcpServer.AddTool(searchTextTool, s.handlePDFSearchText)

	extractImagesTool := mcp.NewTool(
		"pdf_extract_images",
		mcp.WithDescription("Detect and extract image assets from a PDF"),
		pathArg(),
		pagesArg(),
	)
	s.mcpServer.AddTool(extractImagesTool, s.handlePDFExtractImages)

	inspectObjectsTool := mcp.NewTool(
		"pdf_inspect_objects",
		mcp.WithDescription("Summarize the PDF object graph: counts by type, streams, catalog keys"),
		pathArg(),
	)
	s.mcpServer.AddTool(inspectObjectsTool, s.handlePDFInspectObjects)

	inspectTagsTool := mcp.NewTool(
		"pdf_inspect_tags",
		mcp.WithDescription("Walk the logical structure tree (tags) of a tagged PDF"),
		pathArg(),
	)
	s.mcpServer.AddTool(inspectTagsTool, s.handlePDFInspectTags)

	inspectFontsTool := mcp.NewTool(
		"pdf_inspect_fonts",
		mcp.WithDescription("Inventory the fonts used in a PDF: embedding, subsetting, encodings"),
		pathArg(),
	)
	s.mcpServer.AddTool(inspectFontsTool, s.handlePDFInspectFonts)

	inspectAnnotationsTool := mcp.NewTool(
		"pdf_inspect_annotations",
		mcp.WithDescription("List and classify annotations: links, form widgets, markup"),
		pathArg(),
		pagesArg(),
	)
	s.mcpServer.AddTool(inspectAnnotationsTool, s.handlePDFInspectAnnotations)

	inspectSignaturesTool := mcp.NewTool(
		"pdf_inspect_signatures",
		mcp.WithDescription("Report signature field structure without cryptographic verification"),
		pathArg(),
	)
	s.mcpServer.AddTool(inspectSignaturesTool, s.handlePDFInspectSignatures)

	metadataTool := mcp.NewTool(
		"pdf_metadata",
		mcp.WithDescription("Get document metadata: title, author, dates, version, encryption, tagging"),
		pathArg(),
	)
	s.mcpServer.AddTool(metadataTool, s.handlePDFMetadata)

	validateTagsTool := mcp.NewTool(
		"pdf_validate_tags",
		mcp.WithDescription("Run accessibility-oriented checks on the PDF tag structure"),
		pathArg(),
	)
	s.mcpServer.AddTool(validateTagsTool, s.handlePDFValidateTags)

	validateMetadataTool := mcp.NewTool(
		"pdf_validate_metadata",
		mcp.WithDescription("Run the fixed metadata completeness checks on a PDF"),
		pathArg(),
	)
	s.mcpServer.AddTool(validateMetadataTool, s.handlePDFValidateMetadata)

	compareFilesTool := mcp.NewTool(
		"pdf_compare_files",
		mcp.WithDescription("Compare two PDFs structurally, property by property, plus font sets"),
		mcp.WithString("path1",
			mcp.Required(),
			mcp.Description("First PDF file path or URL"),
		),
		mcp.WithString("path2",
			mcp.Required(),
			mcp.Description("Second PDF file path or URL"),
		),
	)
	s.mcpServer.AddTool(compareFilesTool, s.handlePDFCompareFiles)

	searchDirectoryTool := mcp.NewTool(
		"pdf_search_directory",
		mcp.WithDescription("Search for PDF files in a directory with optional fuzzy search"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handlePDFSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"pdf_server_info",
		mcp.WithDescription("Get server information, available tools, directory contents, and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handlePDFServerInfo)
}

// optionalString reads a non-required string argument
func optionalString(request mcp.CallToolRequest, name string) string {
	if v, ok := request.GetArguments()[name].(string); ok {
		return v
	}
	return ""
}

// optionalBool reads a non-required boolean argument
func optionalBool(request mcp.CallToolRequest, name string) bool {
	if v, ok := request.GetArguments()[name].(bool); ok {
		return v
	}
	return false
}

// Handler functions
// textResult applies the configured output budget to formatted tool text.
// Truncation is announced in the output itself so the caller can tell the
// response is partial.
func (s *Server) textResult(text string) *mcp.CallToolResult {
	limit := s.config.MaxOutputSize
	if limit > 0 && len(text) > limit {
		text = text[:limit] + fmt.Sprintf("\n\n[Output truncated at %d bytes]\n", limit)
	}
	return mcp.NewToolResultText(text)
}

func (s *Server) handlePDFReadText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFReadTextRequest{Path: path, Pages: optionalString(request, "pages")}
	result, err := s.pdfService.PDFReadText(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFReadTextResult(result)), nil
}

func (s *Server) handlePDFSearchText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFSearchTextRequest{
		Path:          path,
		Query:         query,
		Pages:         optionalString(request, "pages"),
		CaseSensitive: optionalBool(request, "case_sensitive"),
	}
	result, err := s.pdfService.PDFSearchText(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFSearchTextResult(result)), nil
}

func (s *Server) handlePDFExtractImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFExtractImagesRequest{Path: path, Pages: optionalString(request, "pages")}
	result, err := s.pdfService.PDFExtractImages(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFExtractImagesResult(result)), nil
}

func (s *Server) handlePDFInspectObjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFInspectObjects(ctx, pdf.PDFInspectObjectsRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFInspectObjectsResult(result)), nil
}

func (s *Server) handlePDFInspectTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFInspectTags(ctx, pdf.PDFInspectTagsRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFInspectTagsResult(result)), nil
}

func (s *Server) handlePDFInspectFonts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFInspectFonts(ctx, pdf.PDFInspectFontsRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFInspectFontsResult(result)), nil
}

func (s *Server) handlePDFInspectAnnotations(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.PDFInspectAnnotationsRequest{Path: path, Pages: optionalString(request, "pages")}
	result, err := s.pdfService.PDFInspectAnnotations(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFInspectAnnotationsResult(result)), nil
}

func (s *Server) handlePDFInspectSignatures(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFInspectSignatures(ctx, pdf.PDFInspectSignaturesRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFInspectSignaturesResult(result)), nil
}

func (s *Server) handlePDFMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFMetadata(ctx, pdf.PDFMetadataRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFMetadataResult(result)), nil
}

func (s *Server) handlePDFValidateTags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFValidateTags(ctx, pdf.PDFValidateTagsRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFValidationResult("Tag Structure Validation", result)), nil
}

func (s *Server) handlePDFValidateMetadata(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFValidateMetadata(ctx, pdf.PDFValidateMetadataRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFValidationResult("Metadata Validation", result)), nil
}

func (s *Server) handlePDFCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path1, err := request.RequireString("path1")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path2, err := request.RequireString("path2")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFCompareFiles(ctx, pdf.PDFCompareRequest{Path1: path1, Path2: path2})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFCompareResult(result)), nil
}

func (s *Server) handlePDFSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	directory := s.config.PDFDirectory // default
	if dir := optionalString(request, "directory"); dir != "" {
		directory = dir
	}

	req := pdf.PDFSearchDirectoryRequest{
		Directory: directory,
		Query:     optionalString(request, "query"),
	}

	result, err := s.pdfService.PDFSearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatPDFSearchDirectoryResult(result)
	}

	return s.textResult(responseText), nil
}

func (s *Server) handlePDFServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := pdf.PDFServerInfoRequest{}
	result, err := s.pdfService.PDFServerInfo(ctx, req, s.config.ServerName, s.config.Version, s.config.PDFDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.textResult(s.formatPDFServerInfoResult(result)), nil
}

// Formatting methods
func (s *Server) formatPDFReadTextResult(result *pdf.PDFReadTextResult) string {
	text := fmt.Sprintf("Successfully read PDF: %s\n", result.Path)
	text += fmt.Sprintf("Total Pages: %d\n", result.TotalPages)
	text += fmt.Sprintf("Pages Read: %d\n", len(result.PagesRead))
	text += fmt.Sprintf("Content Type: %s\n", result.ContentType)
	text += fmt.Sprintf("Has Images: %t\n", result.HasImages)
	if result.HasImages {
		text += fmt.Sprintf("Image Count: %d\n", result.ImageCount)
	}

	switch result.ContentType {
	case "scanned_images":
		text += "\n🔍 RECOMMENDATION: This PDF appears to contain scanned images with little or no " +
			"extractable text. Consider using 'pdf_extract_images' to extract the images.\n"
	case "mixed":
		text += "\n💡 INFO: This PDF contains both text and images. You may want to use " +
			"'pdf_extract_images' to extract the images as well.\n"
	case "no_content":
		text += "\n⚠️  WARNING: This PDF appears to have no readable content or images.\n"
	}

	text += "\nContent:\n"
	for _, page := range result.PageTexts {
		text += fmt.Sprintf("\n--- Page %d ---\n", page.Page)
		text += page.Text
		text += "\n"
	}

	if result.Truncated {
		text += "\n[Page text truncated at the extraction size limit]\n"
	}

	return text
}

func (s *Server) formatPDFSearchTextResult(result *pdf.PDFSearchTextResult) string {
	text := fmt.Sprintf("Search results for %q in %s\n", result.Query, result.Path)
	text += fmt.Sprintf("Pages scanned: %s\n", formatPageList(result.PagesScanned))
	text += fmt.Sprintf("Total matches: %d\n", result.TotalMatches)

	if result.TotalMatches > 0 {
		text += "\nMatches:\n"
		for i, match := range result.Matches {
			text += fmt.Sprintf("%d. Page %d, line %d: %s\n", i+1, match.Page, match.Line, match.LineText)
		}
	}

	return text
}

func (s *Server) formatPDFExtractImagesResult(result *pdf.PDFExtractImagesResult) string {
	text := fmt.Sprintf("PDF Images for: %s\n", result.Path)
	text += fmt.Sprintf("Images detected: %d\n", result.ImagesDetected)
	text += fmt.Sprintf("Images extracted: %d\n", result.ImagesExtracted)

	if result.ImagesExtracted > 0 {
		text += "\nImages:\n"
		for i, img := range result.Images {
			text += fmt.Sprintf("%d. Page %d: %dx%d pixels, Format: %s",
				i+1, img.PageNumber, img.Width, img.Height, img.Format)
			if img.Size > 0 {
				text += fmt.Sprintf(", Size: %d bytes", img.Size)
			}
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatPDFInspectObjectsResult(result *pdf.PDFInspectObjectsResult) string {
	text := "PDF Object Summary\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("PDF Version: %s\n", result.Version)
	text += fmt.Sprintf("Encrypted: %t\n", result.Encrypted)
	text += fmt.Sprintf("Total objects: %d\n", result.TotalObjects)
	text += fmt.Sprintf("Free objects: %d\n", result.FreeObjects)
	text += fmt.Sprintf("Compressed objects: %d\n", result.CompressedObjects)
	text += fmt.Sprintf("Stream objects: %d\n", result.StreamObjects)

	if len(result.ObjectsByType) > 0 {
		text += "\nObjects by type:\n"
		types := make([]string, 0, len(result.ObjectsByType))
		for t := range result.ObjectsByType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			text += fmt.Sprintf("  %s: %d\n", t, result.ObjectsByType[t])
		}
	}

	if len(result.CatalogKeys) > 0 {
		text += fmt.Sprintf("\nCatalog keys: %s\n", strings.Join(result.CatalogKeys, ", "))
	}

	return text
}

func (s *Server) formatPDFInspectTagsResult(result *pdf.PDFInspectTagsResult) string {
	a := result.Analysis

	text := "PDF Tag Structure\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Tagged: %t\n", a.IsTagged)

	if !a.IsTagged || a.RootTag == nil {
		text += "\nNo structure tree is present in this document.\n"
		return text
	}

	text += fmt.Sprintf("Total elements: %d\n", a.TotalElements)
	text += fmt.Sprintf("Max depth: %d\n", a.MaxDepth)

	if len(a.RoleCounts) > 0 {
		text += "\nRole counts:\n"
		roles := make([]string, 0, len(a.RoleCounts))
		for role := range a.RoleCounts {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			text += fmt.Sprintf("  %s: %d\n", role, a.RoleCounts[role])
		}
	}

	text += "\nTree:\n"
	text += s.renderTagTree(a.RootTag, 0)

	return text
}

// renderTagTree renders the structure tree with two-space indentation
func (s *Server) renderTagTree(node *pdf.TagNode, depth int) string {
	line := strings.Repeat("  ", depth) + node.Role
	if node.ContentCount > 0 {
		line += fmt.Sprintf(" (content items: %d)", node.ContentCount)
	}
	line += "\n"

	for _, child := range node.Children {
		line += s.renderTagTree(child, depth+1)
	}

	return line
}

func (s *Server) formatPDFInspectFontsResult(result *pdf.PDFInspectFontsResult) string {
	text := "PDF Font Inventory\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Pages scanned: %d\n", result.PagesScanned)
	text += fmt.Sprintf("Total fonts: %d\n", result.TotalFonts)

	if result.TotalFonts > 0 {
		text += "\nFonts:\n"
		for i, font := range result.Fonts {
			text += fmt.Sprintf("%d. %s\n", i+1, font.Name)
			text += fmt.Sprintf("   Type: %s\n", font.Type)
			if font.Encoding != "" {
				text += fmt.Sprintf("   Encoding: %s\n", font.Encoding)
			}
			text += fmt.Sprintf("   Embedded: %t\n", font.IsEmbedded)
			text += fmt.Sprintf("   Subset: %t\n", font.IsSubset)
			text += fmt.Sprintf("   Pages used: %s\n", formatPageList(font.PagesUsed))
		}
	}

	return text
}

func (s *Server) formatPDFInspectAnnotationsResult(result *pdf.PDFInspectAnnotationsResult) string {
	text := "PDF Annotations\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Total annotations: %d\n", result.TotalAnnotations)
	text += fmt.Sprintf("Has links: %t\n", result.HasLinks)
	text += fmt.Sprintf("Has forms: %t\n", result.HasForms)
	text += fmt.Sprintf("Has markup: %t\n", result.HasMarkup)

	if len(result.BySubtype) > 0 {
		text += "\nBy subtype:\n"
		subtypes := make([]string, 0, len(result.BySubtype))
		for st := range result.BySubtype {
			subtypes = append(subtypes, st)
		}
		sort.Strings(subtypes)
		for _, st := range subtypes {
			text += fmt.Sprintf("  %s: %d\n", st, result.BySubtype[st])
		}
	}

	if result.TotalAnnotations > 0 {
		text += "\nAnnotations:\n"
		for i, annot := range result.Annotations {
			text += fmt.Sprintf("%d. %s on page %d", i+1, annot.Subtype, annot.Page)
			if annot.Author != "" {
				text += fmt.Sprintf(" by %s", annot.Author)
			}
			text += "\n"
			if annot.Contents != "" {
				text += fmt.Sprintf("   Contents: %s\n", annot.Contents)
			}
			if annot.ModificationDate != "" {
				text += fmt.Sprintf("   Modified: %s\n", annot.ModificationDate)
			}
		}
	}

	return text
}

func (s *Server) formatPDFInspectSignaturesResult(result *pdf.PDFInspectSignaturesResult) string {
	text := "PDF Signature Fields\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Total signature fields: %d\n", result.TotalFields)
	text += fmt.Sprintf("Signed: %d\n", result.SignedCount)
	text += fmt.Sprintf("Unsigned: %d\n", result.UnsignedCount)

	for i, field := range result.Fields {
		text += fmt.Sprintf("\n%d. Field: %s\n", i+1, field.FieldName)
		text += fmt.Sprintf("   Signed: %t\n", field.IsSigned)
		if field.SignerName != "" {
			text += fmt.Sprintf("   Signer: %s\n", field.SignerName)
		}
		if field.Reason != "" {
			text += fmt.Sprintf("   Reason: %s\n", field.Reason)
		}
		if field.Location != "" {
			text += fmt.Sprintf("   Location: %s\n", field.Location)
		}
		if field.SigningTime != "" {
			text += fmt.Sprintf("   Signing time: %s\n", field.SigningTime)
		}
		if field.Filter != "" {
			text += fmt.Sprintf("   Filter: %s", field.Filter)
			if field.SubFilter != "" {
				text += fmt.Sprintf(" (%s)", field.SubFilter)
			}
			text += "\n"
		}
	}

	text += "\n" + result.Note + "\n"

	return text
}

func (s *Server) formatPDFMetadataResult(result *pdf.PDFMetadataResult) string {
	text := "PDF Metadata\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.FileSize)
	text += fmt.Sprintf("Pages: %d\n", result.PageCount)
	text += fmt.Sprintf("PDF Version: %s\n", result.Version)
	text += fmt.Sprintf("Encrypted: %t\n", result.Encrypted)
	text += fmt.Sprintf("Tagged: %t\n", result.Tagged)
	text += fmt.Sprintf("Has signatures: %t\n", result.HasSignatures)

	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Author != "" {
		text += fmt.Sprintf("Author: %s\n", result.Author)
	}
	if result.Subject != "" {
		text += fmt.Sprintf("Subject: %s\n", result.Subject)
	}
	if result.Keywords != "" {
		text += fmt.Sprintf("Keywords: %s\n", result.Keywords)
	}
	if result.Creator != "" {
		text += fmt.Sprintf("Creator: %s\n", result.Creator)
	}
	if result.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", result.Producer)
	}
	if result.CreationDate != "" {
		text += fmt.Sprintf("Created: %s\n", result.CreationDate)
	}
	if result.ModificationDate != "" {
		text += fmt.Sprintf("Modified: %s\n", result.ModificationDate)
	}

	return text
}

func (s *Server) formatPDFValidationResult(title string, result *pdf.PDFValidationResult) string {
	text := title + "\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Checks: %d (passed: %d, warnings: %d, failed: %d)\n",
		result.TotalChecks, result.Passed, result.Warnings, result.Failed)
	text += fmt.Sprintf("Summary: %s\n", result.Summary)

	if len(result.Issues) > 0 {
		text += "\nResults:\n"
		for _, issue := range result.Issues {
			text += fmt.Sprintf("[%s] %s: %s\n", strings.ToUpper(issue.Severity), issue.Code, issue.Message)
			if issue.Details != "" {
				text += fmt.Sprintf("  %s\n", issue.Details)
			}
		}
	}

	return text
}

func (s *Server) formatPDFCompareResult(result *pdf.PDFCompareResult) string {
	text := fmt.Sprintf("Structural comparison: %s vs %s\n", result.File1, result.File2)
	text += fmt.Sprintf("Summary: %s\n", result.Summary)

	text += "\nProperties:\n"
	for _, diff := range result.Diffs {
		marker := "="
		if diff.Status == "differ" {
			marker = "!"
		}
		text += fmt.Sprintf("%s %s: %s | %s\n", marker, diff.Property, diff.File1Value, diff.File2Value)
	}

	fc := result.FontComparison
	text += "\nFonts:\n"
	text += fmt.Sprintf("  In both: %s\n", formatNameList(fc.InBoth))
	text += fmt.Sprintf("  Only in %s: %s\n", result.File1, formatNameList(fc.OnlyInFile1))
	text += fmt.Sprintf("  Only in %s: %s\n", result.File2, formatNameList(fc.OnlyInFile2))

	return text
}

func (s *Server) formatPDFSearchDirectoryResult(result *pdf.PDFSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
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

func (s *Server) formatPDFServerInfoResult(result *pdf.PDFServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No PDF files found in default directory\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + result.UsageGuidance

	return text
}

func formatPageList(pages []int) string {
	if len(pages) == 0 {
		return "none"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}

func formatNameList(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
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
		log.Printf("Starting PDF inspector MCP server in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
