package descriptions

// Tool descriptions with practical examples and use cases

const (
	// Text Tools
	PDFReadTextDescription = `Extract text from PDF pages in natural reading order.

**When to use:** Need the actual text content of a document, reconstructed the way a human would read it (top to bottom, left to right).

**Why it's useful:** Positioned text runs are reassembled into lines and paragraphs rather than raw extraction order, and the response classifies the document's content type so you know whether text extraction is even viable.

**Examples:**
• Read a contract: "Get the text of contract.pdf pages 1-3"
• Skim a long report: "Read pages 1,5,10-12 of annual-report.pdf"

**Best practices:** Check the 'content_type' field: "scanned_images" means the document has no text layer and pdf_extract_images is the better tool. Use the pages parameter to avoid pulling hundreds of pages at once.`

	PDFSearchTextDescription = `Search for a string within a document's reconstructed text.

**When to use:** Need to locate specific terms, clauses, or values inside a PDF without reading the whole thing.

**Why it's useful:** Returns the page and line of every hit with the full line as context, so follow-up reads can target exactly the right pages.

**Examples:**
• Find a clause: "Search lease.pdf for 'termination'"
• Locate a figure: "Search report.pdf pages 10-50 for 'Table 4'"

**Best practices:** Searches are case-insensitive by default; set case_sensitive for identifiers. Combine with pdf_read_text on the matching pages.`

	PDFExtractImagesDescription = `Extract image assets from PDF pages.

**When to use:** A document is scanned or image-heavy, or pdf_read_text reported content_type "scanned_images" or "mixed".

**Why it's useful:** Reports every image's page, dimensions, and encoding format, and distinguishes images that were detected from those whose parameters could actually be decoded, so nothing is silently dropped.

**Best practices:** Use after pdf_read_text indicates image content. Image data cannot be OCR'd by this server; extraction reports parameters, not pixels.`

	// Structure Inspection Tools
	PDFInspectObjectsDescription = `Inspect the raw object graph of a PDF.

**When to use:** Debugging a malformed or suspicious PDF, or understanding how a document is built at the COS object level.

**Why it's useful:** Summarizes the cross-reference table (total, free, compressed, and stream objects), counts objects by type, and lists the catalog's keys, a structural fingerprint of the file.

**Examples:**
• Forensics: "Inspect objects of suspicious.pdf to see what object types it carries"
• Debugging: "Why is generated.pdf so large? Check its stream object count"`

	PDFInspectTagsDescription = `Walk the logical structure tree (tags) of an accessible PDF.

**When to use:** Assessing accessibility, understanding document structure, or checking whether headings/tables/figures are tagged.

**Why it's useful:** Returns the full role-labeled tree with per-role counts, element totals, and tree depth. This is the structure assistive technology actually sees.

**Examples:**
• Accessibility review: "Inspect tags of form.pdf to see its heading structure"
• Structure audit: "Does manual.pdf tag its tables?"

**Best practices:** An untagged document returns is_tagged:false with an empty tree; use pdf_validate_tags for a pass/fail conformance report.`

	PDFInspectFontsDescription = `Inventory every font referenced by a document's pages.

**When to use:** Checking font embedding before print or archiving, diagnosing rendering differences, or fingerprinting a document's producer.

**Why it's useful:** Reports each font's type, encoding, embedding status, subset status, and exactly which pages use it, merged by base font name.

**Best practices:** Non-embedded fonts render differently across viewers; subset fonts (6-letter prefix) cannot be used for editing.`

	PDFInspectAnnotationsDescription = `List and classify the annotations on a document's pages.

**When to use:** Finding comments, highlights, links, or form widgets left in a document.

**Why it's useful:** Classifies every annotation by subtype with per-page and per-subtype counts plus quick flags for links, form fields, and markup.

**Examples:**
• Review cleanup: "Does draft.pdf still contain reviewer comments?"
• Link audit: "List all link annotations in newsletter.pdf"`

	PDFInspectSignaturesDescription = `Report the structure of digital signature form fields.

**When to use:** Checking whether a document carries signature fields and whether they are filled.

**Why it's useful:** Walks the interactive form field tree exhaustively, reporting each signature field's name, signed state, and the signer details recorded in the signature dictionary.

**Best practices:** This is structural inspection only and never verifies cryptographic validity. Treat signed/unsigned as document structure, not trust.`

	PDFMetadataDescription = `Extract document metadata and file-level properties.

**When to use:** Need provenance (title, author, producer, dates), page count, PDF version, or encryption/tagged flags.

**Why it's useful:** Combines the document information dictionary with catalog-derived properties and file statistics in one call.

**Examples:**
• Cataloging: "Get metadata from reports/ for indexing"
• Provenance: "What produced generated.pdf and when?"`

	// Validation Tools
	PDFValidateTagsDescription = `Run the fixed tag-structure conformance checks (TAG-001..TAG-008).

**When to use:** Assessing a document's accessibility tagging against a fixed checklist: tagged flag, structure root, Document element, heading sequence, figure coverage, paragraphs, richness, table completeness.

**Why it's useful:** Produces a stable, machine-readable issue list with severities. The same checks run in the same order every time, so results are comparable across documents and revisions.

**Best practices:** An untagged document short-circuits after the first check. Use pdf_inspect_tags for the underlying tree.`

	PDFValidateMetadataDescription = `Run the fixed metadata conformance checks (META-001..META-010).

**When to use:** Checking a document against baseline metadata hygiene: title, author, dates and their formats, producer, version, tagged flag, subject, keywords, encryption.

**Why it's useful:** Always runs all ten checks and always returns exactly ten coded issues, so a document's metadata posture is a stable, diffable profile.`

	PDFCompareFilesDescription = `Compare the structural properties of two PDF files.

**When to use:** Verifying whether two versions of a document differ structurally, or checking what a processing step changed.

**Why it's useful:** Compares eleven fixed properties (page count, version, encryption, tagging, object counts, dimensions, size, catalog, signatures, fonts) side by side, plus a font-set difference: a structural diff without rendering.

**Examples:**
• Regression check: "Compare report-v1.pdf and report-v2.pdf"
• Pipeline audit: "Did optimization change output.pdf structurally?"`

	// Discovery Tools
	PDFSearchDirectoryDescription = `Discover and filter PDF files across directories with intelligent search.

**When to use:** Need to find specific PDFs by name patterns, explore unknown directories, or build file inventories.

**Why it's useful:** Quickly locates relevant documents without manual browsing, supports fuzzy matching for partial names.

**Examples:**
• Find invoices: "Search /documents/ for files containing 'invoice' or '2024'"
• Locate reports: "Find all PDF files with 'quarterly' in /reports/ directory"

**Best practices:** Use fuzzy search for partial matches; results include size and modification time for triage.`

	PDFServerInfoDescription = `Get server status, available tools, and system capabilities.

**When to use:** Starting work with the PDF server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Provides a complete overview of server capabilities, current configuration, and directory contents for informed decision-making.

**Best practices:** Run at the start of a session to learn the configured directory and file size limit.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"pdf_read_text":           PDFReadTextDescription,
	"pdf_search_text":         PDFSearchTextDescription,
	"pdf_extract_images":      PDFExtractImagesDescription,
	"pdf_inspect_objects":     PDFInspectObjectsDescription,
	"pdf_inspect_tags":        PDFInspectTagsDescription,
	"pdf_inspect_fonts":       PDFInspectFontsDescription,
	"pdf_inspect_annotations": PDFInspectAnnotationsDescription,
	"pdf_inspect_signatures":  PDFInspectSignaturesDescription,
	"pdf_metadata":            PDFMetadataDescription,
	"pdf_validate_tags":       PDFValidateTagsDescription,
	"pdf_validate_metadata":   PDFValidateMetadataDescription,
	"pdf_compare_files":       PDFCompareFilesDescription,
	"pdf_search_directory":    PDFSearchDirectoryDescription,
	"pdf_server_info":         PDFServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
