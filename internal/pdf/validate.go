package pdf

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// Date syntax accepted by the creation-date check: the native PDF form,
// where each field is only valid when all preceding fields are present, or
// ISO-8601.
var (
	pdfDateRe = regexp.MustCompile(`^D:\d{4}(\d{2}(\d{2}(\d{2}(\d{2}(\d{2}(Z|[+\-]\d{2}('\d{2}'?)?)?)?)?)?)?)?$`)
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+\-]\d{2}:?\d{2})?)?$`)
)

// StructureValidator runs the fixed tag-structure and metadata check
// sequences. Each check appends exactly one severity-tagged issue.
type StructureValidator struct {
	maxFileSize int64
	tags        *TagWalker
	metadata    *MetadataReader
}

// NewStructureValidator creates a new structure validator with the specified constraints
func NewStructureValidator(maxFileSize int64) *StructureValidator {
	return &StructureValidator{
		maxFileSize: maxFileSize,
		tags:        NewTagWalker(maxFileSize),
		metadata:    NewMetadataReader(maxFileSize),
	}
}

// validationRun accumulates issues and their severity counters
type validationRun struct {
	issues   []ValidationIssue
	passed   int
	failed   int
	warnings int
}

// add appends one issue and bumps the matching counter. Info-level issues
// count as passed checks.
func (r *validationRun) add(severity, code, message, details string) {
	r.issues = append(r.issues, ValidationIssue{
		Severity: severity,
		Code:     code,
		Message:  message,
		Details:  details,
	})
	switch severity {
	case "error":
		r.failed++
	case "warning":
		r.warnings++
	default:
		r.passed++
	}
}

// result freezes the run into a validation result with a severity summary
func (r *validationRun) result(path string) *PDFValidationResult {
	total := len(r.issues)
	var summary string
	switch {
	case r.failed > 0:
		summary = fmt.Sprintf("Validation found %d error(s) and %d warning(s); %d of %d checks passed",
			r.failed, r.warnings, r.passed, total)
	case r.warnings > 0:
		summary = fmt.Sprintf("Validation passed with %d warning(s); %d of %d checks passed",
			r.warnings, r.passed, total)
	default:
		summary = fmt.Sprintf("All %d checks passed", total)
	}

	return &PDFValidationResult{
		Path:        path,
		TotalChecks: total,
		Passed:      r.passed,
		Failed:      r.failed,
		Warnings:    r.warnings,
		Issues:      r.issues,
		Summary:     summary,
	}
}

// ValidateTags runs the TAG-001..TAG-008 sequence. Tag analysis and image
// counting share one open document and run concurrently. Everything after
// check 1 is skipped for untagged documents.
func (v *StructureValidator) ValidateTags(req PDFValidateTagsRequest) (*PDFValidationResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	var (
		analysis   *TagsAnalysis
		imageCount int
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysis, _ = v.tags.Analyze(doc)
	}()
	go func() {
		defer wg.Done()
		imageCount = countImageXObjects(doc)
	}()
	wg.Wait()

	if analysis == nil {
		analysis = &TagsAnalysis{RoleCounts: make(map[string]int)}
	}

	run := &validationRun{}

	// Check 1: tagged flag
	if !analysis.IsTagged {
		run.add("error", "TAG-001", "Document is not tagged",
			"Untagged PDFs expose no logical structure to assistive technology")
		return run.result(req.Path), nil
	}
	run.add("info", "TAG-001", "Document is tagged", "")

	// Check 2: structure tree root
	if analysis.RootTag == nil {
		run.add("error", "TAG-002", "No structure tree root found",
			"The document claims to be tagged but carries no structure tree")
	} else {
		run.add("info", "TAG-002", "Structure tree root present", "")
	}

	// Check 3: top-level Document tag
	if hasTopLevelRole(analysis.RootTag, "Document") {
		run.add("info", "TAG-003", "Top-level Document tag present", "")
	} else {
		run.add("warning", "TAG-003", "No top-level Document tag",
			"Tagged PDFs conventionally nest all content under a Document element")
	}

	v.checkHeadings(run, analysis.RoleCounts)
	v.checkFigures(run, analysis.RoleCounts, imageCount)

	// Check 6: paragraph tags
	if analysis.RoleCounts["P"] > 0 {
		run.add("info", "TAG-006", "Paragraph tags present", "")
	} else {
		run.add("warning", "TAG-006", "No paragraph (P) tags found", "")
	}

	// Check 7: structural richness
	if analysis.TotalElements < 2 {
		run.add("warning", "TAG-007",
			fmt.Sprintf("Structure tree is nearly empty (%d element(s))", analysis.TotalElements), "")
	} else {
		run.add("info", "TAG-007",
			fmt.Sprintf("Structure tree has %d elements", analysis.TotalElements), "")
	}

	v.checkTables(run, analysis.RoleCounts)

	return run.result(req.Path), nil
}

// checkHeadings verifies that heading levels start at H1 and never skip.
// Documents using only the generic H role pass.
func (v *StructureValidator) checkHeadings(run *validationRun, roleCounts map[string]int) {
	var levels []int
	for level := 1; level <= 6; level++ {
		if roleCounts[fmt.Sprintf("H%d", level)] > 0 {
			levels = append(levels, level)
		}
	}

	if len(levels) == 0 {
		if roleCounts["H"] > 0 {
			run.add("info", "TAG-004", "Generic heading (H) tags present", "")
			return
		}
		run.add("warning", "TAG-004", "No heading tags found", "")
		return
	}

	for i, level := range levels {
		if level != i+1 {
			found := make([]string, len(levels))
			for j, l := range levels {
				found[j] = fmt.Sprintf("H%d", l)
			}
			run.add("warning", "TAG-004", "Heading levels are not sequential",
				fmt.Sprintf("Levels found: %s", strings.Join(found, ", ")))
			return
		}
	}
	run.add("info", "TAG-004", "Heading levels are sequential", "")
}

// checkFigures compares aggregate figure-tag and image counts. Aggregates
// only: individual images may remain untagged while the totals line up.
func (v *StructureValidator) checkFigures(run *validationRun, roleCounts map[string]int, imageCount int) {
	figures := roleCounts["Figure"]
	switch {
	case imageCount > 0 && figures == 0:
		run.add("error", "TAG-005",
			fmt.Sprintf("Document has %d image(s) but no Figure tags", imageCount), "")
	case figures < imageCount:
		run.add("warning", "TAG-005",
			fmt.Sprintf("Only %d Figure tag(s) for %d image(s)", figures, imageCount), "")
	default:
		run.add("info", "TAG-005", "Figure tags cover the detected images", "")
	}
}

// checkTables requires TR rows, then TH headers, for any Table tags
func (v *StructureValidator) checkTables(run *validationRun, roleCounts map[string]int) {
	if roleCounts["Table"] == 0 {
		run.add("info", "TAG-008", "No tables to check", "")
		return
	}
	if roleCounts["TR"] == 0 {
		run.add("error", "TAG-008", "Table tags without TR rows", "")
		return
	}
	if roleCounts["TH"] == 0 {
		run.add("warning", "TAG-008", "Table rows without TH header cells", "")
		return
	}
	run.add("info", "TAG-008", "Tables carry rows and headers", "")
}

// ValidateMetadata runs the META-001..META-010 sequence. All ten checks
// always run, each contributing exactly one issue.
func (v *StructureValidator) ValidateMetadata(req PDFValidateMetadataRequest) (*PDFValidationResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeFileNotFound, "cannot access file", err)
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	meta := v.metadata.FromDocument(doc, req.Path, fileInfo.Size())
	run := &validationRun{}

	// Check 1: title
	if meta.Title != "" {
		run.add("info", "META-001", "Title is set", "")
	} else {
		run.add("error", "META-001", "Document has no title",
			"A title is required for accessible document identification")
	}

	// Check 2: author
	if meta.Author != "" {
		run.add("info", "META-002", "Author is set", "")
	} else {
		run.add("warning", "META-002", "Document has no author", "")
	}

	// Check 3: creation date presence and format
	switch {
	case meta.CreationDate == "":
		run.add("warning", "META-003", "Document has no creation date", "")
	case !validDateFormat(meta.CreationDate):
		run.add("warning", "META-003", "Creation date has an unrecognized format",
			fmt.Sprintf("Value: %q", meta.CreationDate))
	default:
		run.add("info", "META-003", "Creation date is set", "")
	}

	// Check 4: modification date
	if meta.ModificationDate != "" {
		run.add("info", "META-004", "Modification date is set", "")
	} else {
		run.add("warning", "META-004", "Document has no modification date", "")
	}

	// Check 5: producer
	if meta.Producer != "" {
		run.add("info", "META-005", "Producer is set", "")
	} else {
		run.add("warning", "META-005", "Document has no producer", "")
	}

	// Check 6: version detection
	if meta.Version != "" {
		run.add("info", "META-006", fmt.Sprintf("PDF version %s", meta.Version), "")
	} else {
		run.add("warning", "META-006", "PDF version could not be detected", "")
	}

	// Check 7: tagged flag
	if meta.Tagged {
		run.add("info", "META-007", "Document is tagged", "")
	} else {
		run.add("warning", "META-007", "Document is not tagged", "")
	}

	// Check 8: subject
	if meta.Subject != "" {
		run.add("info", "META-008", "Subject is set", "")
	} else {
		run.add("warning", "META-008", "Document has no subject", "")
	}

	// Check 9: keywords
	if meta.Keywords != "" {
		run.add("info", "META-009", "Keywords are set", "")
	} else {
		run.add("warning", "META-009", "Document has no keywords", "")
	}

	// Check 10: encryption
	if meta.Encrypted {
		run.add("warning", "META-010", "Document is encrypted",
			"Encryption can block text access for assistive technology")
	} else {
		run.add("info", "META-010", "Document is not encrypted", "")
	}

	return run.result(req.Path), nil
}

// validDateFormat accepts PDF native or ISO-8601 date strings
func validDateFormat(date string) bool {
	return pdfDateRe.MatchString(date) || isoDateRe.MatchString(date)
}

// hasTopLevelRole reports whether any direct child of the synthetic root
// carries the given role
func hasTopLevelRole(root *TagNode, role string) bool {
	if root == nil {
		return false
	}
	for _, child := range root.Children {
		if child.Role == role {
			return true
		}
	}
	return false
}

// countImageXObjects counts image XObjects across every page's resources
func countImageXObjects(doc *objmodel.Document) int {
	count := 0
	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		pageDict, _, err := doc.Page(pageNum)
		if err != nil {
			continue
		}
		resources := doc.ResolveDict(pageDict["Resources"])
		if resources == nil {
			continue
		}
		xObjects := doc.ResolveDict(resources["XObject"])
		if xObjects == nil {
			continue
		}
		for name := range xObjects {
			xObj := doc.ResolveDict(xObjects[name])
			if xObj == nil {
				continue
			}
			if doc.ResolveName(xObj["Subtype"]) == "Image" {
				count++
			}
		}
	}
	return count
}
