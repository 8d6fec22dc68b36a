package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// Differ compares the structural properties of two documents
type Differ struct {
	maxFileSize int64
	fonts       *FontInventory
}

// NewDiffer creates a new structural differ with the specified constraints
func NewDiffer(maxFileSize int64) *Differ {
	return &Differ{
		maxFileSize: maxFileSize,
		fonts:       NewFontInventory(maxFileSize),
	}
}

// docProfile is one document's analyzed property set
type docProfile struct {
	pageCount     int
	version       string
	encrypted     bool
	tagged        bool
	totalObjects  int
	streamObjects int
	pageDims      string
	fileSize      int64
	catalogKeys   int
	hasSignatures bool
	fontNames     []string
	err           error
}

// CompareFiles analyzes both documents concurrently and emits one diff
// entry per property in a fixed order. Status is "match" exactly when the
// two stringified values are equal; no numeric coercion.
func (d *Differ) CompareFiles(req PDFCompareRequest) (*PDFCompareResult, error) {
	if req.Path1 == "" || req.Path2 == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "both paths are required")
	}

	var (
		profile1, profile2 docProfile
		wg                 sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile1 = d.analyze(req.Path1)
	}()
	go func() {
		defer wg.Done()
		profile2 = d.analyze(req.Path2)
	}()
	wg.Wait()

	if profile1.err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure,
			fmt.Sprintf("failed to analyze %s", req.Path1), profile1.err)
	}
	if profile2.err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure,
			fmt.Sprintf("failed to analyze %s", req.Path2), profile2.err)
	}

	diffs := []StructuralDiff{
		diffEntry("Page Count", fmt.Sprintf("%d", profile1.pageCount), fmt.Sprintf("%d", profile2.pageCount)),
		diffEntry("PDF Version", profile1.version, profile2.version),
		diffEntry("Encrypted", fmt.Sprintf("%t", profile1.encrypted), fmt.Sprintf("%t", profile2.encrypted)),
		diffEntry("Tagged", fmt.Sprintf("%t", profile1.tagged), fmt.Sprintf("%t", profile2.tagged)),
		diffEntry("Total Objects", fmt.Sprintf("%d", profile1.totalObjects), fmt.Sprintf("%d", profile2.totalObjects)),
		diffEntry("Stream Objects", fmt.Sprintf("%d", profile1.streamObjects), fmt.Sprintf("%d", profile2.streamObjects)),
		diffEntry("Page 1 Dimensions", profile1.pageDims, profile2.pageDims),
		diffEntry("File Size", fmt.Sprintf("%d", profile1.fileSize), fmt.Sprintf("%d", profile2.fileSize)),
		diffEntry("Catalog Entries", fmt.Sprintf("%d", profile1.catalogKeys), fmt.Sprintf("%d", profile2.catalogKeys)),
		diffEntry("Has Signatures", fmt.Sprintf("%t", profile1.hasSignatures), fmt.Sprintf("%t", profile2.hasSignatures)),
		diffEntry("Total Fonts", fmt.Sprintf("%d", len(profile1.fontNames)), fmt.Sprintf("%d", len(profile2.fontNames))),
	}

	differences := 0
	for _, entry := range diffs {
		if entry.Status != "match" {
			differences++
		}
	}

	var summary string
	if differences == 0 {
		summary = fmt.Sprintf("all %d properties match", len(diffs))
	} else {
		summary = fmt.Sprintf("%d difference(s) found out of %d properties compared", differences, len(diffs))
	}

	return &PDFCompareResult{
		File1:          filepath.Base(req.Path1),
		File2:          filepath.Base(req.Path2),
		Diffs:          diffs,
		FontComparison: compareFontSets(profile1.fontNames, profile2.fontNames),
		Summary:        summary,
	}, nil
}

// analyze computes one document's property profile
func (d *Differ) analyze(path string) docProfile {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return docProfile{err: err}
	}

	doc, err := objmodel.OpenFile(path)
	if err != nil {
		return docProfile{err: err}
	}
	defer doc.Close()

	profile := docProfile{
		pageCount:     doc.PageCount(),
		version:       doc.Version(),
		encrypted:     doc.Encrypted(),
		fileSize:      fileInfo.Size(),
		hasSignatures: hasSignaturesHeuristic(doc),
	}

	stats := doc.Objects()
	profile.totalObjects = stats.Total
	profile.streamObjects = stats.Streams

	if catalog, err := doc.Catalog(); err == nil {
		profile.tagged = isMarkedTagged(doc, catalog)
		profile.catalogKeys = len(catalog)
	}

	if width, height, err := doc.FirstPageDims(); err == nil {
		profile.pageDims = fmt.Sprintf("%.1f x %.1f", width, height)
	}

	if fonts, err := d.fonts.Collect(doc); err == nil {
		for _, font := range fonts {
			profile.fontNames = append(profile.fontNames, font.Name)
		}
	}

	return profile
}

// diffEntry builds one comparison entry
func diffEntry(property, value1, value2 string) StructuralDiff {
	status := "differ"
	if value1 == value2 {
		status = "match"
	}
	return StructuralDiff{
		Property:   property,
		File1Value: value1,
		File2Value: value2,
		Status:     status,
	}
}

// compareFontSets computes the set difference of two font-name lists
func compareFontSets(names1, names2 []string) FontComparison {
	set1 := make(map[string]bool, len(names1))
	for _, name := range names1 {
		set1[name] = true
	}
	set2 := make(map[string]bool, len(names2))
	for _, name := range names2 {
		set2[name] = true
	}

	comparison := FontComparison{
		OnlyInFile1: make([]string, 0),
		OnlyInFile2: make([]string, 0),
		InBoth:      make([]string, 0),
	}
	for name := range set1 {
		if set2[name] {
			comparison.InBoth = append(comparison.InBoth, name)
		} else {
			comparison.OnlyInFile1 = append(comparison.OnlyInFile1, name)
		}
	}
	for name := range set2 {
		if !set1[name] {
			comparison.OnlyInFile2 = append(comparison.OnlyInFile2, name)
		}
	}
	sort.Strings(comparison.OnlyInFile1)
	sort.Strings(comparison.OnlyInFile2)
	sort.Strings(comparison.InBoth)

	return comparison
}
