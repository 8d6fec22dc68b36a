package pdf

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/pagerange"
)

// markupSubtypes are the annotation subtypes that carry user commentary
var markupSubtypes = map[string]bool{
	"Text": true, "FreeText": true, "Line": true, "Square": true,
	"Circle": true, "Polygon": true, "PolyLine": true, "Highlight": true,
	"Underline": true, "Squiggly": true, "StrikeOut": true, "Stamp": true,
	"Caret": true, "Ink": true, "Popup": true, "Redact": true,
}

// AnnotationScanner classifies the annotations attached to pages
type AnnotationScanner struct {
	maxFileSize int64
}

// NewAnnotationScanner creates a new annotation scanner with the specified constraints
func NewAnnotationScanner(maxFileSize int64) *AnnotationScanner {
	return &AnnotationScanner{maxFileSize: maxFileSize}
}

// InspectAnnotations scans the requested page range concurrently and merges
// the per-page findings in ascending page order.
func (s *AnnotationScanner) InspectAnnotations(req PDFInspectAnnotationsRequest) (*PDFInspectAnnotationsResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	pages, err := pagerange.Parse(req.Pages, doc.PageCount())
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeInvalidPageRange, "invalid page range", err)
	}

	perPage := make([][]AnnotationRecord, len(pages))
	var wg sync.WaitGroup
	for i, pageNum := range pages {
		wg.Add(1)
		go func(idx, num int) {
			defer wg.Done()
			perPage[idx] = s.pageAnnotations(doc, num)
		}(i, pageNum)
	}
	wg.Wait()

	result := &PDFInspectAnnotationsResult{
		Path:        req.Path,
		Annotations: make([]AnnotationRecord, 0),
		BySubtype:   make(map[string]int),
		ByPage:      make(map[int]int),
	}
	for i := range perPage {
		for _, rec := range perPage[i] {
			result.Annotations = append(result.Annotations, rec)
			result.BySubtype[rec.Subtype]++
			result.ByPage[rec.Page]++
			switch {
			case rec.Subtype == "Link":
				result.HasLinks = true
			case rec.Subtype == "Widget":
				result.HasForms = true
			case markupSubtypes[rec.Subtype]:
				result.HasMarkup = true
			}
		}
	}
	result.TotalAnnotations = len(result.Annotations)

	return result, nil
}

// pageAnnotations reads one page's Annots array
func (s *AnnotationScanner) pageAnnotations(doc *objmodel.Document, pageNum int) []AnnotationRecord {
	pageDict, _, err := doc.Page(pageNum)
	if err != nil {
		return nil
	}

	annots := doc.ResolveArray(pageDict["Annots"])
	if annots == nil {
		return nil
	}

	records := make([]AnnotationRecord, 0, len(annots))
	for _, obj := range annots {
		annot := doc.ResolveDict(obj)
		if annot == nil {
			continue
		}

		rec := AnnotationRecord{
			Subtype:          "Unknown",
			Page:             pageNum,
			Contents:         doc.ResolveString(annot["Contents"]),
			Author:           doc.ResolveString(annot["T"]),
			ModificationDate: doc.ResolveString(annot["M"]),
		}
		if subtype := doc.ResolveName(annot["Subtype"]); subtype != "" {
			rec.Subtype = subtype
		}
		if _, found := annot.Find("AP"); found {
			rec.HasAppearance = true
		}
		rec.Rect = s.rect(doc, annot["Rect"])

		records = append(records, rec)
	}
	return records
}

// rect decodes an annotation rectangle, tolerating short or malformed arrays
func (s *AnnotationScanner) rect(doc *objmodel.Document, obj types.Object) []float64 {
	arr := doc.ResolveArray(obj)
	if len(arr) != 4 {
		return nil
	}
	coords := make([]float64, 0, 4)
	for _, entry := range arr {
		num, ok := doc.ResolveNumber(entry)
		if !ok {
			return nil
		}
		coords = append(coords, num)
	}
	return coords
}
