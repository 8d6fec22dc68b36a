package pdf

import (
	"regexp"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// subsetPrefixRe matches subset-tagged base font names like ABCDEF+Calibri
var subsetPrefixRe = regexp.MustCompile(`^[A-Z]{6}\+`)

// FontInventory collects the fonts referenced by page resources
type FontInventory struct {
	maxFileSize int64
}

// NewFontInventory creates a new font inventory with the specified constraints
func NewFontInventory(maxFileSize int64) *FontInventory {
	return &FontInventory{maxFileSize: maxFileSize}
}

// InspectFonts scans every page's font resources and merges the findings by
// base font name.
func (fi *FontInventory) InspectFonts(req PDFInspectFontsRequest) (*PDFInspectFontsResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	fonts, err := fi.Collect(doc)
	if err != nil {
		return nil, err
	}

	return &PDFInspectFontsResult{
		Path:         req.Path,
		Fonts:        fonts,
		TotalFonts:   len(fonts),
		PagesScanned: doc.PageCount(),
	}, nil
}

// Collect gathers the font inventory from an already-open document. Pages
// are scanned in order so the merged records list pages ascending.
func (fi *FontInventory) Collect(doc *objmodel.Document) ([]FontRecord, error) {
	merged := make(map[string]*FontRecord)
	var order []string

	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		pageDict, _, err := doc.Page(pageNum)
		if err != nil {
			continue
		}
		for _, rec := range fi.pageFonts(doc, pageDict) {
			existing, ok := merged[rec.Name]
			if !ok {
				rec.PagesUsed = []int{pageNum}
				copied := rec
				merged[rec.Name] = &copied
				order = append(order, rec.Name)
				continue
			}
			if len(existing.PagesUsed) == 0 || existing.PagesUsed[len(existing.PagesUsed)-1] != pageNum {
				existing.PagesUsed = append(existing.PagesUsed, pageNum)
			}
			// A font embedded anywhere counts as embedded
			existing.IsEmbedded = existing.IsEmbedded || rec.IsEmbedded
		}
	}

	sort.Strings(order)
	fonts := make([]FontRecord, 0, len(order))
	for _, name := range order {
		fonts = append(fonts, *merged[name])
	}
	return fonts, nil
}

// pageFonts reads the Resources/Font dictionary of one page
func (fi *FontInventory) pageFonts(doc *objmodel.Document, pageDict types.Dict) []FontRecord {
	resources := doc.ResolveDict(pageDict["Resources"])
	if resources == nil {
		return nil
	}
	fontDict := doc.ResolveDict(resources["Font"])
	if fontDict == nil {
		return nil
	}

	records := make([]FontRecord, 0, len(fontDict))
	for resourceName, obj := range fontDict {
		font := doc.ResolveDict(obj)
		if font == nil {
			continue
		}

		rec := FontRecord{
			Name:     doc.ResolveName(font["BaseFont"]),
			Type:     doc.ResolveName(font["Subtype"]),
			Encoding: doc.ResolveName(font["Encoding"]),
		}
		if rec.Name == "" {
			// Some malformed fonts omit BaseFont
			rec.Name = resourceName
		}
		rec.IsSubset = subsetPrefixRe.MatchString(rec.Name)
		rec.IsEmbedded = fi.isEmbedded(doc, font)

		records = append(records, rec)
	}
	return records
}

// isEmbedded reports whether the font descriptor carries a font program
func (fi *FontInventory) isEmbedded(doc *objmodel.Document, font types.Dict) bool {
	descriptor := doc.ResolveDict(font["FontDescriptor"])
	if descriptor == nil {
		// Type0 fonts keep the descriptor on their descendant font
		for _, desc := range doc.ResolveArray(font["DescendantFonts"]) {
			if descendant := doc.ResolveDict(desc); descendant != nil {
				descriptor = doc.ResolveDict(descendant["FontDescriptor"])
				break
			}
		}
	}
	if descriptor == nil {
		return false
	}

	for _, key := range []string{"FontFile", "FontFile2", "FontFile3"} {
		if _, found := descriptor.Find(key); found {
			return true
		}
	}
	return false
}
