// Package objmodel wraps pdfcpu's object model behind the narrow surface the
// inspection components need: page dictionaries, bounded indirect-reference
// resolution, catalog/info access, and raw object enumeration.
package objmodel

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxResolveHops bounds indirect-reference chains so a malformed document
// with a reference cycle cannot hang a lookup.
const maxResolveHops = 8

// Document is a read-only low-level view of one parsed PDF.
type Document struct {
	ctx    *model.Context
	closed bool
}

// OpenFile parses the PDF at path into a low-level document.
func OpenFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return &Document{ctx: ctx}, nil
}

// OpenBytes parses an in-memory PDF, e.g. one fetched over HTTP.
func OpenBytes(data []byte) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return &Document{ctx: ctx}, nil
}

// Close releases the document. The pdfcpu context holds no OS resources once
// parsed, so this only marks the handle unusable.
func (d *Document) Close() error {
	d.closed = true
	return nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Version returns the PDF header version, e.g. "1.7".
func (d *Document) Version() string {
	if d.ctx.HeaderVersion == nil {
		return ""
	}
	return d.ctx.HeaderVersion.String()
}

// Encrypted reports whether the document carries an encryption dictionary.
func (d *Document) Encrypted() bool {
	return d.ctx.Encrypt != nil
}

// Catalog returns the document catalog dictionary.
func (d *Document) Catalog() (types.Dict, error) {
	return d.ctx.Catalog()
}

// Info returns the document information dictionary, or nil if absent.
func (d *Document) Info() types.Dict {
	if d.ctx.Info == nil {
		return nil
	}
	dict, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil {
		return nil
	}
	return dict
}

// Page returns the page dictionary for a 1-based page number along with the
// page's object number (0 if unknown). The object number is what structure
// elements reference through their Pg entry.
func (d *Document) Page(pageNum int) (types.Dict, int, error) {
	if pageNum < 1 || pageNum > d.ctx.PageCount {
		return nil, 0, fmt.Errorf("invalid page number %d (document has %d pages)", pageNum, d.ctx.PageCount)
	}

	dict, indRef, _, err := d.ctx.PageDict(pageNum, false)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get page %d dict: %w", pageNum, err)
	}
	objNr := 0
	if indRef != nil {
		objNr = indRef.ObjectNumber.Value()
	}
	return dict, objNr, nil
}

// FirstPageDims returns the width and height of page 1 in points.
func (d *Document) FirstPageDims() (float64, float64, error) {
	dims, err := d.ctx.PageDims()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return 0, 0, fmt.Errorf("document has no pages")
	}
	return dims[0].Width, dims[0].Height, nil
}

// ObjectStats summarizes the cross-reference table.
type ObjectStats struct {
	Total      int
	Free       int
	Compressed int
	Streams    int
	ByType     map[string]int
}

// Objects enumerates the cross-reference table and classifies every in-use
// object by its /Type name (when it is a dictionary carrying one).
func (d *Document) Objects() ObjectStats {
	stats := ObjectStats{ByType: make(map[string]int)}

	for _, entry := range d.ctx.Table {
		if entry == nil {
			continue
		}
		if entry.Free {
			stats.Free++
			continue
		}
		stats.Total++
		if entry.Compressed {
			stats.Compressed++
		}

		switch obj := entry.Object.(type) {
		case types.StreamDict:
			stats.Streams++
			if name := d.ResolveName(obj.Dict["Type"]); name != "" {
				stats.ByType[name]++
			}
		case types.Dict:
			if name := d.ResolveName(obj["Type"]); name != "" {
				stats.ByType[name]++
			}
		}
	}

	return stats
}

// Resolve follows indirect references until a direct object is reached,
// giving up after maxResolveHops to stay safe on cyclic reference graphs.
func (d *Document) Resolve(obj types.Object) types.Object {
	for hops := 0; hops < maxResolveHops; hops++ {
		indRef, ok := obj.(types.IndirectRef)
		if !ok {
			return obj
		}
		resolved, err := d.ctx.Dereference(indRef)
		if err != nil || resolved == nil {
			return nil
		}
		obj = resolved
	}
	return nil
}

// ResolveDict resolves obj to a dictionary, returning nil when it is absent,
// unresolvable, or not a dictionary. Stream dictionaries resolve to their
// dictionary part.
func (d *Document) ResolveDict(obj types.Object) types.Dict {
	switch o := d.Resolve(obj).(type) {
	case types.Dict:
		return o
	case types.StreamDict:
		return o.Dict
	default:
		return nil
	}
}

// ResolveArray resolves obj to an array, or nil.
func (d *Document) ResolveArray(obj types.Object) types.Array {
	if arr, ok := d.Resolve(obj).(types.Array); ok {
		return arr
	}
	return nil
}

// ResolveName resolves obj to a PDF name, or "".
func (d *Document) ResolveName(obj types.Object) string {
	if obj == nil {
		return ""
	}
	if name, ok := d.Resolve(obj).(types.Name); ok {
		return name.Value()
	}
	return ""
}

// ResolveString resolves obj to a decoded text string, handling both literal
// and hex string forms. Returns "" when absent or not a string.
func (d *Document) ResolveString(obj types.Object) string {
	if obj == nil {
		return ""
	}
	s, err := d.ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	return s
}

// ResolveInt resolves obj to an integer.
func (d *Document) ResolveInt(obj types.Object) (int, bool) {
	switch o := d.Resolve(obj).(type) {
	case types.Integer:
		return o.Value(), true
	default:
		return 0, false
	}
}

// ResolveNumber resolves obj to a float, accepting both integer and real.
func (d *Document) ResolveNumber(obj types.Object) (float64, bool) {
	switch o := d.Resolve(obj).(type) {
	case types.Integer:
		return float64(o.Value()), true
	case types.Float:
		return o.Value(), true
	default:
		return 0, false
	}
}

// ResolveBool resolves obj to a boolean.
func (d *Document) ResolveBool(obj types.Object) (bool, bool) {
	if b, ok := d.Resolve(obj).(types.Boolean); ok {
		return b.Value(), true
	}
	return false, false
}

// ObjectNumber returns the object number behind an indirect reference, or 0
// when obj is not a reference.
func (d *Document) ObjectNumber(obj types.Object) int {
	if indRef, ok := obj.(types.IndirectRef); ok {
		return indRef.ObjectNumber.Value()
	}
	return 0
}
