package pdf

import (
	"sort"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// ObjectInspector summarizes the raw object graph of a document
type ObjectInspector struct {
	maxFileSize int64
}

// NewObjectInspector creates a new object inspector with the specified constraints
func NewObjectInspector(maxFileSize int64) *ObjectInspector {
	return &ObjectInspector{maxFileSize: maxFileSize}
}

// InspectObjects enumerates the cross-reference table and the catalog
func (oi *ObjectInspector) InspectObjects(req PDFInspectObjectsRequest) (*PDFInspectObjectsResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	stats := doc.Objects()

	result := &PDFInspectObjectsResult{
		Path:              req.Path,
		Version:           doc.Version(),
		Encrypted:         doc.Encrypted(),
		TotalObjects:      stats.Total,
		FreeObjects:       stats.Free,
		CompressedObjects: stats.Compressed,
		StreamObjects:     stats.Streams,
		ObjectsByType:     stats.ByType,
		CatalogKeys:       make([]string, 0),
	}

	if catalog, err := doc.Catalog(); err == nil {
		for key := range catalog {
			result.CatalogKeys = append(result.CatalogKeys, key)
		}
		sort.Strings(result.CatalogKeys)
	}

	return result, nil
}
