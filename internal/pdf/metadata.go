package pdf

import (
	"os"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// MetadataReader extracts document information and catalog-level properties
type MetadataReader struct {
	maxFileSize int64
}

// NewMetadataReader creates a new metadata reader with the specified constraints
func NewMetadataReader(maxFileSize int64) *MetadataReader {
	return &MetadataReader{maxFileSize: maxFileSize}
}

// GetMetadata returns file-level, information-dictionary and catalog-derived
// properties of one document.
func (m *MetadataReader) GetMetadata(req PDFMetadataRequest) (*PDFMetadataResult, error) {
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

	return m.FromDocument(doc, req.Path, fileInfo.Size()), nil
}

// FromDocument builds the metadata result from an already-open document
func (m *MetadataReader) FromDocument(doc *objmodel.Document, path string, fileSize int64) *PDFMetadataResult {
	result := &PDFMetadataResult{
		Path:          path,
		FileSize:      fileSize,
		PageCount:     doc.PageCount(),
		Version:       doc.Version(),
		Encrypted:     doc.Encrypted(),
		HasSignatures: hasSignaturesHeuristic(doc),
	}

	if catalog, err := doc.Catalog(); err == nil {
		result.Tagged = isMarkedTagged(doc, catalog)
	}

	info := doc.Info()
	if info == nil {
		return result
	}

	result.Title = doc.ResolveString(info["Title"])
	result.Author = doc.ResolveString(info["Author"])
	result.Subject = doc.ResolveString(info["Subject"])
	result.Keywords = doc.ResolveString(info["Keywords"])
	result.Creator = doc.ResolveString(info["Creator"])
	result.Producer = doc.ResolveString(info["Producer"])
	result.CreationDate = doc.ResolveString(info["CreationDate"])
	result.ModificationDate = doc.ResolveString(info["ModDate"])

	return result
}
