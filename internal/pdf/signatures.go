package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// maxFieldDepth bounds the AcroForm field tree walk
const maxFieldDepth = 16

// signatureNote is attached to every signature result. Field structure says
// nothing about whether a signature cryptographically verifies.
const signatureNote = "Signature presence reflects document structure only; cryptographic validity was not verified."

// SignatureInspector reports the structure of signature form fields
type SignatureInspector struct {
	maxFileSize int64
}

// NewSignatureInspector creates a new signature inspector with the specified constraints
func NewSignatureInspector(maxFileSize int64) *SignatureInspector {
	return &SignatureInspector{maxFileSize: maxFileSize}
}

// InspectSignatures walks the AcroForm field tree and reports every
// signature field, signed or not.
func (si *SignatureInspector) InspectSignatures(req PDFInspectSignaturesRequest) (*PDFInspectSignaturesResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	return si.Collect(doc, req.Path)
}

// Collect gathers signature fields from an already-open document
func (si *SignatureInspector) Collect(doc *objmodel.Document, path string) (*PDFInspectSignaturesResult, error) {
	result := &PDFInspectSignaturesResult{
		Path:   path,
		Fields: make([]SignatureField, 0),
		Note:   signatureNote,
	}

	catalog, err := doc.Catalog()
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to read catalog", err)
	}

	acroForm := doc.ResolveDict(catalog["AcroForm"])
	if acroForm == nil {
		result.Note = "No AcroForm found in the document. " + signatureNote
		return result, nil
	}

	fields := doc.ResolveArray(acroForm["Fields"])
	for _, obj := range fields {
		field := doc.ResolveDict(obj)
		if field == nil {
			continue
		}
		si.walkField(doc, field, "", result, 0)
	}

	result.TotalFields = len(result.Fields)
	for _, f := range result.Fields {
		if f.IsSigned {
			result.SignedCount++
		} else {
			result.UnsignedCount++
		}
	}

	return result, nil
}

// walkField visits one field and its kids. The field type is inherited from
// ancestors when a terminal field omits FT.
func (si *SignatureInspector) walkField(doc *objmodel.Document, field types.Dict, inheritedType string, result *PDFInspectSignaturesResult, depth int) {
	if depth >= maxFieldDepth {
		return
	}

	fieldType := doc.ResolveName(field["FT"])
	if fieldType == "" {
		fieldType = inheritedType
	}

	// Kids carrying their own T or FT are child fields; widget-only kids
	// are annotations of this field, which stays terminal.
	childFields := false
	for _, obj := range doc.ResolveArray(field["Kids"]) {
		kid := doc.ResolveDict(obj)
		if kid == nil {
			continue
		}
		if kid["T"] == nil && doc.ResolveName(kid["FT"]) == "" {
			continue
		}
		childFields = true
		si.walkField(doc, kid, fieldType, result, depth+1)
	}
	if childFields {
		return
	}

	if fieldType != "Sig" {
		return
	}

	result.Fields = append(result.Fields, si.signatureField(doc, field))
}

// signatureField extracts the signature dictionary details of one field
func (si *SignatureInspector) signatureField(doc *objmodel.Document, field types.Dict) SignatureField {
	rec := SignatureField{
		FieldName: doc.ResolveString(field["T"]),
	}

	sigDict := doc.ResolveDict(field["V"])
	if sigDict == nil {
		return rec
	}

	rec.IsSigned = true
	rec.SignerName = doc.ResolveString(sigDict["Name"])
	rec.Reason = doc.ResolveString(sigDict["Reason"])
	rec.Location = doc.ResolveString(sigDict["Location"])
	rec.ContactInfo = doc.ResolveString(sigDict["ContactInfo"])
	rec.SigningTime = doc.ResolveString(sigDict["M"])
	rec.Filter = doc.ResolveName(sigDict["Filter"])
	rec.SubFilter = doc.ResolveName(sigDict["SubFilter"])

	return rec
}

// hasSignaturesHeuristic is the cheap signature check used for metadata and
// comparison: it looks for signature widgets on the first five pages only,
// so signatures placed deeper in the document are not seen.
func hasSignaturesHeuristic(doc *objmodel.Document) bool {
	limit := doc.PageCount()
	if limit > 5 {
		limit = 5
	}

	for pageNum := 1; pageNum <= limit; pageNum++ {
		pageDict, _, err := doc.Page(pageNum)
		if err != nil {
			continue
		}
		for _, obj := range doc.ResolveArray(pageDict["Annots"]) {
			annot := doc.ResolveDict(obj)
			if annot == nil {
				continue
			}
			if doc.ResolveName(annot["Subtype"]) != "Widget" {
				continue
			}
			fieldType := doc.ResolveName(annot["FT"])
			if fieldType == "" {
				if parent := doc.ResolveDict(annot["Parent"]); parent != nil {
					fieldType = doc.ResolveName(parent["FT"])
				}
			}
			if fieldType == "Sig" {
				return true
			}
		}
	}
	return false
}
