package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// buildPDF assembles a well-formed single-xref PDF from numbered object
// bodies: bodies[i] becomes object i+1, and object 1 must be the catalog.
// Offsets are computed, so the result parses with a strict xref reader.
func buildPDF(t *testing.T, trailerExtra string, bodies ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(bodies))
	for i, body := range bodies {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(bodies)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R %s>>\nstartxref\n%d\n%%%%EOF\n",
		len(bodies)+1, trailerExtra, xrefPos)

	return buf.Bytes()
}

// writeTestPDF builds a PDF and writes it into a fresh temp directory
func writeTestPDF(t *testing.T, name, trailerExtra string, bodies ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buildPDF(t, trailerExtra, bodies...), 0o600); err != nil {
		t.Fatalf("failed to write test PDF: %v", err)
	}
	return path
}

// contentStream wraps a content stream body with its length header
func contentStream(body string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(body), body)
}

// textDocumentPDF writes a two-page document. Page one draws three text
// runs out of stream order (two on one baseline, one below); page two is
// empty.
func textDocumentPDF(t *testing.T) string {
	t.Helper()
	content := "BT /F1 12 Tf 72 650 Td (Gamma) Tj ET\n" +
		"BT /F1 12 Tf 200 700 Td (Beta) Tj ET\n" +
		"BT /F1 12 Tf 72 700 Td (Alpha) Tj ET\n"
	return writeTestPDF(t, "text.pdf", "",
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 6 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		contentStream(content),
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	)
}

// taggedDocumentPDF writes a one-page document with a structure tree
// holding a single P element with one marked-content item. The marked
// parameter controls the MarkInfo entry.
func taggedDocumentPDF(t *testing.T, marked bool) string {
	t.Helper()
	catalog := "<< /Type /Catalog /Pages 2 0 R /StructTreeRoot 4 0 R >>"
	if marked {
		catalog = "<< /Type /Catalog /Pages 2 0 R /StructTreeRoot 4 0 R /MarkInfo << /Marked true >> >>"
	}
	return writeTestPDF(t, "tagged.pdf", "",
		catalog,
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
		"<< /Type /StructTreeRoot /K [5 0 R] >>",
		"<< /Type /StructElem /S /P /Pg 3 0 R /K 0 >>",
	)
}

// signedFormPDF writes a one-page document whose AcroForm holds one signed
// signature field with two widget-only kids, plus one unsigned field.
func signedFormPDF(t *testing.T) string {
	t.Helper()
	return writeTestPDF(t, "signed.pdf", "",
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [4 0 R 8 0 R] /SigFlags 3 >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [5 0 R 6 0 R] >>",
		"<< /FT /Sig /T (SignatureField1) /V 7 0 R /Kids [5 0 R 6 0 R] >>",
		"<< /Type /Annot /Subtype /Widget /Rect [0 0 0 0] /Parent 4 0 R /P 3 0 R >>",
		"<< /Type /Annot /Subtype /Widget /Rect [0 0 0 0] /Parent 4 0 R /P 3 0 R >>",
		"<< /Type /Sig /Filter /Adobe.PPKLite /SubFilter /adbe.pkcs7.detached /Name (Jane Signer) /Reason (Approval) /M (D:20240101120000Z) >>",
		"<< /FT /Sig /T (EmptyField) /Rect [0 0 0 0] >>",
	)
}

// pagesOnlyPDF writes a document with the given number of empty pages
func pagesOnlyPDF(t *testing.T, name string, pageCount int) string {
	t.Helper()
	kids := ""
	bodies := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // placeholder for the page tree
	}
	for i := 0; i < pageCount; i++ {
		objNr := 3 + i
		if kids != "" {
			kids += " "
		}
		kids += fmt.Sprintf("%d 0 R", objNr)
		bodies = append(bodies, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}
	bodies[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pageCount)
	return writeTestPDF(t, name, "", bodies...)
}

// documentWithInfoPDF writes a one-page document with an information
// dictionary in the trailer.
func documentWithInfoPDF(t *testing.T) string {
	t.Helper()
	return writeTestPDF(t, "info.pdf", "/Info 4 0 R ",
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
		"<< /Title (Quarterly Report) /Author (Jane Doe) /Subject (Finance) /Keywords (q3, revenue) /Producer (pdflens) /CreationDate (D:20240101120000Z) /ModDate (D:20240201120000Z) >>",
	)
}
