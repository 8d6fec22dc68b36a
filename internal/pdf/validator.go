package pdf

import (
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
)

// Validator gates file access before any component parses a document
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs detailed validation on a PDF file
func (v *Validator) ValidateFile(filePath string) error {
	if filePath == "" {
		return inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return inspecterrors.Newf(inspecterrors.CodeFileNotFound, "file does not exist: %s", filePath)
	}
	if err != nil {
		return inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "cannot access file", err)
	}

	if err := v.ValidateFileInfo(filePath, fileInfo); err != nil {
		return err
	}

	// Try to open the PDF to validate it's a valid PDF file
	f, _, err := pdf.Open(filePath)
	if err != nil {
		return inspecterrors.Wrap(inspecterrors.CodeParseFailure, "invalid PDF file", err)
	}
	defer f.Close()

	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF
func (v *Validator) IsValidPDF(filePath string) bool {
	return v.ValidateFile(filePath) == nil
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return inspecterrors.Newf(inspecterrors.CodeNotAPDF, "path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return inspecterrors.Newf(inspecterrors.CodeNotAPDF, "file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return inspecterrors.Newf(inspecterrors.CodeNotAPDF, "file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return inspecterrors.Newf(inspecterrors.CodeFileTooLarge,
			"file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize).
			WithSuggestion("raise the max file size limit or split the document")
	}

	return nil
}
