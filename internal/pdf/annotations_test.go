package pdf

import (
	"os"
	"path/filepath"
	"testing"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
)

func TestNewAnnotationScanner(t *testing.T) {
	scanner := NewAnnotationScanner(1024 * 1024)
	if scanner == nil {
		t.Fatal("NewAnnotationScanner() returned nil")
	}
	if scanner.maxFileSize != 1024*1024 {
		t.Errorf("maxFileSize = %d, want %d", scanner.maxFileSize, 1024*1024)
	}
}

func TestAnnotationScanner_InspectAnnotations_Errors(t *testing.T) {
	tempDir := t.TempDir()

	fakePath := filepath.Join(tempDir, "fake.pdf")
	if err := os.WriteFile(fakePath, []byte("%PDF-1.4 but not really"), 0o644); err != nil {
		t.Fatalf("write fake: %v", err)
	}

	scanner := NewAnnotationScanner(1024 * 1024)

	tests := []struct {
		name     string
		path     string
		wantCode inspecterrors.Code
	}{
		{"empty path", "", inspecterrors.CodeInvalidRequest},
		{"missing file", filepath.Join(tempDir, "missing.pdf"), inspecterrors.CodeParseFailure},
		{"malformed pdf", fakePath, inspecterrors.CodeParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanner.InspectAnnotations(PDFInspectAnnotationsRequest{Path: tt.path})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := inspecterrors.CodeOf(err); code != tt.wantCode {
				t.Errorf("code = %s, want %s (err: %v)", code, tt.wantCode, err)
			}
		})
	}
}
