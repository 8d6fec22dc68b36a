package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
)

func newTestService(t *testing.T, dir string) *Service {
	t.Helper()
	service, err := NewService(1024*1024, dir, 30*time.Second, nil)
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	return service
}

func TestNewService(t *testing.T) {
	tempDir := t.TempDir()
	service := newTestService(t, tempDir)

	if service.maxFileSize != 1024*1024 {
		t.Errorf("maxFileSize = %d, want %d", service.maxFileSize, 1024*1024)
	}

	components := map[string]interface{}{
		"reader":          service.reader,
		"validator":       service.validator,
		"assets":          service.assets,
		"search":          service.search,
		"tags":            service.tags,
		"fonts":           service.fonts,
		"annotations":     service.annotations,
		"signatures":      service.signatures,
		"metadata":        service.metadata,
		"objects":         service.objects,
		"structValidator": service.structValidator,
		"differ":          service.differ,
		"pathValidator":   service.pathValidator,
		"fetcher":         service.fetcher,
		"logger":          service.logger,
	}
	for name, component := range components {
		if component == nil {
			t.Errorf("component %s is nil", name)
		}
	}
}

func TestService_GetMaxFileSize(t *testing.T) {
	service := newTestService(t, t.TempDir())
	if got := service.GetMaxFileSize(); got != 1024*1024 {
		t.Errorf("GetMaxFileSize() = %d, want %d", got, 1024*1024)
	}
}

func TestService_ValidateConfiguration(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		maxFileSize int64
		wantErr     bool
	}{
		{"valid configuration", 1024 * 1024, false},
		{"zero max file size", 0, true},
		{"negative max file size", -1, true},
		{"max allowed size", 1024 * 1024 * 1024, false},
		{"above max allowed size", 1024*1024*1024 + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewService(tt.maxFileSize, tempDir, 30*time.Second, nil)
			if err != nil {
				t.Fatalf("NewService() error: %v", err)
			}
			err = service.ValidateConfiguration()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_PathValidation(t *testing.T) {
	tempDir := t.TempDir()
	outsideDir := t.TempDir()

	outsidePDF := filepath.Join(outsideDir, "outside.pdf")
	if err := os.WriteFile(outsidePDF, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	service := newTestService(t, tempDir)

	_, err := service.PDFReadText(context.Background(), PDFReadTextRequest{Path: outsidePDF})
	if err == nil {
		t.Fatal("expected error for path outside the configured directory")
	}
	if !strings.Contains(err.Error(), "security validation failed") {
		t.Errorf("error = %v, want security validation failure", err)
	}
}

func TestService_PDFReadText_Errors(t *testing.T) {
	tempDir := t.TempDir()
	service := newTestService(t, tempDir)

	t.Run("missing file", func(t *testing.T) {
		_, err := service.PDFReadText(context.Background(), PDFReadTextRequest{
			Path: filepath.Join(tempDir, "missing.pdf"),
		})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("malformed pdf", func(t *testing.T) {
		fakePath := filepath.Join(tempDir, "fake.pdf")
		if err := os.WriteFile(fakePath, []byte("%PDF-1.4 but not really"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := service.PDFReadText(context.Background(), PDFReadTextRequest{Path: fakePath})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if code := inspecterrors.CodeOf(err); code != inspecterrors.CodeParseFailure {
			t.Errorf("code = %s, want %s", code, inspecterrors.CodeParseFailure)
		}
	})
}

func TestService_PDFSearchDirectory(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "report.pdf"), make([]byte, 128), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	service := newTestService(t, tempDir)

	t.Run("explicit directory", func(t *testing.T) {
		result, err := service.PDFSearchDirectory(PDFSearchDirectoryRequest{Directory: tempDir})
		if err != nil {
			t.Fatalf("PDFSearchDirectory() error: %v", err)
		}
		if result.TotalCount != 1 {
			t.Errorf("TotalCount = %d, want 1", result.TotalCount)
		}
	})

	t.Run("empty directory falls back to configured", func(t *testing.T) {
		result, err := service.PDFSearchDirectory(PDFSearchDirectoryRequest{})
		if err != nil {
			t.Fatalf("PDFSearchDirectory() error: %v", err)
		}
		if result.TotalCount != 1 {
			t.Errorf("TotalCount = %d, want 1", result.TotalCount)
		}
	})
}

func TestService_IsValidPDF(t *testing.T) {
	tempDir := t.TempDir()
	service := newTestService(t, tempDir)

	pdfPath := filepath.Join(tempDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	txtPath := filepath.Join(tempDir, "doc.txt")
	if err := os.WriteFile(txtPath, []byte("text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Extension alone is not enough, the file must also parse.
	if service.IsValidPDF(pdfPath) {
		t.Error("IsValidPDF() = true for unparseable .pdf file")
	}
	if service.IsValidPDF(txtPath) {
		t.Error("IsValidPDF() = true for .txt file")
	}
	if service.IsValidPDF(filepath.Join(tempDir, "missing.pdf")) {
		t.Error("IsValidPDF() = true for missing file")
	}
}

func TestService_PDFCompareFiles_ReportsRequestedNames(t *testing.T) {
	tempDir := t.TempDir()
	service := newTestService(t, tempDir)

	_, err := service.PDFCompareFiles(context.Background(), PDFCompareRequest{
		Path1: filepath.Join(tempDir, "a.pdf"),
		Path2: filepath.Join(tempDir, "b.pdf"),
	})
	if err == nil {
		t.Fatal("expected error for missing files")
	}
}
