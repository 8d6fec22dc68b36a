package pdf

import (
	"os"
	"path/filepath"
	"testing"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
)

func TestNewAssets(t *testing.T) {
	assets := NewAssets(1024 * 1024)
	if assets == nil {
		t.Fatal("NewAssets() returned nil")
	}
	if assets.maxFileSize != 1024*1024 {
		t.Errorf("maxFileSize = %d, want %d", assets.maxFileSize, 1024*1024)
	}
	if assets.validator == nil {
		t.Error("validator is nil")
	}
}

func TestAssets_NormalizeImageFormat(t *testing.T) {
	tests := []struct {
		filter string
		want   string
	}{
		{"DCTDecode", "JPEG"},
		{"JPXDecode", "JPEG2000"},
		{"CCITTFaxDecode", "TIFF/Fax"},
		{"JBIG2Decode", "JBIG2"},
		{"FlateDecode", "PNG/Deflate"},
		{"LZWDecode", "LZW"},
		{"RunLengthDecode", "RLE"},
		{"SomethingElse", "SomethingElse"},
		{"", "unknown"},
	}

	assets := NewAssets(1024 * 1024)
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			if got := assets.normalizeImageFormat(tt.filter); got != tt.want {
				t.Errorf("normalizeImageFormat(%q) = %q, want %q", tt.filter, got, tt.want)
			}
		})
	}
}

func TestAssets_ExtractImages_Errors(t *testing.T) {
	tempDir := t.TempDir()

	txtPath := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("not a PDF"), 0644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	largePath := filepath.Join(tempDir, "large.pdf")
	if err := os.WriteFile(largePath, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatalf("write large: %v", err)
	}

	fakePath := filepath.Join(tempDir, "fake.pdf")
	if err := os.WriteFile(fakePath, []byte("%PDF-1.4 but not really"), 0644); err != nil {
		t.Fatalf("write fake: %v", err)
	}

	assets := NewAssets(1024 * 1024)

	tests := []struct {
		name     string
		path     string
		wantCode inspecterrors.Code
	}{
		{"empty path", "", inspecterrors.CodeInvalidRequest},
		{"missing file", filepath.Join(tempDir, "missing.pdf"), inspecterrors.CodeFileNotFound},
		{"wrong extension", txtPath, inspecterrors.CodeNotAPDF},
		{"file too large", largePath, inspecterrors.CodeFileTooLarge},
		{"malformed pdf", fakePath, inspecterrors.CodeParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assets.ExtractImages(PDFExtractImagesRequest{Path: tt.path})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := inspecterrors.CodeOf(err); code != tt.wantCode {
				t.Errorf("code = %s, want %s (err: %v)", code, tt.wantCode, err)
			}
		})
	}
}
