package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/fetch"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/security"
)

// Service orchestrates the PDF inspection components behind one facade.
// Every file-path operation passes the security validator first; http(s)
// sources are downloaded to a temporary file that is removed before the
// call returns.
type Service struct {
	maxFileSize     int64
	reader          *Reader
	validator       *Validator
	assets          *Assets
	search          *Search
	tags            *TagWalker
	fonts           *FontInventory
	annotations     *AnnotationScanner
	signatures      *SignatureInspector
	metadata        *MetadataReader
	objects         *ObjectInspector
	structValidator *StructureValidator
	differ          *Differ
	pathValidator   *security.PathValidator
	fetcher         *fetch.Fetcher
	logger          *logrus.Logger
}

// NewService creates a new PDF service with all components
func NewService(maxFileSize int64, configuredDirectory string, fetchTimeout time.Duration, logger *logrus.Logger) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Service{
		maxFileSize:     maxFileSize,
		reader:          NewReader(maxFileSize),
		validator:       NewValidator(maxFileSize),
		assets:          NewAssets(maxFileSize),
		search:          NewSearch(maxFileSize),
		tags:            NewTagWalker(maxFileSize),
		fonts:           NewFontInventory(maxFileSize),
		annotations:     NewAnnotationScanner(maxFileSize),
		signatures:      NewSignatureInspector(maxFileSize),
		metadata:        NewMetadataReader(maxFileSize),
		objects:         NewObjectInspector(maxFileSize),
		structValidator: NewStructureValidator(maxFileSize),
		differ:          NewDiffer(maxFileSize),
		pathValidator:   pathValidator,
		fetcher:         fetch.NewFetcher(fetchTimeout, maxFileSize),
		logger:          logger,
	}, nil
}

// resolveSource turns a path or URL into a local file path. Remote sources
// are fetched into a temp file; the returned cleanup must always be called.
func (s *Service) resolveSource(ctx context.Context, path string) (string, func(), error) {
	if fetch.IsRemote(path) {
		s.logger.WithField("url", path).Debug("fetching remote PDF")
		return s.fetcher.FetchToTemp(ctx, path)
	}
	localPath, err := s.pathValidator.NormalizePath(path)
	if err != nil {
		return "", nil, fmt.Errorf("security validation failed: %w", err)
	}
	return localPath, func() {}, nil
}

// PDFReadText extracts reading-order text from a page range
func (s *Service) PDFReadText(ctx context.Context, req PDFReadTextRequest) (*PDFReadTextResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.reader.ReadText(PDFReadTextRequest{Path: localPath, Pages: req.Pages})
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"path":  req.Path,
		"pages": pageLabel(result.PagesRead),
	}).Debug("read text")
	result.Path = req.Path
	return result, nil
}

// PDFSearchText searches reconstructed page text for a query string
func (s *Service) PDFSearchText(ctx context.Context, req PDFSearchTextRequest) (*PDFSearchTextResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.reader.SearchText(PDFSearchTextRequest{
		Path:          localPath,
		Query:         req.Query,
		Pages:         req.Pages,
		CaseSensitive: req.CaseSensitive,
	})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFExtractImages extracts image assets from a page range
func (s *Service) PDFExtractImages(ctx context.Context, req PDFExtractImagesRequest) (*PDFExtractImagesResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.assets.ExtractImages(PDFExtractImagesRequest{Path: localPath, Pages: req.Pages})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFInspectObjects summarizes the raw object graph
func (s *Service) PDFInspectObjects(ctx context.Context, req PDFInspectObjectsRequest) (*PDFInspectObjectsResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.objects.InspectObjects(PDFInspectObjectsRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFInspectTags walks the logical structure tree
func (s *Service) PDFInspectTags(ctx context.Context, req PDFInspectTagsRequest) (*PDFInspectTagsResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.tags.InspectTags(PDFInspectTagsRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFInspectFonts inventories the document's fonts
func (s *Service) PDFInspectFonts(ctx context.Context, req PDFInspectFontsRequest) (*PDFInspectFontsResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.fonts.InspectFonts(PDFInspectFontsRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFInspectAnnotations classifies annotations across a page range
func (s *Service) PDFInspectAnnotations(ctx context.Context, req PDFInspectAnnotationsRequest) (*PDFInspectAnnotationsResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.annotations.InspectAnnotations(PDFInspectAnnotationsRequest{Path: localPath, Pages: req.Pages})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFInspectSignatures reports signature field structure
func (s *Service) PDFInspectSignatures(ctx context.Context, req PDFInspectSignaturesRequest) (*PDFInspectSignaturesResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.signatures.InspectSignatures(PDFInspectSignaturesRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFMetadata extracts document metadata
func (s *Service) PDFMetadata(ctx context.Context, req PDFMetadataRequest) (*PDFMetadataResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.metadata.GetMetadata(PDFMetadataRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFValidateTags runs the tag-structure check sequence
func (s *Service) PDFValidateTags(ctx context.Context, req PDFValidateTagsRequest) (*PDFValidationResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.structValidator.ValidateTags(PDFValidateTagsRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFValidateMetadata runs the metadata check sequence
func (s *Service) PDFValidateMetadata(ctx context.Context, req PDFValidateMetadataRequest) (*PDFValidationResult, error) {
	localPath, cleanup, err := s.resolveSource(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := s.structValidator.ValidateMetadata(PDFValidateMetadataRequest{Path: localPath})
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// PDFCompareFiles compares two documents structurally
func (s *Service) PDFCompareFiles(ctx context.Context, req PDFCompareRequest) (*PDFCompareResult, error) {
	localPath1, cleanup1, err := s.resolveSource(ctx, req.Path1)
	if err != nil {
		return nil, err
	}
	defer cleanup1()

	localPath2, cleanup2, err := s.resolveSource(ctx, req.Path2)
	if err != nil {
		return nil, err
	}
	defer cleanup2()

	s.logger.WithFields(logrus.Fields{"file1": req.Path1, "file2": req.Path2}).Debug("comparing files")
	result, err := s.differ.CompareFiles(PDFCompareRequest{Path1: localPath1, Path2: localPath2})
	if err != nil {
		return nil, err
	}
	result.File1 = filepath.Base(req.Path1)
	result.File2 = filepath.Base(req.Path2)
	return result, nil
}

// PDFSearchDirectory searches for PDF files in a directory
func (s *Service) PDFSearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	// If no directory specified, use configured directory
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// PDFServerInfo reports server capabilities and configured directory contents.
// A fresh scan runs on every call.
func (s *Service) PDFServerInfo(ctx context.Context, _ PDFServerInfoRequest, serverName, version, defaultDirectory string) (*PDFServerInfoResult, error) {
	return NewPDFServerInfo(s).GetServerInfo(ctx, serverName, version, defaultDirectory)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// ValidateConfiguration validates the service configuration
func (s *Service) ValidateConfiguration() error {
	if s.maxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be greater than 0")
	}

	if s.maxFileSize > 1024*1024*1024 { // 1GB limit
		return fmt.Errorf("maxFileSize cannot exceed 1GB")
	}

	return nil
}
