package pdf

import (
	"os"
	"sync"

	"github.com/ledongthuc/pdf"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/pagerange"
)

// Assets handles PDF image asset extraction
type Assets struct {
	maxFileSize int64
	validator   *Validator
}

// NewAssets creates a new PDF assets extractor with the specified constraints
func NewAssets(maxFileSize int64) *Assets {
	return &Assets{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// ExtractImages extracts image assets from the requested page range. Images
// whose parameters cannot be decoded still count as detected, so the
// detected and extracted counts diverge instead of silently dropping them.
func (a *Assets) ExtractImages(req PDFExtractImagesRequest) (*PDFExtractImagesResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, inspecterrors.Newf(inspecterrors.CodeFileNotFound, "file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "cannot access file", err)
	}
	if err := a.validator.ValidateFileInfo(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to open PDF", err)
	}
	defer f.Close()

	pages, err := pagerange.Parse(req.Pages, r.NumPage())
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeInvalidPageRange, "invalid page range", err)
	}

	type pageResult struct {
		detected int
		images   []ImageInfo
	}
	perPage := make([]pageResult, len(pages))

	var wg sync.WaitGroup
	for i, pageNum := range pages {
		wg.Add(1)
		go func(idx, num int) {
			defer wg.Done()
			detected, images := a.extractImagesFromPage(r, num)
			perPage[idx] = pageResult{detected: detected, images: images}
		}(i, pageNum)
	}
	wg.Wait()

	result := &PDFExtractImagesResult{
		Path:   req.Path,
		Images: make([]ImageInfo, 0),
	}
	for _, pr := range perPage {
		result.ImagesDetected += pr.detected
		result.Images = append(result.Images, pr.images...)
	}
	result.ImagesExtracted = len(result.Images)

	return result, nil
}

// extractImagesFromPage scans one page's XObjects for images, reporting how
// many were detected alongside the ones that yielded usable parameters
func (a *Assets) extractImagesFromPage(r *pdf.Reader, pageNum int) (detected int, images []ImageInfo) {
	defer func() {
		// Recover from any panics during image extraction
		if recover() != nil {
			detected = 0
			images = nil
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return 0, nil
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0, nil
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0, nil
	}

	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		detected++
		if imageInfo := a.extractImageInfo(obj, pageNum); imageInfo != nil {
			images = append(images, *imageInfo)
		}
	}

	return detected, images
}

// extractImageInfo extracts information from an image XObject
func (a *Assets) extractImageInfo(obj pdf.Value, pageNum int) (info *ImageInfo) {
	defer func() {
		// Recover from any panics during image info extraction
		if recover() != nil {
			info = nil
		}
	}()

	imageInfo := &ImageInfo{
		PageNumber: pageNum,
		Format:     "unknown",
	}

	if width := obj.Key("Width"); !width.IsNull() {
		imageInfo.Width = int(width.Int64())
	}
	if height := obj.Key("Height"); !height.IsNull() {
		imageInfo.Height = int(height.Int64())
	}

	if filter := obj.Key("Filter"); !filter.IsNull() {
		imageInfo.Format = a.normalizeImageFormat(filter.Name())
	}

	if colorSpace := obj.Key("ColorSpace"); !colorSpace.IsNull() {
		if imageInfo.Format == "unknown" {
			// Sometimes color space gives us hints about the format
			if csName := colorSpace.Name(); csName != "" {
				imageInfo.Format = csName
			}
		}
	}

	bitsPerComponent := 8 // default
	if bpc := obj.Key("BitsPerComponent"); !bpc.IsNull() {
		bitsPerComponent = int(bpc.Int64())
	}

	// Rough size estimate assuming 3 components (RGB)
	if imageInfo.Width > 0 && imageInfo.Height > 0 {
		imageInfo.Size = int64(imageInfo.Width * imageInfo.Height * (bitsPerComponent / 8) * 3)
	}

	// Images without decodable dimensions stay detected-only
	if imageInfo.Width > 0 && imageInfo.Height > 0 {
		return imageInfo
	}

	return nil
}

// normalizeImageFormat converts PDF filter names to more readable format names
func (a *Assets) normalizeImageFormat(filterName string) string {
	switch filterName {
	case "DCTDecode":
		return "JPEG"
	case "JPXDecode":
		return "JPEG2000"
	case "CCITTFaxDecode":
		return "TIFF/Fax"
	case "JBIG2Decode":
		return "JBIG2"
	case "FlateDecode":
		return "PNG/Deflate"
	case "LZWDecode":
		return "LZW"
	case "RunLengthDecode":
		return "RLE"
	default:
		if filterName != "" {
			return filterName
		}
		return "unknown"
	}
}
