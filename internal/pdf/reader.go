package pdf

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/pagerange"
)

// yTolerance is the baseline distance, in PDF units, within which two text
// runs are treated as sitting on the same visual line.
const yTolerance = 2.0

// Reader reconstructs reading-order text from PDF pages
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// ReadText extracts reading-order text from the requested page range. Pages
// are processed concurrently and merged back in ascending page order.
func (r *Reader) ReadText(req PDFReadTextRequest) (*PDFReadTextResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	if _, err := r.statPDFFile(req.Path); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to open PDF", err)
	}
	defer f.Close()

	totalPages := pdfReader.NumPage()
	pages, err := pagerange.Parse(req.Pages, totalPages)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeInvalidPageRange, "invalid page range", err)
	}

	pageTexts, truncated := r.reconstructPages(pdfReader, pages)

	hasImages, imageCount := r.detectImages(pdfReader)
	contentType := r.classifyContent(pageTexts, hasImages)

	result := &PDFReadTextResult{
		Path:        req.Path,
		TotalPages:  totalPages,
		PagesRead:   pages,
		PageTexts:   pageTexts,
		ContentType: contentType,
		HasImages:   hasImages,
		ImageCount:  imageCount,
		Truncated:   truncated,
	}

	return result, nil
}

// SearchText scans reconstructed page text for a query string. Matches are
// reported per line in ascending page, then line, order.
func (r *Reader) SearchText(req PDFSearchTextRequest) (*PDFSearchTextResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}
	if req.Query == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "query cannot be empty")
	}

	if _, err := r.statPDFFile(req.Path); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to open PDF", err)
	}
	defer f.Close()

	pages, err := pagerange.Parse(req.Pages, pdfReader.NumPage())
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeInvalidPageRange, "invalid page range", err)
	}

	pageTexts, _ := r.reconstructPages(pdfReader, pages)

	matches := make([]TextMatch, 0)
	needle := req.Query
	if !req.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	for _, pt := range pageTexts {
		for lineIdx, line := range strings.Split(pt.Text, "\n") {
			haystack := line
			if !req.CaseSensitive {
				haystack = strings.ToLower(haystack)
			}
			if strings.Contains(haystack, needle) {
				matches = append(matches, TextMatch{
					Page:     pt.Page,
					Line:     lineIdx + 1,
					LineText: line,
				})
			}
		}
	}

	return &PDFSearchTextResult{
		Path:         req.Path,
		Query:        req.Query,
		PagesScanned: pages,
		TotalMatches: len(matches),
		Matches:      matches,
	}, nil
}

// statPDFFile checks existence, type and the size cap
func (r *Reader) statPDFFile(filePath string) (os.FileInfo, error) {
	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, inspecterrors.Newf(inspecterrors.CodeFileNotFound, "file does not exist: %s", filePath)
	}
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeAccessDenied, "cannot access file", err)
	}
	if fileInfo.IsDir() {
		return nil, inspecterrors.Newf(inspecterrors.CodeNotAPDF, "path is a directory, not a file: %s", filePath)
	}
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return nil, inspecterrors.Newf(inspecterrors.CodeNotAPDF, "file is not a PDF: %s", filePath)
	}
	if fileInfo.Size() > r.maxFileSize {
		return nil, inspecterrors.Newf(inspecterrors.CodeFileTooLarge,
			"file too large: %d bytes (max: %d bytes)", fileInfo.Size(), r.maxFileSize).
			WithSuggestion("raise the max file size limit or split the document")
	}
	return fileInfo, nil
}

// reconstructPages extracts the given pages concurrently. The result slice
// matches the order of pages, which is always ascending. The second return
// reports whether the total text cap cut anything off.
func (r *Reader) reconstructPages(pdfReader *pdf.Reader, pages []int) ([]PageText, bool) {
	results := make([]PageText, len(pages))

	var wg sync.WaitGroup
	for i, pageNum := range pages {
		wg.Add(1)
		go func(idx, num int) {
			defer wg.Done()
			results[idx] = PageText{
				Page: num,
				Text: r.reconstructPage(pdfReader, num),
			}
		}(i, pageNum)
	}
	wg.Wait()

	truncated := false
	total := 0
	for i := range results {
		if total+len(results[i].Text) > r.maxTextSize {
			remaining := r.maxTextSize - total
			if remaining < 0 {
				remaining = 0
			}
			results[i].Text = results[i].Text[:remaining]
			truncated = true
		}
		total += len(results[i].Text)
	}

	return results, truncated
}

// reconstructPage rebuilds one page's text in reading order: runs sorted
// top-to-bottom, left-to-right within a line, lines separated by newlines.
func (r *Reader) reconstructPage(pdfReader *pdf.Reader, pageNum int) (text string) {
	defer func() {
		// The content parser panics on malformed streams
		if recover() != nil {
			text = ""
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	content := page.Content()
	runs := coalesceRuns(content.Text)
	if len(runs) == 0 {
		return ""
	}

	sort.SliceStable(runs, func(i, j int) bool {
		di := runs[i].Y - runs[j].Y
		if di <= yTolerance && di >= -yTolerance {
			return runs[i].X < runs[j].X
		}
		// PDF Y grows upward, so higher Y means earlier in reading order
		return runs[i].Y > runs[j].Y
	})

	var builder strings.Builder
	lineY := runs[0].Y
	for i, run := range runs {
		if i > 0 {
			dy := lineY - run.Y
			if dy > yTolerance || dy < -yTolerance {
				builder.WriteString("\n")
				lineY = run.Y
			} else {
				builder.WriteString(" ")
			}
		}
		builder.WriteString(run.Text)
	}

	return builder.String()
}

// glyphGapTolerance is the horizontal slack, in PDF units, allowed between
// one glyph's advance and the next glyph's origin inside a single run.
const glyphGapTolerance = 2.0

// coalesceRuns merges per-glyph text entries into contiguous runs. Glyphs
// stay in one run while they share a baseline and each starts where the
// previous one ended; a position jump starts a new run.
func coalesceRuns(glyphs []pdf.Text) []TextRun {
	var runs []TextRun
	var nextX float64
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}

		contiguous := false
		if len(runs) > 0 {
			cur := &runs[len(runs)-1]
			dy := g.Y - cur.Y
			dx := g.X - nextX
			contiguous = dy <= glyphGapTolerance && dy >= -glyphGapTolerance &&
				dx <= glyphGapTolerance && dx >= -glyphGapTolerance
		}

		if contiguous {
			runs[len(runs)-1].Text += g.S
		} else {
			runs = append(runs, TextRun{X: g.X, Y: g.Y, Text: g.S})
		}
		nextX = g.X + g.W
	}
	return runs
}

// classifyContent determines the type of content in the PDF
func (r *Reader) classifyContent(pageTexts []PageText, hasImages bool) string {
	// Minimum text length to consider content meaningful
	const minMeaningfulTextLength = 50

	totalText := 0
	for _, pt := range pageTexts {
		totalText += len(strings.TrimSpace(pt.Text))
	}

	if totalText < minMeaningfulTextLength {
		if hasImages {
			return "scanned_images"
		}
		return "no_content"
	}

	if hasImages {
		return "mixed"
	}

	return "text"
}

// detectImages scans the whole document for image XObjects
func (r *Reader) detectImages(pdfReader *pdf.Reader) (bool, int) {
	imageCount := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		imageCount += r.countImagesOnPage(pdfReader, pageNum)
	}

	return imageCount > 0, imageCount
}

// countImagesOnPage counts image XObjects in a page's resources
func (r *Reader) countImagesOnPage(pdfReader *pdf.Reader, pageNum int) (count int) {
	defer func() {
		// Recover from any panics during image detection
		if recover() != nil {
			count = 0
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	imageCount := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		imageCount++
	}

	return imageCount
}

// pageLabel formats a page list for log lines and summaries
func pageLabel(pages []int) string {
	if len(pages) == 0 {
		return "none"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ",")
}
