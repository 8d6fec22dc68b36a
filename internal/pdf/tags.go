package pdf

import (
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	inspecterrors "github.com/pdflens/mcp-pdf-inspector/internal/pdf/errors"
	"github.com/pdflens/mcp-pdf-inspector/internal/pdf/objmodel"
)

// maxWalkDepth bounds structure-tree recursion so malformed trees with
// parent/child cycles terminate.
const maxWalkDepth = 64

// TagWalker analyzes the logical structure tree of tagged PDFs
type TagWalker struct {
	maxFileSize int64
}

// NewTagWalker creates a new tag-tree walker with the specified constraints
func NewTagWalker(maxFileSize int64) *TagWalker {
	return &TagWalker{maxFileSize: maxFileSize}
}

// InspectTags walks the document's structure tree and reports its shape
func (w *TagWalker) InspectTags(req PDFInspectTagsRequest) (*PDFInspectTagsResult, error) {
	if req.Path == "" {
		return nil, inspecterrors.New(inspecterrors.CodeInvalidRequest, "path cannot be empty")
	}

	doc, err := objmodel.OpenFile(req.Path)
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to parse PDF", err)
	}
	defer doc.Close()

	analysis, err := w.Analyze(doc)
	if err != nil {
		return nil, err
	}

	return &PDFInspectTagsResult{
		Path:     req.Path,
		Analysis: *analysis,
	}, nil
}

// Analyze builds the tag analysis from an already-open document. The
// structure tree is walked once per page, concurrently, each walk pruned to
// the elements that touch that page; the per-page subtrees are then merged
// under a synthetic root in ascending page order.
func (w *TagWalker) Analyze(doc *objmodel.Document) (*TagsAnalysis, error) {
	catalog, err := doc.Catalog()
	if err != nil {
		return nil, inspecterrors.Wrap(inspecterrors.CodeParseFailure, "failed to read catalog", err)
	}

	analysis := &TagsAnalysis{
		IsTagged:   isMarkedTagged(doc, catalog),
		RoleCounts: make(map[string]int),
	}

	// A structure tree in an unmarked document is not a tag tree; report
	// the document as untagged without walking it.
	if !analysis.IsTagged {
		return analysis, nil
	}

	structRoot := doc.ResolveDict(catalog["StructTreeRoot"])
	if structRoot == nil {
		return analysis, nil
	}

	pageCount := doc.PageCount()
	pageRoots := make([][]*TagNode, pageCount)

	var wg sync.WaitGroup
	for p := 1; p <= pageCount; p++ {
		wg.Add(1)
		go func(pageNum int) {
			defer wg.Done()
			_, pageObjNr, err := doc.Page(pageNum)
			if err != nil || pageObjNr == 0 {
				return
			}
			pageRoots[pageNum-1] = w.walkPage(doc, structRoot, pageObjNr)
		}(p)
	}
	wg.Wait()

	root := &TagNode{Role: "StructTreeRoot"}
	for _, roots := range pageRoots {
		root.Children = append(root.Children, roots...)
	}

	analysis.RootTag = root
	analysis.TotalElements = countNodes(root) - 1 // synthetic root excluded
	analysis.MaxDepth = nodeDepth(root)
	tallyRoles(root.Children, analysis.RoleCounts)

	return analysis, nil
}

// isMarkedTagged reads MarkInfo.Marked from the catalog
func isMarkedTagged(doc *objmodel.Document, catalog types.Dict) bool {
	markInfo := doc.ResolveDict(catalog["MarkInfo"])
	if markInfo == nil {
		return false
	}
	marked, ok := doc.ResolveBool(markInfo["Marked"])
	return ok && marked
}

// walkPage walks the structure tree's top-level elements, keeping the
// subtrees that touch the given page.
func (w *TagWalker) walkPage(doc *objmodel.Document, structRoot types.Dict, pageObjNr int) []*TagNode {
	var roots []*TagNode
	for _, kid := range w.kids(doc, structRoot["K"]) {
		elem := doc.ResolveDict(kid)
		if elem == nil {
			continue
		}
		if node, touched := w.walkElement(doc, elem, pageObjNr, 1); touched {
			roots = append(roots, node)
		}
	}
	return roots
}

// walkElement visits one structure element, returning its pruned node and
// whether the element or anything below it touches the target page. Content
// kids without their own Pg entry inherit the element's.
func (w *TagWalker) walkElement(doc *objmodel.Document, elem types.Dict, pageObjNr, depth int) (*TagNode, bool) {
	if depth >= maxWalkDepth {
		return nil, false
	}

	node := &TagNode{Role: "Unknown"}
	if role := doc.ResolveName(elem["S"]); role != "" {
		node.Role = role
	}

	elemPageNr := doc.ObjectNumber(elem["Pg"])
	touched := elemPageNr == pageObjNr && elemPageNr != 0

	for _, kid := range w.kids(doc, elem["K"]) {
		switch resolved := doc.Resolve(kid).(type) {
		case types.Integer:
			// A bare MCID lives on the element's page
			if elemPageNr == pageObjNr && elemPageNr != 0 {
				node.ContentCount++
				touched = true
			}
		case types.Dict:
			if doc.ResolveName(resolved["S"]) != "" {
				child, childTouched := w.walkElement(doc, resolved, pageObjNr, depth+1)
				if childTouched {
					node.Children = append(node.Children, child)
					touched = true
				}
				continue
			}
			// MCR or OBJR content item
			contentPageNr := doc.ObjectNumber(resolved["Pg"])
			if contentPageNr == 0 {
				contentPageNr = elemPageNr
			}
			if contentPageNr == pageObjNr && contentPageNr != 0 {
				node.ContentCount++
				touched = true
			}
		}
	}

	if !touched {
		return nil, false
	}
	return node, true
}

// kids normalizes a K entry, which holds either one kid or an array of kids
func (w *TagWalker) kids(doc *objmodel.Document, k types.Object) []types.Object {
	if k == nil {
		return nil
	}
	if arr := doc.ResolveArray(k); arr != nil {
		return arr
	}
	return []types.Object{k}
}

// countNodes counts a subtree including its root
func countNodes(node *TagNode) int {
	if node == nil {
		return 0
	}
	count := 1
	for _, child := range node.Children {
		count += countNodes(child)
	}
	return count
}

// nodeDepth returns the height of a subtree, counting the root as one level
func nodeDepth(node *TagNode) int {
	if node == nil {
		return 0
	}
	deepest := 0
	for _, child := range node.Children {
		if d := nodeDepth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// tallyRoles accumulates role counts for every node in the given subtrees
func tallyRoles(nodes []*TagNode, counts map[string]int) {
	for _, node := range nodes {
		counts[node.Role]++
		tallyRoles(node.Children, counts)
	}
}
