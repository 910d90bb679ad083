package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"resume-rag/internal/models"
)

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadError wraps a parse failure for a supported format, so callers can
// skip the file and keep processing the rest of a batch.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

const defaultPage = 1

// Parse loads a document and returns its raw text segments with the
// source filename attached. One segment per PDF page or spreadsheet
// sheet; plain-text formats yield a single segment.
func Parse(filePath string) ([]models.Segment, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	var (
		segments []models.Segment
		err      error
	)
	switch ext {
	case ".pdf":
		segments, err = parsePDF(filePath)
	case ".txt":
		segments, err = parseText(filePath)
	case ".md":
		segments, err = parseMarkdown(filePath)
	case ".docx":
		segments, err = parseDOCX(filePath)
	case ".xlsx":
		segments, err = parseXLSX(filePath)
	case ".ods":
		segments, err = parseODS(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, &LoadError{Path: filePath, Err: err}
	}

	source := filepath.Base(filePath)
	var out []models.Segment
	for _, s := range segments {
		if strings.TrimSpace(s.Content) == "" {
			continue
		}
		s.Source = source
		out = append(out, s)
	}
	return out, nil
}

func parsePDF(filePath string) ([]models.Segment, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var segments []models.Segment
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		segments = append(segments, models.Segment{
			Content: pageText,
			Page:    i,
		})
	}
	return segments, nil
}

func parseText(filePath string) ([]models.Segment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return []models.Segment{{Content: string(data), Page: defaultPage}}, nil
}

// parseMarkdown walks the goldmark AST and collects plain text, dropping
// markup so headings and emphasis don't leak into embeddings.
func parseMarkdown(filePath string) ([]models.Segment, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	err = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			if n.Type() == gast.TypeBlock && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteString("\n")
			}
			return gast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *gast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteString("\n")
			}
		case *gast.AutoLink:
			sb.Write(t.URL(src))
		case *gast.FencedCodeBlock:
			writeCodeLines(&sb, n, src)
		case *gast.CodeBlock:
			writeCodeLines(&sb, n, src)
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return []models.Segment{{Content: sb.String(), Page: defaultPage}}, nil
}

func writeCodeLines(sb *strings.Builder, n gast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(src))
	}
}

func parseDOCX(filePath string) ([]models.Segment, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := extractDocxText(r.Editable().GetContent())
	return []models.Segment{{Content: content, Page: defaultPage}}, nil
}

// extractDocxText pulls run text out of the document XML. Paragraph
// closes become newlines so the splitter sees natural boundaries.
func extractDocxText(xmlContent string) string {
	var sb strings.Builder
	rest := xmlContent
	for {
		idx := findTextTag(rest)
		if idx < 0 {
			break
		}
		// Newline for every paragraph closed since the previous run.
		if sb.Len() > 0 {
			if strings.Contains(rest[:idx], "</w:p>") {
				sb.WriteString("\n")
			} else {
				sb.WriteString(" ")
			}
		}
		rest = rest[idx+len("<w:t"):]
		tagEnd := strings.Index(rest, ">")
		if tagEnd < 0 {
			break
		}
		rest = rest[tagEnd+1:]
		end := strings.Index(rest, "</w:t>")
		if end < 0 {
			break
		}
		sb.WriteString(rest[:end])
		rest = rest[end+len("</w:t>"):]
	}
	return sb.String()
}

// findTextTag locates the next <w:t> open tag, skipping lookalikes such
// as <w:tab/> or <w:tbl>.
func findTextTag(s string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], "<w:t")
		if idx < 0 {
			return -1
		}
		pos := offset + idx
		after := pos + len("<w:t")
		if after < len(s) && (s[after] == '>' || s[after] == ' ') {
			return pos
		}
		offset = after
	}
}

func parseXLSX(filePath string) ([]models.Segment, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var segments []models.Segment
	for sheetNum, sheet := range f.Sheets {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				sb.WriteString(cell.String() + "\t")
			}
			sb.WriteString("\n")
		}
		segments = append(segments, models.Segment{
			Content: sb.String(),
			Page:    sheetNum + 1,
		})
	}
	return segments, nil
}

func parseODS(filePath string) ([]models.Segment, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var segments []models.Segment
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				sb.WriteString(cell + "\t")
			}
			sb.WriteString("\n")
		}
		segments = append(segments, models.Segment{
			Content: sb.String(),
			Page:    sheetNum + 1,
		})
	}
	return segments, nil
}
