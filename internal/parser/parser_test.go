package parser

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tealeg/xlsx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestParse_TextFile(t *testing.T) {
	path := writeFile(t, "resume.txt", "Experienced Python developer with 5 years at Acme Corp")

	segments, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Source != "resume.txt" {
		t.Errorf("expected source resume.txt, got %q", segments[0].Source)
	}
	if segments[0].Page != 1 {
		t.Errorf("expected page 1, got %d", segments[0].Page)
	}
	if !strings.Contains(segments[0].Content, "Python developer") {
		t.Errorf("content not preserved: %q", segments[0].Content)
	}
}

func TestParse_Markdown(t *testing.T) {
	md := "# Jane Doe\n\nSenior **Go** engineer.\n\n- Kubernetes\n- PostgreSQL\n"
	path := writeFile(t, "resume.md", md)

	segments, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	content := segments[0].Content
	for _, want := range []string{"Jane Doe", "Go", "engineer", "Kubernetes", "PostgreSQL"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in extracted text: %q", want, content)
		}
	}
	// Markup must not leak into the text.
	for _, bad := range []string{"#", "**", "- "} {
		if strings.Contains(content, bad) {
			t.Errorf("markup %q leaked into extracted text: %q", bad, content)
		}
	}
	if segments[0].Source != "resume.md" {
		t.Errorf("expected source resume.md, got %q", segments[0].Source)
	}
}

func writeDocx(t *testing.T, paragraphs ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating docx: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	files := map[string]string{
		"word/document.xml":            body.String(),
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing docx: %v", err)
	}
	return path
}

func TestParse_DOCX(t *testing.T) {
	path := writeDocx(t, "John Smith", "Backend engineer, 8 years of Java and Go")

	segments, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Source != "resume.docx" {
		t.Errorf("expected source resume.docx, got %q", segments[0].Source)
	}
	content := segments[0].Content
	if !strings.Contains(content, "John Smith") || !strings.Contains(content, "Backend engineer") {
		t.Errorf("expected paragraph text, got %q", content)
	}
	// Paragraphs become separate lines.
	if !strings.Contains(content, "\n") {
		t.Errorf("expected newline between paragraphs: %q", content)
	}
}

func TestParse_XLSX(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Candidates")
	if err != nil {
		t.Fatalf("adding sheet: %v", err)
	}
	row := sheet.AddRow()
	row.AddCell().SetString("Jane Doe")
	row.AddCell().SetString("Go, Kubernetes")

	path := filepath.Join(t.TempDir(), "candidates.xlsx")
	if err := file.Save(path); err != nil {
		t.Fatalf("saving xlsx: %v", err)
	}

	segments, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Source != "candidates.xlsx" {
		t.Errorf("expected source candidates.xlsx, got %q", segments[0].Source)
	}
	if !strings.Contains(segments[0].Content, "Jane Doe") {
		t.Errorf("expected cell text, got %q", segments[0].Content)
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "resume.rtf", "{\\rtf1 hi}")

	_, err := Parse(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParse_CorruptFile(t *testing.T) {
	path := writeFile(t, "broken.docx", "this is not a zip archive")

	_, err := Parse(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, loadErr.Path)
	}
}

func TestParse_EmptyFileYieldsNoSegments(t *testing.T) {
	path := writeFile(t, "empty.txt", "   \n\t  ")

	segments, err := Parse(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 0 {
		t.Fatalf("expected no segments for blank file, got %d", len(segments))
	}
}

func TestExtractDocxText(t *testing.T) {
	xml := `<w:p><w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:t>world</w:t></w:r></w:p><w:p><w:r><w:t>Second</w:t></w:r></w:p>`
	got := extractDocxText(xml)
	if !strings.Contains(got, "Hello  world") && !strings.Contains(got, "Hello world") {
		t.Errorf("runs not joined: %q", got)
	}
	if !strings.Contains(got, "\nSecond") {
		t.Errorf("paragraph break missing: %q", got)
	}
}
