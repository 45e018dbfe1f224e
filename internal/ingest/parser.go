package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/samber/lo"

	"lyric_forge/internal/normalize"
)

// MaxDraftBytes caps how much of a draft is read from a file, stdin or URL.
const MaxDraftBytes = 10 * 1024 * 1024

// Parsed is a draft reduced to lyric text, one lyric line per text line.
type Parsed struct {
	Title       string
	SourcePath  string
	SourceBytes []byte
	Text        string
}

// ParseFile reads a draft from disk. The file name, minus extension, is the
// title unless the document carries its own.
func ParseFile(path string) (*Parsed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read draft %s: %w", path, err)
	}
	if len(raw) > MaxDraftBytes {
		return nil, fmt.Errorf("draft %s exceeds %d bytes", path, MaxDraftBytes)
	}

	parsed := &Parsed{
		Title:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SourcePath:  path,
		SourceBytes: raw,
	}
	text, err := extractText(parsed, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	parsed.Text = normalizeWhitespace(text)
	return parsed, nil
}

func extractText(p *Parsed, raw []byte) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(p.SourcePath)); ext {
	case ".txt", ".md", ".lyric", ".lyrics", "":
		return string(raw), nil
	case ".docx":
		return parseDOCX(raw)
	case ".pdf":
		return parsePDF(p.SourcePath)
	case ".html", ".htm":
		page, err := parseHTML(raw, &url.URL{Scheme: "file", Path: filepath.ToSlash(p.SourcePath)})
		if err != nil {
			return "", err
		}
		if page.title != "" {
			p.Title = page.title
		}
		return page.text, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

// ParseReader reads a plain-text draft, typically stdin.
func ParseReader(name string, r io.Reader) (*Parsed, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxDraftBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(raw) > MaxDraftBytes {
		return nil, fmt.Errorf("draft %s exceeds %d bytes", name, MaxDraftBytes)
	}
	return &Parsed{
		Title:       name,
		SourcePath:  name,
		SourceBytes: raw,
		Text:        normalizeWhitespace(string(raw)),
	}, nil
}

// docxBody is the main document part of a .docx archive.
const docxBody = "word/document.xml"

func parseDOCX(raw []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("docx is not a zip archive: %w", err)
	}
	part, ok := lo.Find(archive.File, func(f *zip.File) bool { return f.Name == docxBody })
	if !ok {
		return "", fmt.Errorf("docx has no %s", docxBody)
	}
	body, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", docxBody, err)
	}
	defer body.Close()
	return docxLines(xml.NewDecoder(body))
}

// docxLines writes one line per paragraph and per soft break; only w:t runs
// carry lyric text.
func docxLines(dec *xml.Decoder) (string, error) {
	var lines strings.Builder
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return lines.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", docxBody, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				depth++
			case "p", "br", "cr":
				lines.WriteByte('\n')
			}
		case xml.EndElement:
			if el.Name.Local == "t" && depth > 0 {
				depth--
			}
		case xml.CharData:
			if depth > 0 {
				lines.Write(el)
			}
		}
	}
}

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, rowsErr := p.GetTextByRow()
		if rowsErr != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return b.String(), nil
}

// normalizeWhitespace collapses runs of spaces and drops blank lines.
func normalizeWhitespace(text string) string {
	lines := normalize.SplitNonEmptyLines(strings.ReplaceAll(text, "\r", ""))
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
