package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var (
	breakTagPattern    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockClosePattern  = regexp.MustCompile(`(?i)</(p|div|li|h[1-6]|pre|blockquote)>`)
	lyricBlockElements = map[string]bool{
		"p": true, "div": true, "li": true, "br": true, "pre": true, "blockquote": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "tr": true,
	}
	skippedElements = map[string]bool{
		"script": true, "style": true, "noscript": true, "nav": true, "header": true, "footer": true, "head": true,
	}
)

type htmlPage struct {
	title string
	text  string
}

// parseHTML extracts the main content of a page. Line breaks are turned into
// text newlines before readability runs so lyric lines survive extraction;
// when readability finds nothing usable the whole body is walked instead.
func parseHTML(raw []byte, pageURL *url.URL) (htmlPage, error) {
	marked := breakTagPattern.ReplaceAll(raw, []byte("\n"))
	marked = blockClosePattern.ReplaceAll(marked, []byte("$0\n"))

	var page htmlPage
	article, err := readability.FromReader(bytes.NewReader(marked), pageURL)
	if err == nil {
		page.title = strings.TrimSpace(article.Title)
		page.text = article.TextContent
	}
	if strings.Count(strings.TrimSpace(page.text), "\n") == 0 {
		text, walkErr := bodyText(raw)
		if walkErr != nil {
			if err != nil {
				return htmlPage{}, fmt.Errorf("extract article: %w", err)
			}
			return htmlPage{}, walkErr
		}
		page.text = text
	}
	if strings.TrimSpace(page.text) == "" {
		return htmlPage{}, fmt.Errorf("no lyric text found in page")
	}
	return page, nil
}

func bodyText(raw []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && lyricBlockElements[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(doc)
	return b.String(), nil
}

// FetchURL downloads a page and extracts its lyric text.
func FetchURL(ctx context.Context, client *http.Client, rawURL string) (*Parsed, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("User-Agent", "lyricforge/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	if resp.ContentLength > MaxDraftBytes {
		return nil, fmt.Errorf("content-length %d exceeds limit of %d bytes", resp.ContentLength, MaxDraftBytes)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxDraftBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > MaxDraftBytes {
		return nil, fmt.Errorf("response body exceeded %d bytes", MaxDraftBytes)
	}

	title := strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path))
	if title == "" || title == "/" || title == "." {
		title = u.Host
	}
	text := string(raw)
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		page, err := parseHTML(raw, u)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", u, err)
		}
		text = page.text
		if page.title != "" {
			title = page.title
		}
	}
	return &Parsed{
		Title:       title,
		SourcePath:  u.String(),
		SourceBytes: raw,
		Text:        normalizeWhitespace(text),
	}, nil
}
