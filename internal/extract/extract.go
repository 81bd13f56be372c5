// Package extract reduces HTML sources to countable text for the tally CLI
// tool. Counting raw HTML would tally markup rather than prose, so remote
// pages (and anything flagged as HTML) pass through here first.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ToText extracts the readable text of an HTML document as Markdown.
//
// When selector is non-empty, only the matching elements are extracted.
// Otherwise go-readability isolates the main article content; if it finds
// nothing usable, the whole document is converted instead. baseURL gives
// readability context for resolving relative links and may be nil.
func ToText(content io.Reader, selector string, baseURL *url.URL) (string, error) {
	if selector != "" {
		return extractWithSelector(content, selector)
	}

	// readability consumes the reader, keep a copy for the fallback path
	raw, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}

	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(bytes.NewReader(raw), baseURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		// not article-shaped; count the whole document
		return toMarkdown(string(raw))
	}

	return toMarkdown(article.Content)
}

// extractWithSelector scopes extraction to the elements matching a CSS
// selector.
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			// re-wrap each element so block structure survives conversion
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return toMarkdown(strings.Join(htmlParts, "\n"))
}

// toMarkdown converts an HTML string to clean Markdown.
func toMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	// normalize whitespace so blank-line runs do not inflate line counts
	cleaned := strings.TrimSpace(markdown)
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}

	return cleaned, nil
}
