// Package normalize converts raw filing markup (HTML or XML) into clean plain
// text suitable for section location and biography segmentation.
package normalize

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Elements whose content is never document text.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Elements that end a text block. Each boundary becomes a single newline in
// the normalized output so the segmenter can recover paragraph structure.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"table": true, "ul": true, "ol": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// ToPlainText extracts clean text from filing markup. The backend is chosen
// by sniffing for an XML declaration or an <XML> root; everything else goes
// through the HTML parser. Whitespace runs collapse to single spaces and
// block boundaries collapse to single newlines. Character offsets of the
// input are not preserved.
func ToPlainText(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}

	if isXML(markup) {
		text, err := xmlToText(markup)
		if err == nil {
			return collapseWhitespace(text), nil
		}
		// Mislabeled XML shows up in older filings; fall through to HTML.
	}

	text, err := htmlToText(markup)
	if err != nil {
		return "", &ParseError{Message: "markup unparseable as XML or HTML", Cause: err}
	}
	return collapseWhitespace(text), nil
}

// isXML reports whether content looks like an XML document rather than HTML.
func isXML(content string) bool {
	stripped := strings.TrimSpace(content)
	return strings.HasPrefix(stripped, "<?xml") || strings.HasPrefix(stripped, "<XML>")
}

// xmlToText extracts character data from an XML document, skipping
// script/style elements.
func xmlToText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Strict = false

	var b strings.Builder
	skipDepth := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if skipElements[strings.ToLower(t.Name.Local)] {
				skipDepth++
			}
		case xml.EndElement:
			if skipElements[strings.ToLower(t.Name.Local)] && skipDepth > 0 {
				skipDepth--
			}
			if skipDepth == 0 {
				b.WriteString("\n")
			}
		case xml.CharData:
			if skipDepth == 0 {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// htmlToText walks the parsed HTML tree collecting text nodes, dropping
// non-content elements and marking block boundaries with newlines.
func htmlToText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(doc)

	return b.String(), nil
}

// collapseWhitespace reduces each line's internal whitespace to single spaces
// and drops blank lines, leaving one newline per block boundary.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
