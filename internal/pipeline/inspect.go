package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrInvalidDocument indicates the rendered page is missing required structure.
var ErrInvalidDocument = errors.New("invalid page document")

// RequiredIDs are the element IDs the page script depends on.
var RequiredIDs = []string{
	"imageDisplay",
	"valentineQuestion",
	"responseButtons",
	"yesButton",
	"noButton",
}

// DocumentInfo summarises a parsed page.
type DocumentInfo struct {
	Lang     string
	Title    string
	Elements map[string]*html.Node // by id
	// Scripts holds the text of each inline <script>, in document order.
	Scripts []string
	Meta    map[string]string // name -> content
}

// Attr returns attribute key of the element with the given id.
func (d *DocumentInfo) Attr(id, key string) string {
	n, ok := d.Elements[id]
	if !ok {
		return ""
	}
	return attr(n, key)
}

// Text returns the text content of the element with the given id.
func (d *DocumentInfo) Text(id string) string {
	n, ok := d.Elements[id]
	if !ok {
		return ""
	}
	return textContent(n)
}

// Inspect parses a page and collects its structure.
func Inspect(doc []byte) (*DocumentInfo, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	info := &DocumentInfo{
		Elements: make(map[string]*html.Node),
		Meta:     make(map[string]string),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				info.Elements[id] = n
			}
			switch n.Data {
			case "html":
				info.Lang = attr(n, "lang")
			case "title":
				info.Title = textContent(n)
			case "meta":
				if name := attr(n, "name"); name != "" {
					info.Meta[name] = attr(n, "content")
				}
			case "script":
				info.Scripts = append(info.Scripts, textContent(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return info, nil
}

// ValidateDocument checks that every required element exists and that the
// page carries the auxiliary and interaction scripts.
func ValidateDocument(doc []byte) error {
	info, err := Inspect(doc)
	if err != nil {
		return err
	}

	var missing []string
	for _, id := range RequiredIDs {
		if _, ok := info.Elements[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing elements %s", ErrInvalidDocument, strings.Join(missing, ", "))
	}
	if len(info.Scripts) < 2 {
		return fmt.Errorf("%w: expected 2 inline scripts, found %d", ErrInvalidDocument, len(info.Scripts))
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
