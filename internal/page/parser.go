package page

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class names that make up the page contract with the backend.
const (
	ClassSubmit      = "btn-calcular"
	ClassResultCard  = "result-card"
	ClassResultValue = "current-value"
	ClassServerError = "error-msg"
)

var meshClass = regexp.MustCompile(`^malla\d+$`)

// Parse reads an HTML page and builds its Document. pageURL is the address
// the page was fetched from; it is used to resolve the form action.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	d := NewDocument(pageURL)
	formSeen := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			classes := classList(n)

			switch n.DataAtom {
			case atom.Title:
				if d.Title == "" {
					d.Title = textContent(n)
				}
			case atom.Form:
				if !formSeen {
					formSeen = true
					d.Action = attr(n, "action")
					if m := attr(n, "method"); m != "" {
						d.Method = strings.ToUpper(m)
					}
				}
			case atom.Input:
				parseInput(d, n)
			}

			if hasToken(classes, ClassSubmit) && d.Submit.Label == "" {
				d.Submit.Label = textContent(n)
			}
			if hasToken(classes, ClassResultCard) {
				d.Cards++
			}
			if hasToken(classes, ClassResultValue) {
				d.Results = append(d.Results, Result{Index: len(d.Results), Text: textContent(n)})
			}
			if hasToken(classes, ClassServerError) && d.ServerError == "" {
				d.ServerError = textContent(n)
			}
			if isDiagramElement(n, classes) {
				d.Diagram = append(d.Diagram, &Element{
					ID:         attr(n, "id"),
					Classes:    classes,
					Brightness: 1,
					Opacity:    1,
				})
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return d, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(body []byte, pageURL string) (*Document, error) {
	return Parse(bytes.NewReader(body), pageURL)
}

func parseInput(d *Document, n *html.Node) {
	name := attr(n, "name")
	if name == "" {
		return
	}
	switch strings.ToLower(attr(n, "type")) {
	case "number":
		if d.Field(name) != nil {
			return
		}
		d.Fields = append(d.Fields, &Field{
			Name:  name,
			Value: attr(n, "value"),
			Hint:  attr(n, "title"),
		})
	case "hidden":
		d.Hidden = append(d.Hidden, HiddenInput{Name: name, Value: attr(n, "value")})
	}
}

func isDiagramElement(n *html.Node, classes []string) bool {
	if strings.HasPrefix(attr(n, "id"), "electron") {
		return true
	}
	for _, c := range classes {
		if meshClass.MatchString(c) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func hasToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

// textContent returns the collapsed text of n and its descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
