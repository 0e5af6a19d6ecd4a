package docs

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// TOCEntry is one section of the ODD table of contents. Children are
// keyed by their xml:id.
type TOCEntry struct {
	Title    string              `json:"title"`
	Children map[string]TOCEntry `json:"children"`
}

// parseODD reads the ODD document with a permissive parser.
func parseODD(document []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = true
	if err := doc.ReadFromBytes(document); err != nil {
		return nil, fmt.Errorf("failed to parse ODD: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse ODD: document has no root element")
	}
	return doc, nil
}

// tableOfContents walks the div hierarchy of the ODD body. Sections
// without an xml:id and sections inside egXML example markup are
// skipped.
func tableOfContents(doc *etree.Document) map[string]TOCEntry {
	toc := make(map[string]TOCEntry)

	body := findElement(doc.Root(), func(el *etree.Element) bool {
		return el.Tag == "body"
	})
	if body == nil {
		return toc
	}

	for _, div := range body.ChildElements() {
		if div.Tag != "div" || insideExample(div) {
			continue
		}
		id := div.SelectAttrValue("xml:id", "")
		if id == "" {
			continue
		}
		toc[id] = tocEntry(div)
	}
	return toc
}

func tocEntry(div *etree.Element) TOCEntry {
	entry := TOCEntry{Title: "Untitled Section", Children: make(map[string]TOCEntry)}

	for _, child := range div.ChildElements() {
		if child.Tag == "head" {
			if title := strings.TrimSpace(elementText(child)); title != "" {
				entry.Title = title
			}
			break
		}
	}

	for _, child := range div.ChildElements() {
		if child.Tag != "div" {
			continue
		}
		id := child.SelectAttrValue("xml:id", "")
		if id == "" {
			continue
		}
		entry.Children[id] = tocEntry(child)
	}
	return entry
}

func insideExample(el *etree.Element) bool {
	for parent := el.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Tag == "egXML" {
			return true
		}
	}
	return false
}

// findElement returns the first element in document order, root
// included, matched by the predicate.
func findElement(el *etree.Element, match func(*etree.Element) bool) *etree.Element {
	if match(el) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findElement(child, match); found != nil {
			return found
		}
	}
	return nil
}

func findByXMLID(doc *etree.Document, id string) *etree.Element {
	return findElement(doc.Root(), func(el *etree.Element) bool {
		return el.SelectAttrValue("xml:id", "") == id
	})
}

func findElementSpec(doc *etree.Document, ident string) *etree.Element {
	return findElement(doc.Root(), func(el *etree.Element) bool {
		return el.Tag == "elementSpec" && el.SelectAttrValue("ident", "") == ident
	})
}

func findConstraintSpec(doc *etree.Document, ident string) *etree.Element {
	return findElement(doc.Root(), func(el *etree.Element) bool {
		return el.Tag == "constraintSpec" &&
			el.SelectAttrValue("ident", "") == ident &&
			el.SelectAttrValue("type", "") == "api_feature_check"
	})
}

// elementText collects the text content of an element and all of its
// descendants.
func elementText(el *etree.Element) string {
	var sb strings.Builder
	collectText(el, &sb)
	return sb.String()
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, token := range el.Child {
		switch node := token.(type) {
		case *etree.CharData:
			sb.WriteString(node.Data)
		case *etree.Element:
			collectText(node, sb)
		}
	}
}

// serializeElement renders a detached copy of the element as indented
// XML.
func serializeElement(el *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	doc.Indent(2)
	return doc.WriteToString()
}
