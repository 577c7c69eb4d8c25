package plugins

import (
	"encoding/xml"

	"github.com/scnrgo/scnr/internal/scan"
)

// XML decodes a node as a single XML document, folding it into the same
// JSON-shaped value the other structured decoders produce: each element
// becomes an object keyed by child tag name, repeated tags collapse into an
// array, attributes are folded in under "@name" keys, and a childless element
// without attributes becomes its own text content. No library in
// this codebase's dependency surface folds XML into JSON — the mapping is
// small enough that hand-rolling it on encoding/xml is the justified
// exception rather than carrying a dependency for one plugin.
type XML struct {
	scan.BasePlugin
}

// Name identifies this plugin in logs and error entries.
func (XML) Name() string { return "xml" }

// Scan decodes r as one XML document. Malformed input is a format error.
func (XML) Scan(ctx *scan.Context, r scan.Reader) error {
	root, err := decodeXMLElement(xml.NewDecoder(r))
	if err != nil {
		return err
	}
	return ctx.SendContent(scan.JSONContent(root))
}

// xmlNode mirrors the minimal tree encoding/xml can hand us one token at a
// time: a tag name, its attributes, nested children, and any text found
// directly inside it.
type xmlNode struct {
	name     string
	attrs    map[string]string
	children []xmlNode
	text     string
}

// decodeXMLElement reads the first element dec produces and returns it
// folded into a JSON-shaped value.
func decodeXMLElement(dec *xml.Decoder) (any, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			node, err := readElement(dec, start)
			if err != nil {
				return nil, err
			}
			return foldXMLNode(node), nil
		}
	}
}

func readElement(dec *xml.Decoder, start xml.StartElement) (xmlNode, error) {
	node := xmlNode{name: start.Name.Local}
	if len(start.Attr) > 0 {
		node.attrs = make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			node.attrs[a.Name.Local] = a.Value
		}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return node, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := readElement(dec, t)
			if err != nil {
				return node, err
			}
			node.children = append(node.children, child)
		case xml.CharData:
			node.text += string(t)
		case xml.EndElement:
			return node, nil
		}
	}
}

// foldXMLNode converts one xmlNode into a JSON-shaped value: attributes and
// child elements share one object, repeated child tag names collapse into a
// []any, and a node with neither attributes nor children folds down to its
// trimmed text.
func foldXMLNode(n xmlNode) any {
	if len(n.attrs) == 0 && len(n.children) == 0 {
		return trimXMLText(n.text)
	}

	obj := make(map[string]any, len(n.attrs)+len(n.children))
	for k, v := range n.attrs {
		obj["@"+k] = v
	}

	grouped := make(map[string][]any)
	order := make([]string, 0, len(n.children))
	for _, child := range n.children {
		if _, seen := grouped[child.name]; !seen {
			order = append(order, child.name)
		}
		grouped[child.name] = append(grouped[child.name], foldXMLNode(child))
	}
	for _, name := range order {
		values := grouped[name]
		if len(values) == 1 {
			obj[name] = values[0]
		} else {
			obj[name] = values
		}
	}

	if text := trimXMLText(n.text); text != "" && len(n.children) == 0 {
		obj["#text"] = text
	}
	return obj
}

func trimXMLText(s string) string {
	start, end := 0, len(s)
	for start < end && isXMLSpace(s[start]) {
		start++
	}
	for end > start && isXMLSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
