package sanitizer

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type nodeKind uint8

const (
	kindRoot nodeKind = iota
	kindElement
	kindText
	kindComment
	kindDoctype
)

// arenaNode is one node of a parsed document. Children are indices into the
// owning tree's node slice.
type arenaNode struct {
	kind     nodeKind
	data     string
	attrs    []html.Attribute
	children []int
}

// tree is a flat, index-addressed copy of a parsed document. Rewrite marks
// are keyed by node index and consulted only during serialization.
type tree struct {
	nodes []arenaNode
	index map[*html.Node]int
	root  *html.Node
	bom   bool

	skip    map[int]bool
	dropped map[int]string
	text    map[int]string
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true, "style": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "noscript": true, "plaintext": true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

const byteOrderMark = "\ufeff"

// isDocument reports whether src should be parsed as a full document rather
// than a body fragment. Leading whitespace and comments are skipped, so a
// saved page that opens with a comment is still a document.
func isDocument(src string) bool {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.CommentToken:
			continue
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) == "" {
				continue
			}
			return false
		case html.DoctypeToken:
			return true
		case html.StartTagToken:
			name, _ := z.TagName()
			return string(name) == "html"
		default:
			return false
		}
	}
}

// parseTree parses src and mirrors the result into an arena. Fragments are
// parsed in a body context and attached to a synthetic document node so
// selectors see a single root either way. A leading byte order mark is set
// aside before parsing and restored by render.
func parseTree(src string) (*tree, error) {
	body, bom := strings.CutPrefix(src, byteOrderMark)

	var root *html.Node
	if isDocument(body) {
		doc, err := html.Parse(strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		root = doc
	} else {
		ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		nodes, err := html.ParseFragment(strings.NewReader(body), ctx)
		if err != nil {
			return nil, err
		}
		root = &html.Node{Type: html.DocumentNode}
		for _, n := range nodes {
			root.AppendChild(n)
		}
	}

	t := &tree{
		index:   make(map[*html.Node]int),
		root:    root,
		bom:     bom,
		skip:    make(map[int]bool),
		dropped: make(map[int]string),
		text:    make(map[int]string),
	}
	t.add(root)
	return t, nil
}

func (t *tree) add(n *html.Node) int {
	node := arenaNode{data: n.Data}
	switch n.Type {
	case html.DocumentNode:
		node.kind = kindRoot
	case html.ElementNode:
		node.kind = kindElement
		node.attrs = n.Attr
	case html.TextNode:
		node.kind = kindText
	case html.CommentNode:
		node.kind = kindComment
	case html.DoctypeNode:
		node.kind = kindDoctype
	default:
		return -1
	}

	id := len(t.nodes)
	t.nodes = append(t.nodes, node)
	t.index[n] = id

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := t.add(c); child >= 0 {
			t.nodes[id].children = append(t.nodes[id].children, child)
		}
	}
	return id
}

func (t *tree) lookup(n *html.Node) (int, bool) {
	id, ok := t.index[n]
	return id, ok
}

func (t *tree) markSkip(id int) { t.skip[id] = true }
func (t *tree) markDropAttr(id int, name string) { t.dropped[id] = name }
func (t *tree) markText(id int, text string) { t.text[id] = text }

// render serializes the tree honoring the rewrite marks.
func (t *tree) render() string {
	var b strings.Builder
	if t.bom {
		b.WriteString(byteOrderMark)
	}
	t.write(&b, 0, false)
	return b.String()
}

// write serializes node id. Text and attribute values come out of the parser
// decoded and are escaped again here, so entities in the input stay entities
// and decoded markup never turns back into live tags. Children of raw text
// elements are written verbatim.
func (t *tree) write(b *strings.Builder, id int, raw bool) {
	if t.skip[id] {
		return
	}
	n := &t.nodes[id]

	switch n.kind {
	case kindRoot:
		for _, c := range n.children {
			t.write(b, c, false)
		}
	case kindDoctype:
		b.WriteString("<!DOCTYPE ")
		b.WriteString(n.data)
		b.WriteString(">")
	case kindComment:
		b.WriteString("<!--")
		b.WriteString(n.data)
		b.WriteString("-->")
	case kindText:
		if raw {
			b.WriteString(n.data)
		} else {
			textEscaper.WriteString(b, n.data)
		}
	case kindElement:
		b.WriteByte('<')
		b.WriteString(n.data)
		dropped, hasDropped := t.dropped[id]
		for _, a := range n.attrs {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			if hasDropped && name == dropped {
				continue
			}
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteString(`="`)
			attrEscaper.WriteString(b, a.Val)
			b.WriteByte('"')
		}
		b.WriteByte('>')

		if voidElements[n.data] {
			return
		}

		if text, ok := t.text[id]; ok {
			b.WriteString(text)
		} else {
			childRaw := rawTextElements[n.data]
			for _, c := range n.children {
				t.write(b, c, childRaw)
			}
		}

		b.WriteString("</")
		b.WriteString(n.data)
		b.WriteByte('>')
	}
}
