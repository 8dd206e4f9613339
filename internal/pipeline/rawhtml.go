package pipeline

import (
	"strings"

	"github.com/alnah/go-md2docx/internal/mdtree"
	"golang.org/x/net/html"
)

// kindTransparent marks tags that keep their content unstyled.
const kindTransparent mdtree.InlineKind = -1

// htmlInlineKinds maps inline HTML tags to span kinds.
var htmlInlineKinds = map[string]mdtree.InlineKind{
	"b":      mdtree.KindBold,
	"strong": mdtree.KindBold,
	"i":      mdtree.KindItalic,
	"em":     mdtree.KindItalic,
	"s":      mdtree.KindStrikethrough,
	"del":    mdtree.KindStrikethrough,
	"strike": mdtree.KindStrikethrough,
	"sup":    mdtree.KindSuperscript,
	"sub":    mdtree.KindSubscript,
	"code":   mdtree.KindCode,
	"a":      mdtree.KindLink,
	"u":      kindTransparent,
	"ins":    kindTransparent,
	"mark":   kindTransparent,
	"span":   kindTransparent,
	"small":  kindTransparent,
}

type htmlFrame struct {
	tag   string
	kind  mdtree.InlineKind
	href  string
	title string
	spans []mdtree.Inline
}

// htmlSpans folds raw inline HTML tags, which goldmark reports as separate
// opening and closing nodes, into nested spans. Unmatched closing tags are
// ignored and unclosed opening tags leave their content unstyled.
type htmlSpans struct {
	stack []htmlFrame
}

func newHTMLSpans() *htmlSpans {
	return &htmlSpans{stack: []htmlFrame{{}}}
}

func (h *htmlSpans) add(spans ...mdtree.Inline) {
	top := &h.stack[len(h.stack)-1]
	top.spans = append(top.spans, spans...)
}

// tag consumes one raw HTML fragment.
func (h *htmlSpans) tag(raw string) {
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			h.open(z)
		case html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			h.void(z, string(name), hasAttr)
		case html.EndTagToken:
			name, _ := z.TagName()
			h.close(string(name))
		}
	}
}

func (h *htmlSpans) open(z *html.Tokenizer) {
	name, hasAttr := z.TagName()
	tag := string(name)
	kind, ok := htmlInlineKinds[tag]
	if !ok {
		h.void(z, tag, hasAttr)
		return
	}
	f := htmlFrame{tag: tag, kind: kind}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(key) {
		case "href":
			f.href = string(val)
		case "title":
			f.title = string(val)
		}
	}
	h.stack = append(h.stack, f)
}

// void handles elements without content. The tokenizer yields the tag
// name only once, so callers pass what they already read.
func (h *htmlSpans) void(z *html.Tokenizer, tag string, hasAttr bool) {
	switch tag {
	case "br":
		h.add(&mdtree.LineBreak{})
	case "img":
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == "alt" && len(val) > 0 {
				h.add(&mdtree.Text{Value: string(val)})
			}
		}
	}
}

func (h *htmlSpans) close(tag string) {
	i := len(h.stack) - 1
	for i > 0 && h.stack[i].tag != tag {
		i--
	}
	if i == 0 {
		return
	}
	for len(h.stack)-1 > i {
		h.unwind()
	}
	f := h.stack[i]
	h.stack = h.stack[:i]
	h.add(f.build()...)
}

// unwind pops the top frame and hands its content to the parent unstyled.
func (h *htmlSpans) unwind() {
	f := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	h.add(f.spans...)
}

func (f htmlFrame) build() []mdtree.Inline {
	switch f.kind {
	case kindTransparent:
		return f.spans
	case mdtree.KindCode:
		return []mdtree.Inline{&mdtree.Code{Value: mdtree.PlainText(f.spans)}}
	case mdtree.KindLink:
		if f.href == "" {
			return f.spans
		}
		return []mdtree.Inline{mdtree.WrapLink(f.href, f.title, f.spans)}
	}
	if w := mdtree.Wrap(f.kind, f.spans); w != nil {
		return []mdtree.Inline{w}
	}
	return f.spans
}

// finish closes whatever is still open and returns the spans.
func (h *htmlSpans) finish() []mdtree.Inline {
	for len(h.stack) > 1 {
		h.unwind()
	}
	return h.stack[0].spans
}
