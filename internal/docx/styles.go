package docx

import "github.com/alnah/go-md2docx/internal/style"

// styleNames maps roles to the built-in style names Word recognizes, so
// headings show in the navigation pane and captions in tables of figures.
var styleNames = map[style.Role]string{
	style.RoleNormal:        "Normal",
	style.RoleHeading1:      "heading 1",
	style.RoleHeading2:      "heading 2",
	style.RoleHeading3:      "heading 3",
	style.RoleHeading4:      "heading 4",
	style.RoleHeading5:      "heading 5",
	style.RoleHeading6:      "heading 6",
	style.RoleListParagraph: "List Paragraph",
	style.RoleQuote:         "Quote",
	style.RoleCaption:       "caption",
}

func styleName(r style.Role) string {
	if n, ok := styleNames[r]; ok {
		return n
	}
	return string(r)
}

// writeStylesXML writes one paragraph style per paragraph role, each
// holding only what differs from the style it is based on, and one
// character style per run role.
func writeStylesXML(sheet *style.Sheet) []byte {
	w := newXMLWriter()
	w.start("w:styles", "xmlns:w", nsW)

	w.start("w:docDefaults")
	w.start("w:rPrDefault")
	w.start("w:rPr")
	w.empty("w:lang", "w:val", "en-US", "w:eastAsia", "zh-CN")
	w.end("w:rPr")
	w.end("w:rPrDefault")
	w.start("w:pPrDefault")
	w.empty("w:pPr")
	w.end("w:pPrDefault")
	w.end("w:docDefaults")

	for _, role := range style.ParagraphRoles() {
		d := sheet.Descriptor(role)
		parent := sheet.BasedOn(role)
		var base *style.Descriptor
		if parent != "" {
			base = sheet.Descriptor(parent)
		}

		attrs := []string{"w:type", "paragraph", "w:styleId", string(role)}
		if role == style.RoleNormal {
			attrs = append(attrs, "w:default", "1")
		}
		w.start("w:style", attrs...)
		w.val("w:name", styleName(role))
		if parent != "" {
			w.val("w:basedOn", string(parent))
		}
		outline := -1
		if level := role.HeadingLevel(); level > 0 {
			w.val("w:next", string(style.RoleNormal))
			outline = level - 1
		}
		w.empty("w:qFormat")
		paragraphProps(w, "", d, base, nil, outline)
		if base == nil {
			runProps(w, &d.Font, nil)
		} else {
			runProps(w, &d.Font, &base.Font)
		}
		w.end("w:style")
	}

	normal := sheet.Descriptor(style.RoleNormal)
	for _, role := range style.RunRoles() {
		w.start("w:style", "w:type", "character", "w:styleId", string(role)+"Char")
		w.val("w:name", string(role))
		runProps(w, &sheet.Descriptor(role).Font, &normal.Font)
		w.end("w:style")
	}

	w.end("w:styles")
	return w.bytes()
}
