package docx

import (
	"bytes"
	"encoding/xml"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// xmlWriter builds an XML part in memory. Attribute pairs are passed as
// alternating name, value strings.
type xmlWriter struct {
	buf bytes.Buffer
}

func newXMLWriter() *xmlWriter {
	w := &xmlWriter{}
	w.buf.WriteString(xmlHeader)
	return w
}

func (w *xmlWriter) start(name string, attrs ...string) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.attrs(attrs)
	w.buf.WriteByte('>')
}

func (w *xmlWriter) end(name string) {
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

func (w *xmlWriter) empty(name string, attrs ...string) {
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.attrs(attrs)
	w.buf.WriteString("/>")
}

// val writes <name w:val="v"/>, the most common WordprocessingML shape.
func (w *xmlWriter) val(name, v string) {
	w.empty(name, "w:val", v)
}

// elem writes <name>text</name>.
func (w *xmlWriter) elem(name, text string, attrs ...string) {
	w.start(name, attrs...)
	w.text(text)
	w.end(name)
}

func (w *xmlWriter) text(s string) {
	// EscapeText only fails on writer errors; bytes.Buffer never returns one.
	_ = xml.EscapeText(&w.buf, []byte(s))
}

func (w *xmlWriter) attrs(attrs []string) {
	for i := 0; i+1 < len(attrs); i += 2 {
		w.buf.WriteByte(' ')
		w.buf.WriteString(attrs[i])
		w.buf.WriteString(`="`)
		w.text(attrs[i+1])
		w.buf.WriteByte('"')
	}
}

func (w *xmlWriter) bytes() []byte {
	return w.buf.Bytes()
}
