package docx

import (
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/document"
)

const (
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelsPkg      = "http://schemas.openxmlformats.org/package/2006/relationships"
	relBase        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

	ctMain     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctSettings = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	ctCore     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels     = "application/vnd.openxmlformats-package.relationships+xml"
)

// Application is written to docProps/app.xml.
const Application = "go-md2docx"

func writeContentTypes(doc *document.Document) []byte {
	exts := map[string]string{}
	for _, p := range doc.Resources.Parts() {
		exts[p.Ext] = p.ContentType
	}
	keys := make([]string, 0, len(exts))
	for k := range exts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := newXMLWriter()
	w.start("Types", "xmlns", nsContentTypes)
	w.empty("Default", "Extension", "rels", "ContentType", ctRels)
	w.empty("Default", "Extension", "xml", "ContentType", "application/xml")
	for _, ext := range keys {
		w.empty("Default", "Extension", ext, "ContentType", exts[ext])
	}
	w.empty("Override", "PartName", "/word/document.xml", "ContentType", ctMain)
	w.empty("Override", "PartName", "/word/styles.xml", "ContentType", ctStyles)
	w.empty("Override", "PartName", "/word/settings.xml", "ContentType", ctSettings)
	w.empty("Override", "PartName", "/docProps/core.xml", "ContentType", ctCore)
	w.empty("Override", "PartName", "/docProps/app.xml", "ContentType", ctApp)
	w.end("Types")
	return w.bytes()
}

func writePackageRels() []byte {
	w := newXMLWriter()
	w.start("Relationships", "xmlns", nsRelsPkg)
	w.empty("Relationship", "Id", "rId1", "Type", relBase+"officeDocument", "Target", "word/document.xml")
	w.empty("Relationship", "Id", "rId2",
		"Type", "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties",
		"Target", "docProps/core.xml")
	w.empty("Relationship", "Id", "rId3", "Type", relBase+"extended-properties", "Target", "docProps/app.xml")
	w.end("Relationships")
	return w.bytes()
}

func writeDocumentRels(doc *document.Document) []byte {
	w := newXMLWriter()
	w.start("Relationships", "xmlns", nsRelsPkg)
	w.empty("Relationship", "Id", "rIdStyles", "Type", relBase+"styles", "Target", "styles.xml")
	w.empty("Relationship", "Id", "rIdSettings", "Type", relBase+"settings", "Target", "settings.xml")
	for _, p := range doc.Resources.Parts() {
		w.empty("Relationship", "Id", p.RelID, "Type", relBase+"image", "Target", p.Target())
	}
	for _, l := range doc.Links.Links() {
		w.empty("Relationship", "Id", l.RelID, "Type", relBase+"hyperlink", "Target", l.URL, "TargetMode", "External")
	}
	w.end("Relationships")
	return w.bytes()
}

func writeSettings() []byte {
	w := newXMLWriter()
	w.start("w:settings", "xmlns:w", nsW, "xmlns:m", nsM)
	w.val("w:defaultTabStop", "420")
	w.val("w:characterSpacingControl", "doNotCompress")
	w.start("m:mathPr")
	w.empty("m:mathFont", "m:val", mathFont)
	w.empty("m:dispDef")
	w.end("m:mathPr")
	w.start("w:compat")
	w.empty("w:compatSetting",
		"w:name", "compatibilityMode",
		"w:uri", "http://schemas.microsoft.com/office/word",
		"w:val", "15")
	w.end("w:compat")
	w.end("w:settings")
	return w.bytes()
}

func writeCore(core document.CoreProperties) []byte {
	w := newXMLWriter()
	w.start("cp:coreProperties",
		"xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		"xmlns:dc", "http://purl.org/dc/elements/1.1/",
		"xmlns:dcterms", "http://purl.org/dc/terms/",
		"xmlns:dcmitype", "http://purl.org/dc/dcmitype/",
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")
	optional := func(name, v string) {
		if v != "" {
			w.elem(name, v)
		}
	}
	optional("dc:title", core.Title)
	optional("dc:subject", core.Subject)
	optional("dc:creator", core.Creator)
	optional("cp:keywords", strings.Join(core.Keywords, ", "))
	optional("dc:description", core.Description)
	if !core.Created.IsZero() {
		ts := core.Created.UTC().Format(time.RFC3339)
		w.elem("dcterms:created", ts, "xsi:type", "dcterms:W3CDTF")
		w.elem("dcterms:modified", ts, "xsi:type", "dcterms:W3CDTF")
	}
	w.end("cp:coreProperties")
	return w.bytes()
}

func writeApp() []byte {
	w := newXMLWriter()
	w.start("Properties",
		"xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties",
		"xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")
	w.elem("Application", Application)
	w.end("Properties")
	return w.bytes()
}
