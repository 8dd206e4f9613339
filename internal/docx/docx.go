// Package docx serializes a document.Document into an Office Open XML
// (.docx) package.
//
// Output is byte-deterministic: parts are written in a fixed order with a
// fixed modification time, and no part contains random identifiers.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alnah/go-md2docx/internal/document"
)

// ErrWrite indicates the package could not be written.
var ErrWrite = errors.New("writing docx package")

// zipTime is the modification time of every entry.
var zipTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

type part struct {
	name string
	data []byte
}

// Write validates doc and writes it as a .docx package to w.
func Write(w io.Writer, doc *document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	parts := []part{
		{"[Content_Types].xml", writeContentTypes(doc)},
		{"_rels/.rels", writePackageRels()},
		{"docProps/core.xml", writeCore(doc.Core)},
		{"docProps/app.xml", writeApp()},
		{"word/document.xml", writeDocumentXML(doc)},
		{"word/styles.xml", writeStylesXML(doc.Sheet)},
		{"word/settings.xml", writeSettings()},
		{"word/_rels/document.xml.rels", writeDocumentRels(doc)},
	}
	for _, p := range doc.Resources.Parts() {
		parts = append(parts, part{p.Name, p.Data})
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipTime,
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Bytes returns the serialized package.
func Bytes(doc *document.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
