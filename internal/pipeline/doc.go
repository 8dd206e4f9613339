// Package pipeline implements the Markdown parsing stages of the converter.
//
// This package handles preprocessing, block parsing and inline tokenizing:
//   - Markdown preprocessing (line endings, NFC, zero-width characters,
//     LaTeX delimiters, list indentation, ragged table headers)
//   - Parsing via Goldmark with GFM, front matter, math and
//     superscript/subscript extensions
//   - Conversion of the Goldmark AST into the mdtree block and inline model
//   - An HTML preview renderer sharing the same preprocessing
//
// Document assembly is handled separately by the assemble package. This
// separation keeps the pipeline focused on recovering the structure of
// pasted, often slightly malformed Markdown, while assembly handles
// numbering, styles and embedded resources.
package pipeline
