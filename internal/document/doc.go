// Package document is the in-memory word-processing document produced by
// the assembler and consumed by the serializer.
//
// Blocks are paragraphs and tables. Paragraphs hold inlines: text runs,
// images, formulas and hyperlinks. Every paragraph and run carries a
// resolved style.Descriptor; the serializer writes the paragraph role as a
// named style and only the attributes that differ from it as direct
// formatting.
//
// A Document owns the resource table its image runs point into and the
// hyperlink table its links point into. Validate checks those references
// before serialization.
package document
