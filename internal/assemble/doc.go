// Package assemble turns a parsed Markdown tree into a document.Document.
//
// An Assembler is configured once and may be shared: every call to
// Assemble creates its own list tracker, style resolver cache, resource
// table and link table. Problems confined to one node (an unknown formula
// command, a missing image) never fail the call; they degrade to plain or
// placeholder runs and are reported as document warnings.
package assemble
