// Package mdtree defines the parsed Markdown tree consumed by the assembler.
//
// Blocks and inline spans are closed sets: each is an interface with an
// unexported marker method, so only the variants declared here satisfy it.
// Consumers dispatch with type switches.
//
// # Blocks
//
//	Paragraph, Heading, ListItem, Table, CodeBlock, MathBlock,
//	Image, ThematicBreak, Quote, HTMLBlock
//
// ListItem and Quote own nested blocks. Every block records the source line
// it started on (after preprocessing), for warnings and error messages.
//
// # Inline spans
//
//	Text, Bold, Italic, Strikethrough, Code, Superscript, Subscript,
//	Link, Math, LineBreak
//
// Container spans never hold a span of their own kind, directly or
// transitively. Wrap enforces this by splicing same-kind descendants into
// the parent, so "**a **b** c**" is a single Bold with three text pieces
// merged into one.
package mdtree
