// Package style resolves content roles to concrete run and paragraph
// formatting.
//
// A Preset (YAML, see internal/assets) is turned into a Sheet once; the
// Sheet is immutable and shared. Each conversion then creates a Resolver,
// which caches descriptors per (role, override) so that equal requests share
// one *Descriptor. Inline formatting is applied with Cascade: run roles such
// as Strong or InlineCode are partial formats layered over the paragraph's
// descriptor.
package style
