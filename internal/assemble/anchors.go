package assemble

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/mdtree"
)

// maxBookmarkLen is the longest bookmark name Word accepts.
const maxBookmarkLen = 40

// headingBookmarks maps every heading ID in blocks to a Word bookmark name.
// Names use letters, digits and underscores only and start with a letter.
func headingBookmarks(blocks []mdtree.Block) map[string]string {
	marks := make(map[string]string)
	used := make(map[string]bool)
	var walk func([]mdtree.Block)
	walk = func(bs []mdtree.Block) {
		for _, b := range bs {
			switch v := b.(type) {
			case *mdtree.Heading:
				if _, seen := marks[v.ID]; v.ID == "" || seen {
					continue
				}
				marks[v.ID] = uniqueBookmark(bookmarkName(v.ID), used)
			case *mdtree.Quote:
				walk(v.Children)
			case *mdtree.ListItem:
				walk(v.Children)
			}
		}
	}
	walk(blocks)
	return marks
}

func bookmarkName(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r < 0x80:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" || !isLetter(name[0]) {
		name = "h_" + name
	}
	if len(name) > maxBookmarkLen {
		name = name[:maxBookmarkLen]
	}
	return name
}

// uniqueBookmark suffixes name until it is not in used, then records it.
// Truncation to maxBookmarkLen can make distinct IDs collide.
func uniqueBookmark(name string, used map[string]bool) string {
	candidate := name
	for i := 1; used[candidate]; i++ {
		suffix := "_" + strconv.Itoa(i)
		base := name
		if len(base)+len(suffix) > maxBookmarkLen {
			base = base[:maxBookmarkLen-len(suffix)]
		}
		candidate = base + suffix
	}
	used[candidate] = true
	return candidate
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
