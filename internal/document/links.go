package document

import "fmt"

// Link is an external hyperlink relationship.
type Link struct {
	RelID string
	URL   string
}

// LinkTable assigns relationship ids to hyperlink targets. Equal URLs
// share one relationship.
type LinkTable struct {
	links []Link
	byURL map[string]string
}

// NewLinkTable creates an empty LinkTable.
func NewLinkTable() *LinkTable {
	return &LinkTable{byURL: make(map[string]string)}
}

// Add returns the relationship id for url, registering it on first use.
func (t *LinkTable) Add(url string) string {
	if id, ok := t.byURL[url]; ok {
		return id
	}
	id := fmt.Sprintf("rIdLink%d", len(t.links)+1)
	t.links = append(t.links, Link{RelID: id, URL: url})
	t.byURL[url] = id
	return id
}

// Has reports whether relID was issued by t.
func (t *LinkTable) Has(relID string) bool {
	for _, l := range t.links {
		if l.RelID == relID {
			return true
		}
	}
	return false
}

// Links returns the relationships in registration order.
func (t *LinkTable) Links() []Link {
	return append([]Link(nil), t.links...)
}

// Len returns the number of relationships.
func (t *LinkTable) Len() int { return len(t.links) }
