package app

// Collection is an ordered registry of open documents. Membership is
// by position, not identity: closing an element shifts every
// subsequent index down by one, so callers holding an active index
// must re-validate it after any close.
type Collection struct {
	docs []*Document
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends a document and returns its index, the length before the
// append.
func (c *Collection) Add(doc *Document) int {
	c.docs = append(c.docs, doc)
	return len(c.docs) - 1
}

// Get returns the document at index.
func (c *Collection) Get(index int) (*Document, bool) {
	if index < 0 || index >= len(c.docs) {
		return nil, false
	}
	return c.docs[index], true
}

// Len returns the number of open documents.
func (c *Collection) Len() int {
	return len(c.docs)
}

// Close removes the document at index, shifting subsequent documents
// down, and reports whether a removal occurred. An out-of-range index
// is silently ignored, not an error.
func (c *Collection) Close(index int) bool {
	if index < 0 || index >= len(c.docs) {
		return false
	}
	c.docs = append(c.docs[:index], c.docs[index+1:]...)
	return true
}

// Documents returns the open documents in order. The slice is a copy;
// the documents are not.
func (c *Collection) Documents() []*Document {
	out := make([]*Document, len(c.docs))
	copy(out, c.docs)
	return out
}
