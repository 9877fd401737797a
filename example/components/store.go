package components

// Item is a bookmarked link.
type Item struct {
	ID    string
	Title string
	URL   string
	Tags  []string
}

// Tag is a tag name with the number of items carrying it.
type Tag struct {
	Name  string
	Count int
}

// TagStore is the data source the views read from.
type TagStore interface {
	Tags() []Tag
	Items(tag string) []*Item
}
