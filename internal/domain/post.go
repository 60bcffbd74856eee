package domain

// PostReference identifies a single post on X/Twitter, derived from its URL.
type PostReference struct {
	URL          string
	AuthorHandle string
	PostID       string
}

// ExtractedContent is the result of one extraction attempt. Empty Text
// signals failure; Error is only set when Text is empty.
type ExtractedContent struct {
	Text      string
	Author    string
	Timestamp string
	SourceURL string
	Error     string
}

// Failed reports whether this extraction produced no usable text.
func (e ExtractedContent) Failed() bool {
	return e.Text == ""
}
