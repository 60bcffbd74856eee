package domain

import "time"

// SourcePopup is the routing key sent by the manual-entry popup. Any other
// source value routes to the extension worksheet.
const SourcePopup = "popup"

// ClassifyRequest is the inbound payload of POST /classify.
type ClassifyRequest struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	PostTime string `json:"post_time"`
	URL      string `json:"url"`
	Source   string `json:"source"`
}

// ClassifyResponse is returned to the caller. Reason is present only when the
// model replied with structured JSON.
type ClassifyResponse struct {
	Label  string `json:"label"`
	Reason string `json:"reason,omitempty"`
}

// LogRow is one audit record appended to a worksheet. Column order is fixed:
// rows from older versions of the service live in the same sheet, so new
// fields may only ever be appended at the end.
type LogRow struct {
	Timestamp time.Time
	URL       string
	Text      string
	Author    string
	PostTime  string
	Label     string
	SourceTag string
	Reason    string
	Extra     string
}

// Values renders the row in its positional column order.
func (r LogRow) Values() []interface{} {
	return []interface{}{
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.URL,
		r.Text,
		r.Author,
		r.PostTime,
		r.Label,
		r.SourceTag,
		r.Reason,
		r.Extra,
	}
}

// FailedPost is a URL whose extraction failed through every fallback tier.
type FailedPost struct {
	ID        int
	URL       string
	Reason    string
	CreatedAt time.Time
}
