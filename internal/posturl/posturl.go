// Package posturl decomposes X/Twitter post URLs into author handle and
// post id.
package posturl

import (
	"regexp"

	"github.com/orwa-kh/syria-post-watch/internal/domain"
	"github.com/orwa-kh/syria-post-watch/pkg/errors"
)

// FallbackHandle is substituted when a URL carries a numeric status id but no
// parseable handle, e.g. the /i/web/status/<id> redirect form. X resolves any
// handle for a given status id, so the placeholder still yields a working URL.
const FallbackHandle = "anyuser"

var (
	ErrInvalidFormat = errors.New("Invalid URL format")

	handlePattern = regexp.MustCompile(`(?:twitter\.com|x\.com)/([A-Za-z0-9_]+)/status/(\d+)`)
	idPattern     = regexp.MustCompile(`(?:twitter\.com|x\.com)/.*status/(\d+)`)
)

// IsPostURL reports whether the string looks like a post URL rather than raw
// post text.
var postURLPrefix = regexp.MustCompile(`^https?://(?:www\.)?(?:twitter\.com|x\.com)/`)

func IsPostURL(s string) bool {
	return postURLPrefix.MatchString(s)
}

// Parse extracts (handle, id) from a post URL. Both twitter.com and x.com are
// recognized. URLs with intermediate path segments before "status" fall back
// to the sentinel handle as long as a numeric id is present.
func Parse(url string) (domain.PostReference, error) {
	if m := handlePattern.FindStringSubmatch(url); m != nil {
		return domain.PostReference{
			URL:          url,
			AuthorHandle: m[1],
			PostID:       m[2],
		}, nil
	}

	if m := idPattern.FindStringSubmatch(url); m != nil {
		return domain.PostReference{
			URL:          url,
			AuthorHandle: FallbackHandle,
			PostID:       m[1],
		}, nil
	}

	return domain.PostReference{}, ErrInvalidFormat
}
