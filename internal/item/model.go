package item

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Item kinds as reported by the upstream API.
const (
	TypeStory      = "story"
	TypeComment    = "comment"
	TypeJob        = "job"
	TypePoll       = "poll"
	TypePollOption = "pollopt"
)

// Item is one content node: a story, comment, job, poll or poll option.
// Field names match the upstream JSON keys; unknown upstream fields are
// ignored. Items are cached by value and never mutated after construction.
type Item struct {
	ID      int    `json:"id"`
	Deleted bool   `json:"deleted"`
	Type    string `json:"type"`
	By      string `json:"by"`
	Time    int64  `json:"time"`
	Text    string `json:"text"`
	Dead    bool   `json:"dead"`
	// Parent is 0 for top-level items; a null upstream value also decodes
	// to 0, which downstream depth matching relies on.
	Parent int `json:"parent"`
	Poll   int `json:"poll"`
	// Kids holds child comment IDs in ranked display order.
	Kids  []int  `json:"kids"`
	URL   string `json:"url"`
	Score int    `json:"score"`
	Title string `json:"title"`
	// Parts holds poll option IDs in display order.
	Parts []int `json:"parts"`
	// Descendants is the total comment count (stories and polls only).
	Descendants int `json:"descendants"`
}

func (it Item) IsStory() bool   { return it.Type == TypeStory }
func (it Item) IsComment() bool { return it.Type == TypeComment }
func (it Item) IsJob() bool     { return it.Type == TypeJob }
func (it Item) IsPoll() bool    { return it.Type == TypePoll }

// DisplayURL returns the external URL for link posts, or the upstream item
// page for text posts (Ask HN, polls, jobs without a link).
func (it Item) DisplayURL() string {
	if it.URL != "" {
		return it.URL
	}
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", it.ID)
}

// Domain extracts the bare hostname of the external URL for the
// "(domain.com)" display, stripping any www. prefix. Empty for text posts
// and unparseable URLs.
func (it Item) Domain() string {
	if it.URL == "" {
		return ""
	}
	u, err := url.Parse(it.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := u.Host
	if len(host) > 4 && strings.EqualFold(host[:4], "www.") {
		host = host[4:]
	}
	return host
}

// TimeAgo renders the creation time as a relative age, e.g. "3 hours ago".
func (it Item) TimeAgo() string {
	return it.timeAgo(time.Now())
}

func (it Item) timeAgo(now time.Time) string {
	if it.Time == 0 {
		return ""
	}
	diff := now.Sub(time.Unix(it.Time, 0))
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%d months ago", int(diff.Hours()/24/30))
	default:
		return fmt.Sprintf("%d years ago", int(diff.Hours()/24/365))
	}
}
