package entity

import "time"

// NewsDateLayout is the publish-date layout returned by the news search API.
const NewsDateLayout = time.RFC1123Z

// NewsSearchResult is one raw hit returned by the news search client.
type NewsSearchResult struct {
	Title       string
	Link        string
	Description string
	PubDate     string // "Mon, 02 Jan 2006 15:04:05 -0700"
}

// NewsItem is one news search result for a coin.
type NewsItem struct {
	Title       string
	Link        string
	Description string
	PublishedAt time.Time
}
