// Package feed renders a view's first page as an RSS feed.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/kindling/api/internal/item"
	"github.com/kindling/api/internal/listing"
)

// Pager is the slice of the item provider the feed needs.
type Pager interface {
	Page(ctx context.Context, ids []int, page, pageSize int) []item.Item
}

// Builder turns a view into an RSS document.
type Builder struct {
	lists    *listing.Provider
	rising   *listing.Rising
	pager    Pager
	pageSize int
}

func NewBuilder(lists *listing.Provider, rising *listing.Rising, pager Pager, pageSize int) *Builder {
	return &Builder{
		lists:    lists,
		rising:   rising,
		pager:    pager,
		pageSize: pageSize,
	}
}

// RSS renders the first page of view as RSS 2.0.
func (b *Builder) RSS(ctx context.Context, view listing.View) (string, error) {
	var ids []int
	if view == listing.ViewRising {
		ids = b.rising.IDs(ctx, listing.DefaultMinComments, listing.DefaultMinPoints, listing.DefaultRisingCandidates)
	} else {
		ids = b.lists.IDs(ctx, view)
	}
	items := b.pager.Page(ctx, ids, 1, b.pageSize)

	f := &feeds.Feed{
		Title:       fmt.Sprintf("Hacker News — %s", view),
		Description: fmt.Sprintf("The current %q view, refreshed as the upstream ranking changes", view),
		Link:        &feeds.Link{Href: "https://news.ycombinator.com/", Rel: "self", Type: "text/html"},
		Created:     time.Now(),
	}

	for _, it := range items {
		f.Items = append(f.Items, &feeds.Item{
			Id:          fmt.Sprintf("%d", it.ID),
			Title:       it.Title,
			Link:        &feeds.Link{Href: it.DisplayURL(), Rel: "alternate", Type: "text/html"},
			Author:      &feeds.Author{Name: it.By},
			Description: fmt.Sprintf("%d points, %d comments", it.Score, it.Descendants),
			Created:     time.Unix(it.Time, 0),
		})
	}

	return f.ToRss()
}
