package item

import "context"

// Page returns one page of populated items from an ordered ID list.
// page is 1-based and clamped to at least 1. Items in the slice are fetched
// concurrently; IDs that fail to resolve or are marked deleted/dead are
// dropped, so a page may legitimately hold fewer than pageSize items.
// Slice order is preserved regardless of fetch completion order.
func (p *Provider) Page(ctx context.Context, ids []int, page, pageSize int) []Item {
	if len(ids) == 0 || pageSize <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(ids) {
		return nil
	}
	end := min(start+pageSize, len(ids))

	var items []Item
	for _, res := range p.resolve(ctx, ids[start:end]) {
		if res == nil || res.Deleted || res.Dead {
			continue
		}
		items = append(items, *res)
	}
	return items
}
