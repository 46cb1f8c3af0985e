package item

import (
	"context"
	"slices"
)

// KidsLimit caps how many child IDs of one comment are expanded while
// assembling a tree. High-fan-out threads would otherwise explode the
// fetch volume exponentially with depth.
const KidsLimit = 10

// Comment is one resolved comment annotated with its expansion depth;
// depth 0 is a direct child of the root item. Nesting is reconstructed
// downstream from each comment's Parent field, not from list position.
type Comment struct {
	Item
	Depth int
}

// CommentTree expands root's child comments level by level up to maxDepth.
// Each level is fetched in a single concurrent fan-out; within a level,
// upstream child order is preserved. Unresolvable, deleted and dead
// comments are skipped, along with their subtrees.
//
// The output is flat in level order (all depth-0 comments, then depth-1,
// and so on), not depth-first subtree order.
func (p *Provider) CommentTree(ctx context.Context, root Item, maxDepth int) []Comment {
	var out []Comment

	level := root.Kids
	for depth := 0; len(level) > 0 && depth <= maxDepth; depth++ {
		var next []int
		for _, res := range p.resolve(ctx, level) {
			if res == nil || res.Deleted || res.Dead {
				continue
			}
			out = append(out, Comment{Item: *res, Depth: depth})

			if depth < maxDepth && len(res.Kids) > 0 {
				// Cap breadth on a copy; the cached Item's Kids slice
				// must never be touched.
				kids := slices.Clone(res.Kids)
				if len(kids) > KidsLimit {
					kids = kids[:KidsLimit]
				}
				next = append(next, kids...)
			}
		}
		level = next
	}

	return out
}
