package quicklist

import (
	"github.com/go-kit/log/level"

	"github.com/coredata-kv/coredata/pkg/util/log"
)

// MaxBookmarks is the largest number of bookmarks a quicklist may hold
// at once (spec.md §4.2.5: 2^4 - 1 on 64-bit, from the original's
// QL_BM_BITS-wide trailing flexible array).
const MaxBookmarks = 15

// bookmark is a named reference to a node that survives node deletion
// by retargeting to the node's successor.
type bookmark struct {
	name string
	node *Node
}

// BookmarkCreate adds a bookmark, or updates it if name already exists.
// Returns false once MaxBookmarks is reached (quicklistBookmarkCreate).
func (ql *Quicklist) BookmarkCreate(name string, node *Node) bool {
	for i := range ql.bookmarks {
		if ql.bookmarks[i].name == name {
			ql.bookmarks[i].node = node
			return true
		}
	}
	if len(ql.bookmarks) >= MaxBookmarks {
		return false
	}
	ql.bookmarks = append(ql.bookmarks, bookmark{name: name, node: node})
	return true
}

// BookmarkFind returns the node bookmarked under name, or nil
// (quicklistBookmarkFind).
func (ql *Quicklist) BookmarkFind(name string) *Node {
	for _, b := range ql.bookmarks {
		if b.name == name {
			return b.node
		}
	}
	return nil
}

// BookmarkDelete removes the bookmark named name, reporting whether one
// existed (quicklistBookmarkDelete).
func (ql *Quicklist) BookmarkDelete(name string) bool {
	for i, b := range ql.bookmarks {
		if b.name == name {
			ql.bookmarks = append(ql.bookmarks[:i], ql.bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

// BookmarksClear removes every bookmark (quicklistBookmarksClear).
func (ql *Quicklist) BookmarksClear() { ql.bookmarks = nil }

// BookmarkCount returns the number of bookmarks currently held.
func (ql *Quicklist) BookmarkCount() int { return len(ql.bookmarks) }

// retargetBookmarks reassigns any bookmark pointing at n to successor,
// or drops it if successor is nil (spec.md §4.2.5).
func (ql *Quicklist) retargetBookmarks(n, successor *Node) {
	for i := 0; i < len(ql.bookmarks); {
		if ql.bookmarks[i].node != n {
			i++
			continue
		}
		if successor != nil {
			ql.bookmarks[i].node = successor
			i++
			continue
		}
		level.Debug(log.Logger).Log("msg", "bookmark dropped, deleted node had no successor", "bookmark", ql.bookmarks[i].name)
		ql.bookmarks = append(ql.bookmarks[:i], ql.bookmarks[i+1:]...)
	}
}
