// Package rbtree implements a red-black tree over int64 keys where each node
// aggregates an ordered posting list of row ids.
//
// Duplicate keys never create new nodes: inserting an existing key appends the
// row id to that node's postings and leaves the structure untouched. A single
// shared black sentinel stands in for every leaf, which removes nil checks
// from the rotation and fix-up paths.
//
// The tree assumes single-writer usage. Concurrent Insert calls require an
// external lock around the whole tree, since fix-up can touch nodes far from
// the insertion point; Get calls are safe to run concurrently with each other
// but not with an in-flight Insert.
package rbtree

type color bool

const (
	red   color = true
	black color = false
)

type node struct {
	key      int64
	color    color
	left     *node
	right    *node
	parent   *node
	postings []uint32
}

// Tree is a red-black tree mapping int64 keys to posting lists.
type Tree struct {
	root     *node
	sentinel *node
	size     int
	tracer   Tracer
}

// New creates an empty tree. tracer may be nil to disable diagnostics;
// tracing has no effect on tree behavior.
func New(tracer Tracer) *Tree {
	sentinel := &node{color: black}
	sentinel.left = sentinel
	sentinel.right = sentinel
	sentinel.parent = sentinel
	return &Tree{root: sentinel, sentinel: sentinel, tracer: tracer}
}

// Insert adds rowID to the posting list for key. A duplicate key appends the
// posting and returns without any structural change; a new key creates a red
// node at the correct position and rebalances.
func (t *Tree) Insert(key int64, rowID uint32) {
	parent := t.sentinel
	cur := t.root
	for cur != t.sentinel {
		parent = cur
		switch {
		case key == cur.key:
			cur.postings = append(cur.postings, rowID)
			t.emit(Event{Kind: EventAppend, Key: key, RowID: rowID})
			return
		case key < cur.key:
			cur = cur.left
		default:
			cur = cur.right
		}
	}

	z := &node{
		key:      key,
		color:    red,
		left:     t.sentinel,
		right:    t.sentinel,
		parent:   parent,
		postings: []uint32{rowID},
	}
	if parent == t.sentinel {
		t.root = z
	} else if key < parent.key {
		parent.left = z
	} else {
		parent.right = z
	}
	t.size++
	t.emit(Event{Kind: EventInsert, Key: key, RowID: rowID})

	t.insertFixup(z)
	if t.tracer != nil {
		t.tracer.FixupDone(t)
	}
}

// Get returns the posting list for key in insertion order, or nil if the key
// is absent. The returned slice is the tree's own backing array; callers must
// not mutate it.
func (t *Tree) Get(key int64) []uint32 {
	cur := t.root
	for cur != t.sentinel {
		switch {
		case key == cur.key:
			return cur.postings
		case key < cur.key:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	return nil
}

// SizeDistinctKeys returns the number of nodes (distinct keys), not postings.
func (t *Tree) SizeDistinctKeys() int { return t.size }

// Keys returns all keys in ascending order.
func (t *Tree) Keys() []int64 {
	keys := make([]int64, 0, t.size)
	var walk func(n *node)
	walk = func(n *node) {
		if n == t.sentinel {
			return
		}
		walk(n.left)
		keys = append(keys, n.key)
		walk(n.right)
	}
	walk(t.root)
	return keys
}

// insertFixup restores the red-black invariants after the structural
// insertion of the red node z. Cases follow the classic formulation: case 1
// recolors when the uncle is red, case 2 rotates an inner child outward,
// case 3 recolors and rotates the grandparent.
func (t *Tree) insertFixup(z *node) {
	for z.parent.color == red {
		if z.parent == z.parent.parent.left {
			uncle := z.parent.parent.right
			if uncle.color == red {
				// Case 1: violation moves up two levels.
				z.parent.color = black
				uncle.color = black
				z.parent.parent.color = red
				z = z.parent.parent
				t.emit(Event{Kind: EventRecolor, Key: z.key})
			} else {
				if z == z.parent.right {
					// Case 2: convert inner child to outer.
					z = z.parent
					t.emit(Event{Kind: EventInnerCase, Key: z.key})
					t.rotateLeft(z)
				}
				// Case 3
				z.parent.color = black
				z.parent.parent.color = red
				t.emit(Event{Kind: EventOuterCase, Key: z.parent.parent.key})
				t.rotateRight(z.parent.parent)
			}
		} else { // mirror
			uncle := z.parent.parent.left
			if uncle.color == red {
				z.parent.color = black
				uncle.color = black
				z.parent.parent.color = red
				z = z.parent.parent
				t.emit(Event{Kind: EventRecolor, Key: z.key})
			} else {
				if z == z.parent.left {
					z = z.parent
					t.emit(Event{Kind: EventInnerCase, Key: z.key})
					t.rotateRight(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				t.emit(Event{Kind: EventOuterCase, Key: z.parent.parent.key})
				t.rotateLeft(z.parent.parent)
			}
		}
	}
	// Restores the black-root invariant even when the loop never ran.
	t.root.color = black
}

func (t *Tree) rotateLeft(x *node) {
	t.emit(Event{Kind: EventRotateLeft, Key: x.key})
	y := x.right
	x.right = y.left
	if y.left != t.sentinel {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree) rotateRight(x *node) {
	t.emit(Event{Kind: EventRotateRight, Key: x.key})
	y := x.left
	x.left = y.right
	if y.right != t.sentinel {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

func (t *Tree) emit(e Event) {
	if t.tracer != nil {
		t.tracer.TreeEvent(e)
	}
}
