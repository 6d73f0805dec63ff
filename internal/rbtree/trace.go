package rbtree

// EventKind names a structural step taken during Insert.
type EventKind string

const (
	// EventInsert is a true structural insertion of a new key.
	EventInsert EventKind = "insert"
	// EventAppend is a duplicate-key posting append, no structural change.
	EventAppend EventKind = "append"
	// EventRecolor is the red-uncle fix-up case; the violation moves up two levels.
	EventRecolor EventKind = "fixup-recolor"
	// EventInnerCase is the inner-child fix-up case, resolved with one rotation.
	EventInnerCase EventKind = "fixup-inner"
	// EventOuterCase is the outer-child fix-up case; recolor then rotate the grandparent.
	EventOuterCase EventKind = "fixup-outer"
	// EventRotateLeft and EventRotateRight are single rotations around Key.
	EventRotateLeft  EventKind = "rotate-left"
	EventRotateRight EventKind = "rotate-right"
)

// Event describes one structural step. RowID is set for insert/append events.
type Event struct {
	Kind  EventKind
	Key   int64
	RowID uint32
}

// Tracer receives structural trace events and post-fix-up snapshots.
// Implementations are purely observational: they must not mutate the tree,
// and enabling or disabling a tracer never changes tree behavior. FixupDone
// runs after the fix-up of each structural insertion; implementations that do
// not want snapshots leave it empty.
type Tracer interface {
	TreeEvent(e Event)
	FixupDone(t *Tree)
}
