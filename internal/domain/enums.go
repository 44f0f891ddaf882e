package domain

// ItemKind is the variant tag of a TimelineItem. Every switch over it in the
// layout, mapping and interaction packages is exhaustive.
type ItemKind string

const (
	KindTask      ItemKind = "task"
	KindStage     ItemKind = "stage"
	KindMilestone ItemKind = "milestone"
)

// ValidItemKinds is the canonical set of accepted item kind strings.
var ValidItemKinds = map[string]bool{
	"task": true, "stage": true, "milestone": true,
}

type ItemStatus string

const (
	StatusTodo       ItemStatus = "todo"
	StatusInProgress ItemStatus = "in_progress"
	StatusBlocked    ItemStatus = "blocked"
	StatusDone       ItemStatus = "done"
)

// ValidItemStatuses is the canonical set of accepted item status strings.
var ValidItemStatuses = map[string]bool{
	"todo": true, "in_progress": true, "blocked": true, "done": true,
}

type GroupStatus string

const (
	GroupActive   GroupStatus = "active"
	GroupPaused   GroupStatus = "paused"
	GroupDone     GroupStatus = "done"
	GroupArchived GroupStatus = "archived"
)

// ChangeKind identifies what a ChangeIntent asks the host to do.
type ChangeKind string

const (
	ChangeMove        ChangeKind = "move"
	ChangeResizeStart ChangeKind = "resize-start"
	ChangeResizeEnd   ChangeKind = "resize-end"
	ChangeReparent    ChangeKind = "reparent"
)
