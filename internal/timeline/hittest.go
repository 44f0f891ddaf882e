package timeline

import (
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/interaction"
)

// DefaultHandleWidth is the width of the resize grip at each end of a bar.
const DefaultHandleWidth = 6.0

// Hit is the item and control under a point.
type Hit struct {
	ItemID  string
	Control interaction.Control
}

// HitTest resolves a surface point against the current frame. Bars narrower
// than three grips have no handles so they stay movable; milestones never
// have handles.
func (o *Orchestrator) HitTest(x, y float64) (Hit, bool) {
	row, ok := o.layout.RowAt(y)
	if !ok || row.ItemID == "" {
		return Hit{}, false
	}
	pos, ok := o.frame.Positions[row.ItemID]
	if !ok || !pos.ContainsPoint(x, y) {
		return Hit{}, false
	}
	return Hit{ItemID: row.ItemID, Control: controlAt(row.ItemKind, pos, x, o.opts.HandleWidth)}, true
}

func controlAt(kind domain.ItemKind, pos domain.Position, x, handle float64) interaction.Control {
	if kind == domain.KindMilestone || handle <= 0 || pos.Width < 3*handle {
		return interaction.ControlBody
	}
	switch {
	case x < pos.Left+handle:
		return interaction.ControlLeftHandle
	case x >= pos.Right()-handle:
		return interaction.ControlRightHandle
	default:
		return interaction.ControlBody
	}
}
