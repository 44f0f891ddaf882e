package depgraph

import "github.com/alexanderramin/gantt/internal/domain"

// Point is a pixel coordinate.
type Point struct {
	X float64
	Y float64
}

// PositionedEdge is an edge whose endpoints are both laid out in the
// current frame, with the anchor points a connector is drawn between.
type PositionedEdge struct {
	Edge domain.DependencyEdge
	From domain.Position
	To   domain.Position

	// Start is the prerequisite's right edge, End the dependent's left edge,
	// both at the vertical centre of their rows.
	Start Point
	End   Point
}

// Backward reports whether the dependent starts left of where its
// prerequisite ends, which connector layers usually draw with a detour.
func (e PositionedEdge) Backward() bool {
	return e.End.X < e.Start.X
}

// EdgesWithPositions pairs every edge with its endpoint rectangles. Edges
// whose endpoints are missing from positions (collapsed stage, outside the
// window) are skipped.
func (g *Graph) EdgesWithPositions(positions map[string]domain.Position) []PositionedEdge {
	var out []PositionedEdge
	for _, e := range g.Edges() {
		from, ok := positions[e.FromID]
		if !ok {
			continue
		}
		to, ok := positions[e.ToID]
		if !ok {
			continue
		}
		out = append(out, PositionedEdge{
			Edge:  e,
			From:  from,
			To:    to,
			Start: Point{X: from.Right(), Y: from.MidY()},
			End:   Point{X: to.Left, Y: to.MidY()},
		})
	}
	return out
}
