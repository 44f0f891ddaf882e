// Package depgraph resolves "must follow" relationships between timeline
// items and keeps them acyclic.
package depgraph

import (
	"sort"

	"github.com/alexanderramin/gantt/internal/domain"
)

// Graph is an adjacency map over an id-indexed arena of items. An edge
// from -> to means "to" depends on "from".
type Graph struct {
	order []string            // arena: ids in source order
	index map[string]int      // id -> position in order
	succ  map[string][]string // from -> dependents
	pred  map[string][]string // to -> prerequisites
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
	}
}

// Build creates a graph from every item's Dependencies. References to ids
// outside items and self-references are ignored. Edges that would close a
// cycle in the supplied data are dropped as well, so the result is always
// acyclic.
func Build(items []domain.TimelineItem) *Graph {
	g := New()
	for _, it := range items {
		g.AddNode(it.ID)
	}
	for _, it := range items {
		for _, depID := range it.Dependencies {
			if !g.Has(depID) || depID == it.ID {
				continue
			}
			g.AddEdge(depID, it.ID)
		}
	}
	return g
}

// AddNode registers id. Adding an existing id is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, s := range g.succ {
		n += len(s)
	}
	return n
}

// HasEdge reports whether to already depends on from.
func (g *Graph) HasEdge(from, to string) bool {
	return contains(g.succ[from], to)
}

// AddEdge inserts from -> to unless it would create a cycle. It returns
// false, leaving the graph unchanged, for unknown ids, self-loops and
// cyclic edges. Re-adding an existing edge returns true.
//
// The check tentatively inserts the edge and runs a depth-first search from
// the new target; meeting a node that is still on the recursion stack means
// the edge closed a cycle. Only the subgraph reachable from the target is
// visited.
func (g *Graph) AddEdge(from, to string) bool {
	if !g.Has(from) || !g.Has(to) || from == to {
		return false
	}
	if g.HasEdge(from, to) {
		return true
	}

	g.link(from, to)
	if g.cycleFrom(to) {
		g.unlink(from, to)
		return false
	}
	return true
}

// AddDependency records that itemID depends on dependsOnID.
func (g *Graph) AddDependency(itemID, dependsOnID string) bool {
	return g.AddEdge(dependsOnID, itemID)
}

// CanAddDependency reports whether AddDependency would succeed, without
// changing the graph.
func (g *Graph) CanAddDependency(itemID, dependsOnID string) bool {
	if g.HasEdge(dependsOnID, itemID) {
		return true
	}
	if !g.AddDependency(itemID, dependsOnID) {
		return false
	}
	g.unlink(dependsOnID, itemID)
	return true
}

// RemoveEdge deletes from -> to if present.
func (g *Graph) RemoveEdge(from, to string) {
	g.unlink(from, to)
}

func (g *Graph) link(from, to string) {
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
}

func (g *Graph) unlink(from, to string) {
	g.succ[from] = remove(g.succ[from], to)
	g.pred[to] = remove(g.pred[to], from)
}

// cycleFrom runs a DFS from start and reports whether any path revisits a
// node on the current recursion stack.
func (g *Graph) cycleFrom(start string) bool {
	return g.dfsCycle(start, make(map[string]bool))
}

// HasCycle runs a full DFS over every node. Build and AddEdge keep the graph
// acyclic, so this is a consistency check.
func (g *Graph) HasCycle() bool {
	visited := make(map[string]bool)
	for _, id := range g.order {
		if visited[id] {
			continue
		}
		if g.dfsCycle(id, visited) {
			return true
		}
	}
	return false
}

func (g *Graph) dfsCycle(start string, visited map[string]bool) bool {
	onStack := make(map[string]bool)
	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		for _, next := range g.succ[id] {
			if onStack[next] {
				return true
			}
			if !visited[next] && dfs(next) {
				return true
			}
		}
		onStack[id] = false
		return false
	}
	return dfs(start)
}

// Prerequisites returns the ids id directly depends on, in insertion order.
func (g *Graph) Prerequisites(id string) []string {
	return append([]string(nil), g.pred[id]...)
}

// Dependents returns the ids that directly depend on id, in insertion order.
func (g *Graph) Dependents(id string) []string {
	return append([]string(nil), g.succ[id]...)
}

// UnfinishedPrerequisites returns the direct prerequisites of id whose
// status, as reported by statusOf, is not done.
func (g *Graph) UnfinishedPrerequisites(id string, statusOf func(string) domain.ItemStatus) []string {
	var out []string
	for _, p := range g.pred[id] {
		if statusOf(p) != domain.StatusDone {
			out = append(out, p)
		}
	}
	return out
}

// Edges lists every edge ordered by the source position of the dependent
// item, then of the prerequisite.
func (g *Graph) Edges() []domain.DependencyEdge {
	var edges []domain.DependencyEdge
	for _, to := range g.order {
		preds := append([]string(nil), g.pred[to]...)
		sort.SliceStable(preds, func(i, j int) bool {
			return g.index[preds[i]] < g.index[preds[j]]
		})
		for _, from := range preds {
			edges = append(edges, domain.DependencyEdge{FromID: from, ToID: to})
		}
	}
	return edges
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func remove(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
