package graph

import (
	"errors"
	"sort"
)

// ErrCycle is returned by TopoSort when the graph has no valid
// topological ordering.
var ErrCycle = errors.New("graph contains a cycle")

// Digraph is a small directed graph over string-named nodes. Nodes keep
// insertion order, which every traversal uses for tie-breaking so that
// results are reproducible. Duplicate edges collapse on insertion.
type Digraph struct {
	index map[string]int
	names []string
	succ  [][]int
	pred  [][]int
	edges map[[2]int]struct{}
}

func New() *Digraph {
	return &Digraph{
		index: make(map[string]int),
		edges: make(map[[2]int]struct{}),
	}
}

// Add inserts a node if not already present and returns its id.
func (g *Digraph) Add(name string) int {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := len(g.names)
	g.index[name] = id
	g.names = append(g.names, name)
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
	return id
}

// AddEdge inserts a directed edge, creating missing endpoints.
// A repeated pair is a no-op.
func (g *Digraph) AddEdge(source, target string) {
	s := g.Add(source)
	t := g.Add(target)
	key := [2]int{s, t}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}
	g.succ[s] = append(g.succ[s], t)
	g.pred[t] = append(g.pred[t], s)
}

// Nodes returns all node names in insertion order.
func (g *Digraph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

func (g *Digraph) NodeCount() int { return len(g.names) }

func (g *Digraph) EdgeCount() int { return len(g.edges) }

// TopoSort returns a topological ordering of the nodes, breaking ties by
// insertion order (Kahn's algorithm, always consuming the earliest-inserted
// ready node). Returns ErrCycle when no ordering exists.
func (g *Digraph) TopoSort() ([]string, error) {
	n := len(g.names)
	indegree := make([]int, n)
	for i := range g.pred {
		indegree[i] = len(g.pred[i])
	}
	done := make([]bool, n)
	order := make([]string, 0, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, ErrCycle
		}
		done[next] = true
		order = append(order, g.names[next])
		for _, t := range g.succ[next] {
			indegree[t]--
		}
	}
	return order, nil
}

// DegreeCentrality returns one score per node, aligned with Nodes():
// (in-degree + out-degree) / (n-1). A single-node graph scores zero.
func (g *Digraph) DegreeCentrality() []float64 {
	n := len(g.names)
	scores := make([]float64, n)
	if n < 2 {
		return scores
	}
	denom := float64(n - 1)
	for i := 0; i < n; i++ {
		scores[i] = float64(len(g.succ[i])+len(g.pred[i])) / denom
	}
	return scores
}

// WeaklyConnectedComponents enumerates maximal node groups reachable from
// one another when edge direction is ignored. Components are ordered by
// their earliest-inserted node, as are the nodes within each component.
func (g *Digraph) WeaklyConnectedComponents() [][]string {
	n := len(g.names)
	visited := make([]bool, n)
	var components [][]string
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var member []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			member = append(member, u)
			for _, v := range g.succ[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
			for _, v := range g.pred[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(member)
		names := make([]string, len(member))
		for i, id := range member {
			names[i] = g.names[id]
		}
		components = append(components, names)
	}
	return components
}
