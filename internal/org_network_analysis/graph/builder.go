package graph

import (
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/navigara/navigara-backend/internal/org_network_analysis/domain"
)

// Member is one node of the collaboration graph.
type Member struct {
	domain.Person
	// composite score, fixed at build time
	Score float64
}

type Edge struct {
	Source string
	Target string
	Label  string
}

// Graph is an undirected collaboration graph. It stores at most one edge per
// unordered pair of people and is owned by a single analysis call.
type Graph struct {
	g       *simple.UndirectedGraph
	members []Member
	index   map[string]int64
	// unordered pairs in order of first appearance, oriented as first seen
	pairs [][2]int64
}

// collabEdge carries the project label on the gonum edge.
type collabEdge struct {
	F, T  gonum.Node
	Label string
}

func (e collabEdge) From() gonum.Node { return e.F }
func (e collabEdge) To() gonum.Node   { return e.T }
func (e collabEdge) ReversedEdge() gonum.Edge {
	return collabEdge{F: e.T, T: e.F, Label: e.Label}
}

// Build constructs the graph. Persons sharing an id collapse into the node
// created by the first of them, carrying the attributes of the last one.
// Collaborations whose endpoints are unknown, or that join a person to
// themselves, are skipped. Repeated pairs keep one edge with the last label.
func Build(persons []domain.Person, collabs []domain.Collaboration) *Graph {
	b := &Graph{
		g:     simple.NewUndirectedGraph(),
		index: make(map[string]int64, len(persons)),
	}

	for _, p := range persons {
		if id, ok := b.index[p.ID]; ok {
			b.members[id] = Member{Person: p, Score: p.CompositeScore()}
			continue
		}
		id := int64(len(b.members))
		b.index[p.ID] = id
		b.members = append(b.members, Member{Person: p, Score: p.CompositeScore()})
		b.g.AddNode(simple.Node(id))
	}

	for _, c := range collabs {
		u, okU := b.index[c.SourceID]
		v, okV := b.index[c.TargetID]
		if !okU || !okV || u == v {
			continue
		}
		if !b.g.HasEdgeBetween(u, v) {
			b.pairs = append(b.pairs, [2]int64{u, v})
		}
		b.g.SetEdge(collabEdge{F: simple.Node(u), T: simple.Node(v), Label: c.ProjectLabel})
	}

	return b
}

func (b *Graph) NodeCount() int { return len(b.members) }

func (b *Graph) EdgeCount() int { return len(b.pairs) }

// Members returns the nodes in order of first appearance.
func (b *Graph) Members() []Member { return b.members }

func (b *Graph) Lookup(personID string) (Member, bool) {
	id, ok := b.index[personID]
	if !ok {
		return Member{}, false
	}
	return b.members[id], true
}

// Degree is the number of distinct collaborators of the i-th member.
func (b *Graph) Degree(i int) int {
	return b.g.From(int64(i)).Len()
}

func (b *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(b.pairs))
	for _, pr := range b.pairs {
		e := Edge{
			Source: b.members[pr[0]].ID,
			Target: b.members[pr[1]].ID,
		}
		if ce, ok := b.g.EdgeBetween(pr[0], pr[1]).(collabEdge); ok {
			e.Label = ce.Label
		}
		out = append(out, e)
	}
	return out
}

// Components returns the person ids of every connected component. Members
// within a component, and the components themselves, follow first-appearance
// order so results are stable across calls.
func (b *Graph) Components() [][]string {
	comps := topo.ConnectedComponents(b.g)

	ids := make([][]int64, 0, len(comps))
	for _, comp := range comps {
		nodes := make([]int64, 0, len(comp))
		for _, n := range comp {
			nodes = append(nodes, n.ID())
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
		ids = append(ids, nodes)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i][0] < ids[j][0] })

	out := make([][]string, 0, len(ids))
	for _, nodes := range ids {
		comp := make([]string, 0, len(nodes))
		for _, id := range nodes {
			comp = append(comp, b.members[id].ID)
		}
		out = append(out, comp)
	}
	return out
}
