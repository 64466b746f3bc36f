// Package diagram describes static Graphviz diagrams as plain Go values,
// formats them as DOT and renders them to images with an embedded Graphviz.
package diagram

import "sort"

// Attrs are Graphviz attributes (shape, style, color, label, ...).
type Attrs map[string]string

// Merge returns a new Attrs containing all given sets; later sets win.
func Merge(sets ...Attrs) Attrs {
	out := make(Attrs)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

func (a Attrs) keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Node is a graph vertex.
type Node struct {
	ID    string
	Label string
	Attrs Attrs
}

// Edge connects two nodes by ID.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

type stmtKind uint8

const (
	nodeStmt stmtKind = iota
	edgeStmt
	subgraphStmt
)

// Subgraph groups nodes and edges. Subgraphs whose name starts with
// "cluster" are drawn as boxes by Graphviz.
//
// Statements added through Node, Edge and Subgraph are formatted in the order
// they were declared. Items appended to the slices directly follow them.
type Subgraph struct {
	Name      string
	Attrs     Attrs
	Nodes     []*Node
	Edges     []*Edge
	Subgraphs []*Subgraph

	order []stmtKind
}

// Node declares a node inside s and returns it.
func (s *Subgraph) Node(id, label string, attrs ...Attrs) *Node {
	n := &Node{ID: id, Label: label, Attrs: Merge(attrs...)}
	s.Nodes = append(s.Nodes, n)
	s.order = append(s.order, nodeStmt)
	return n
}

// Edge declares an edge inside s and returns it.
func (s *Subgraph) Edge(from, to string, attrs ...Attrs) *Edge {
	e := &Edge{From: from, To: to, Attrs: Merge(attrs...)}
	s.Edges = append(s.Edges, e)
	s.order = append(s.order, edgeStmt)
	return e
}

// Subgraph declares a nested subgraph and returns it.
func (s *Subgraph) Subgraph(name string, attrs ...Attrs) *Subgraph {
	sub := &Subgraph{Name: name, Attrs: Merge(attrs...)}
	s.Subgraphs = append(s.Subgraphs, sub)
	s.order = append(s.order, subgraphStmt)
	return sub
}

// Graph is a directed graph. Graph-level attributes and top-level statements
// live on Root; Root.Name is not used.
type Graph struct {
	Name    string
	Comment string
	Root    Subgraph
}

// New creates an empty directed graph.
func New(name, comment string, attrs ...Attrs) *Graph {
	return &Graph{Name: name, Comment: comment, Root: Subgraph{Attrs: Merge(attrs...)}}
}

// Node declares a top-level node.
func (g *Graph) Node(id, label string, attrs ...Attrs) *Node {
	return g.Root.Node(id, label, attrs...)
}

// Edge declares a top-level edge.
func (g *Graph) Edge(from, to string, attrs ...Attrs) *Edge {
	return g.Root.Edge(from, to, attrs...)
}

// Subgraph declares a top-level subgraph.
func (g *Graph) Subgraph(name string, attrs ...Attrs) *Subgraph {
	return g.Root.Subgraph(name, attrs...)
}

// NodeIDs returns the IDs of all nodes declared anywhere in g, in
// declaration order (depth first).
func (g *Graph) NodeIDs() []string {
	var ids []string
	var walk func(s *Subgraph)
	walk = func(s *Subgraph) {
		for _, n := range s.Nodes {
			ids = append(ids, n.ID)
		}
		for _, sub := range s.Subgraphs {
			walk(sub)
		}
	}
	walk(&g.Root)
	return ids
}

// FindSubgraph returns the subgraph with the given name, or nil.
func (g *Graph) FindSubgraph(name string) *Subgraph {
	var find func(s *Subgraph) *Subgraph
	find = func(s *Subgraph) *Subgraph {
		if s.Name == name {
			return s
		}
		for _, sub := range s.Subgraphs {
			if found := find(sub); found != nil {
				return found
			}
		}
		return nil
	}
	return find(&g.Root)
}
