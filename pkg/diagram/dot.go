package diagram

import (
	"fmt"
	"strings"
)

// ToDOT formats g as Graphviz DOT source. Output is deterministic: attributes
// are sorted by key and statements keep their declaration order.
func ToDOT(g *Graph) string {
	var sb strings.Builder

	if g.Comment != "" {
		sb.WriteString(fmt.Sprintf("// %s\n", g.Comment))
	}
	if g.Name == "" {
		sb.WriteString("digraph {\n")
	} else {
		sb.WriteString(fmt.Sprintf("digraph %s {\n", quote(g.Name)))
	}
	writeBody(&sb, &g.Root, 1)
	sb.WriteString("}\n")

	return sb.String()
}

func writeBody(sb *strings.Builder, s *Subgraph, depth int) {
	indent := strings.Repeat("\t", depth)

	for _, k := range s.Attrs.keys() {
		sb.WriteString(fmt.Sprintf("%s%s=%s\n", indent, quote(k), quote(s.Attrs[k])))
	}

	var ni, ei, si int
	for _, kind := range s.order {
		switch {
		case kind == nodeStmt && ni < len(s.Nodes):
			writeNode(sb, indent, s.Nodes[ni])
			ni++
		case kind == edgeStmt && ei < len(s.Edges):
			writeEdge(sb, indent, s.Edges[ei])
			ei++
		case kind == subgraphStmt && si < len(s.Subgraphs):
			writeSubgraph(sb, indent, s.Subgraphs[si], depth)
			si++
		}
	}

	for ; si < len(s.Subgraphs); si++ {
		writeSubgraph(sb, indent, s.Subgraphs[si], depth)
	}
	for ; ni < len(s.Nodes); ni++ {
		writeNode(sb, indent, s.Nodes[ni])
	}
	for ; ei < len(s.Edges); ei++ {
		writeEdge(sb, indent, s.Edges[ei])
	}
}

func writeSubgraph(sb *strings.Builder, indent string, sub *Subgraph, depth int) {
	sb.WriteString(fmt.Sprintf("%ssubgraph %s {\n", indent, quote(sub.Name)))
	writeBody(sb, sub, depth+1)
	sb.WriteString(fmt.Sprintf("%s}\n", indent))
}

func writeNode(sb *strings.Builder, indent string, n *Node) {
	attrs := n.Attrs
	if n.Label != "" || attrs["label"] == "" {
		attrs = Merge(attrs, Attrs{"label": n.Label})
	}
	sb.WriteString(fmt.Sprintf("%s%s%s\n", indent, quote(n.ID), attrList(attrs)))
}

func writeEdge(sb *strings.Builder, indent string, e *Edge) {
	sb.WriteString(fmt.Sprintf("%s%s -> %s%s\n", indent, quote(e.From), quote(e.To), attrList(e.Attrs)))
}

func attrList(a Attrs) string {
	if len(a) == 0 {
		return ""
	}

	parts := make([]string, 0, len(a))
	for _, k := range a.keys() {
		parts = append(parts, fmt.Sprintf("%s=%s", quote(k), quote(a[k])))
	}
	return " [" + strings.Join(parts, " ") + "]"
}

// quote returns s as a double-quoted DOT ID.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
