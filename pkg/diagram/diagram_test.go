package diagram

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestMerge(t *testing.T) {
	base := Attrs{"shape": "box", "color": "red"}
	got := Merge(base, Attrs{"color": "blue"}, nil)

	assert.Equal(t, Attrs{"shape": "box", "color": "blue"}, got)
	assert.Equal(t, "red", base["color"], "inputs must not be modified")
}

func TestToDOT(t *testing.T) {
	g := New("net", "Test Graph", Attrs{"rankdir": "LR"})
	c := g.Subgraph("cluster_a", Attrs{"label": "A"})
	c.Node("n1", "Node \"One\"", Attrs{"shape": "box", "color": "red"})
	g.Node("n2", "", Attrs{"shape": "plaintext"})
	g.Edge("n1", "n2", Attrs{"style": "invis"})

	want := `// Test Graph
digraph "net" {
	"rankdir"="LR"
	subgraph "cluster_a" {
		"label"="A"
		"n1" ["color"="red" "label"="Node \"One\"" "shape"="box"]
	}
	"n2" ["label"="" "shape"="plaintext"]
	"n1" -> "n2" ["style"="invis"]
}
`
	assert.Equal(t, want, ToDOT(g))
}

func TestGraph_Builders(t *testing.T) {
	g := New("g", "", Attrs{"rankdir": "TB"})
	sub := g.Subgraph("cluster_x", Attrs{"label": "X"})
	sub.Node("inner", "Inner")
	n := g.Node("outer", "Outer")
	e := g.Edge("inner", "outer")

	assert.Equal(t, "", g.Root.Name)
	assert.Equal(t, "TB", g.Root.Attrs["rankdir"])
	require.Len(t, g.Root.Subgraphs, 1)
	assert.Same(t, sub, g.Root.Subgraphs[0])
	require.Len(t, g.Root.Nodes, 1)
	assert.Same(t, n, g.Root.Nodes[0])
	require.Len(t, g.Root.Edges, 1)
	assert.Same(t, e, g.Root.Edges[0])

	assert.Equal(t, []string{"outer", "inner"}, g.NodeIDs())
	assert.Same(t, sub, g.FindSubgraph("cluster_x"))
	assert.Nil(t, g.FindSubgraph("cluster_missing"))
}

func TestToDOT_DeclarationOrder(t *testing.T) {
	g := New("", "")
	g.Node("a", "A")
	g.Edge("a", "b")
	c := g.Subgraph("cluster_c")
	c.Node("b", "B")
	g.Node("z", "Z")
	g.Root.Edges = append(g.Root.Edges, &Edge{From: "z", To: "a"})

	want := `digraph {
	"a" ["label"="A"]
	"a" -> "b"
	subgraph "cluster_c" {
		"b" ["label"="B"]
	}
	"z" ["label"="Z"]
	"z" -> "a"
}
`
	assert.Equal(t, want, ToDOT(g))
}

func TestToDOT_Deterministic(t *testing.T) {
	first := ToDOT(HybridCloud())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ToDOT(HybridCloud()))
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "abc", want: `"abc"`},
		{name: "empty", in: "", want: `""`},
		{name: "quotes", in: `say "hi"`, want: `"say \"hi\""`},
		{name: "backslash", in: `a\b`, want: `"a\\b"`},
		{name: "newline", in: "a\nb", want: `"a\nb"`},
		{name: "unicode", in: "Pluto → Mars", want: `"Pluto → Mars"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestHybridCloud_Structure(t *testing.T) {
	g := HybridCloud()

	ids := g.NodeIDs()
	for _, want := range []string{
		"seedbox_qbit", "seedbox_ftp", "pluto_cockpit", "pluto_nfs", "mars_mount",
		"mars_plex", "mars_filezilla", "saturn", "neptune", "voyager",
		"absolute_bottom_ranker", "desc_title", "vis_A", "desc_E",
	} {
		assert.Contains(t, ids, want)
	}

	// Every edge endpoint is a declared node.
	declared := make(map[string]bool, len(ids))
	for _, id := range ids {
		declared[id] = true
	}
	var check func(s *Subgraph)
	check = func(s *Subgraph) {
		for _, e := range s.Edges {
			assert.True(t, declared[e.From], "undeclared edge source %q", e.From)
			assert.True(t, declared[e.To], "undeclared edge target %q", e.To)
		}
		for _, sub := range s.Subgraphs {
			check(sub)
		}
	}
	check(&g.Root)

	// Nesting: Pluto storage lives inside Pluto, inside the LAN, inside the overlay.
	tailscale := g.FindSubgraph("cluster_tailscale")
	require.NotNil(t, tailscale)
	require.NotNil(t, g.FindSubgraph("cluster_pluto_storage"))
	assert.Equal(t, "cluster_home", tailscale.Subgraphs[0].Name)
	assert.Equal(t, "cluster_pluto", tailscale.Subgraphs[0].Subgraphs[0].Name)
	assert.Equal(t, "cluster_pluto_storage", tailscale.Subgraphs[0].Subgraphs[0].Subgraphs[0].Name)

	legend := g.FindSubgraph("cluster_legend")
	require.NotNil(t, legend)
	selfLoops := 0
	for _, e := range legend.Edges {
		if e.From == e.To {
			selfLoops++
			assert.NotEqual(t, "invis", e.Attrs["style"])
		}
	}
	assert.Equal(t, 5, selfLoops)

	dot := ToDOT(g)
	assert.True(t, strings.HasPrefix(dot, "// Hybrid Cloud Architecture\ndigraph {\n"))
	assert.Contains(t, dot, `"fillcolor"="#E7DBF9:white"`)
	assert.Contains(t, dot, `"label"="Home Hybrid Cloud Architecture"`)

	ranker := strings.Index(dot, "\t\"absolute_bottom_ranker\" [")
	legendAt := strings.Index(dot, `subgraph "cluster_legend"`)
	require.Positive(t, ranker)
	require.Positive(t, legendAt)
	assert.Less(t, ranker, legendAt, "bottom ranker is declared before the legend")
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatPNG, FormatSVG, FormatJPG} {
		assert.NoError(t, ValidateFormat(f))
	}
	for _, f := range []string{"", "pdf", "PNG", "gif"} {
		assert.Error(t, ValidateFormat(f), f)
	}
}

func TestRender_SVG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(context.Background(), []byte(`digraph { a -> b }`), FormatSVG, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(context.Background(), []byte(`digraph { a -> b }`), "pdf", &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderFile_HybridCloudPNG(t *testing.T) {
	fs := afero.NewMemMapFs()

	n, err := RenderFile(context.Background(), fs, "out/hybrid_cloud_architecture.png", HybridCloud(), FormatPNG)
	require.NoError(t, err)
	assert.Positive(t, n)

	data, err := afero.ReadFile(fs, "out/hybrid_cloud_architecture.png")
	require.NoError(t, err)
	assert.Len(t, data, n)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "expected a PNG header")
}

func TestRenderFile_NoFileOnFailure(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := RenderFile(context.Background(), fs, "graph.pdf", HybridCloud(), "pdf")
	require.Error(t, err)

	exists, err := afero.Exists(fs, "graph.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}
