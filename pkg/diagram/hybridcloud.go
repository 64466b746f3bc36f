package diagram

const font = "Helvetica"

// Node styles.
var (
	serverStyle    = Attrs{"shape": "box3d", "style": "filled", "fillcolor": "#EEEEEE", "fontname": font}
	storageStyle   = Attrs{"shape": "cylinder", "style": "filled", "fillcolor": "#D9EDF7", "fontname": font}
	serviceStyle   = Attrs{"shape": "ellipse", "style": "filled", "fillcolor": "#D4EDDA", "fontname": font}
	containerStyle = Attrs{"shape": "box", "style": "filled", "fillcolor": "#FFF3CD", "fontname": font}
	deviceStyle    = Attrs{"shape": "octagon", "style": "filled", "fillcolor": "#F0E68C", "fontname": font}
	pcStyle        = Attrs{"shape": "box", "style": "filled", "fillcolor": "#E0E0E0", "fontname": font}
)

// Cluster colours.
const (
	cloudFill         = "#CCE5FF"
	tailscaleFill     = "#E7DBF9"
	tailscaleBorder   = "#B8A6D9"
	homeNetworkFill   = "#E6E6E6"
	clusterBorderGrey = "#5E5E5E"
)

// Data-flow edge styles, shared by the edges and their legend markers.
var (
	nfsLinkStyle    = Attrs{"style": "bold", "color": "#007BFF", "dir": "none", "penwidth": "2"}
	ftpStyle        = Attrs{"style": "dashed", "color": "#DC3545"}
	writePathStyle  = Attrs{"style": "bold", "color": "#FF8C00", "penwidth": "3"}
	nfsSyncStyle    = Attrs{"style": "dashed", "color": "#FF8C00"}
	streamReadStyle = Attrs{"style": "dashed", "color": "#28A745"}

	invisible  = Attrs{"style": "invis"}
	noRanking  = Attrs{"constraint": "false"}
	normalHead = Attrs{"arrowhead": "normal"}
)

// HybridCloudComment is the DOT comment of the HybridCloud graph.
const HybridCloudComment = "Hybrid Cloud Architecture"

// HybridCloud returns the home hybrid-cloud architecture: an off-site
// seedbox, the Tailscale overlay containing the home LAN servers and the
// end-user devices, the data flows between them and a legend pinned below
// everything else.
func HybridCloud() *Graph {
	g := New("", HybridCloudComment, Attrs{
		"rankdir":  "TB",
		"newrank":  "true",
		"label":    "Home Hybrid Cloud Architecture",
		"fontsize": "24",
		"fontname": font,
		"labelloc": "t",
	})

	cloud := g.Subgraph("cluster_cloud", Attrs{
		"label":       "Cloud (Off-Site)",
		"style":       "filled",
		"color":       clusterBorderGrey,
		"fillcolor":   cloudFill,
		"fontsize":    "18",
		"fontname":    font,
		"peripheries": "1",
	})
	seedbox := cloud.Subgraph("cluster_seedbox", serverStyle, Attrs{"label": "Cloud VM (Seedbox)"})
	seedbox.Node("seedbox_qbit", "qBittorrent", serviceStyle)
	seedbox.Node("seedbox_ftp", "FTP Server", serviceStyle)

	tailscale := g.Subgraph("cluster_tailscale", Attrs{
		"label":         "Tailscale Mesh Network (Overlay)",
		"style":         "filled",
		"color":         tailscaleBorder,
		"fillcolor":     tailscaleFill + ":white",
		"gradientangle": "90",
		"fontsize":      "20",
		"fontname":      font,
	})

	home := tailscale.Subgraph("cluster_home", Attrs{
		"label":     "Home Network (LAN)",
		"style":     "filled",
		"color":     clusterBorderGrey,
		"fillcolor": homeNetworkFill,
		"fontsize":  "16",
		"fontname":  font,
	})

	pluto := home.Subgraph("cluster_pluto", serverStyle, Attrs{"label": "Pluto (Fedora NAS)"})
	pluto.Node("pluto_cockpit", "Cockpit Mgmt", serviceStyle)
	plutoStorage := pluto.Subgraph("cluster_pluto_storage", storageStyle, Attrs{"label": "12TB LVM Storage (/mnt/media)"})
	plutoStorage.Node("pluto_nfs", "NFS Server", serviceStyle)

	mars := home.Subgraph("cluster_mars", serverStyle, Attrs{"label": "Mars (Arch Linux, Docker Host)"})
	mars.Node("mars_mount", "NFS Client Mount Point", Attrs{"shape": "folder", "style": "filled", "fillcolor": "#D6B08E"})
	docker := mars.Subgraph("cluster_docker", Attrs{"label": "Docker Containers"})
	docker.Node("mars_plex", "Plex Server", containerStyle)
	docker.Node("mars_filezilla", "FileZilla Web App (FTP)", containerStyle)

	home.Node("saturn", "Saturn (Windows PC)", pcStyle)

	tailscale.Node("neptune", "Neptune (MacBook Air)", deviceStyle)
	tailscale.Node("voyager", "Voyager (iPhone)", deviceStyle)

	// Data flows.
	g.Edge("pluto_nfs", "mars_mount", nfsLinkStyle, noRanking)
	g.Edge("seedbox_ftp", "mars_filezilla", ftpStyle, Attrs{"label": "FTP Protocol Connection"})
	g.Edge("mars_filezilla", "mars_mount", writePathStyle, normalHead, noRanking, Attrs{"label": "Data Write Path (FileZilla to Mount)"})
	g.Edge("mars_mount", "pluto_nfs", nfsSyncStyle, normalHead, noRanking)
	g.Edge("mars_plex", "mars_mount", streamReadStyle, noRanking, Attrs{"label": "Media Stream Read"})

	// Pin the legend below the lowest devices.
	g.Node("absolute_bottom_ranker", "", Attrs{"shape": "plaintext", "width": "0", "height": "0"})
	g.Edge("voyager", "absolute_bottom_ranker", invisible, Attrs{"weight": "1000"})
	g.Edge("saturn", "absolute_bottom_ranker", invisible, Attrs{"weight": "1000"})

	legend := g.Subgraph("cluster_legend", Attrs{
		"style":       "filled",
		"color":       "#555555",
		"fillcolor":   "#FFFFF0",
		"peripheries": "0",
		"label":       "",
	})
	legend.Node("desc_title", "Legend", Attrs{"shape": "plaintext", "fontsize": "16"})

	entries := []struct {
		key    string
		text   string
		marker Attrs
	}{
		{"A", "NFS v4 Link (Blue, Bold)", nfsLinkStyle},
		{"B", "FTP Protocol (Red, Dashed)", Merge(ftpStyle, Attrs{"dir": "forward"})},
		{"C", "Data Write Path (Orange, Bold)", Merge(writePathStyle, Attrs{"dir": "forward"})},
		{"D", "NFS Sync Write (Orange, Dashed)", Merge(nfsSyncStyle, Attrs{"dir": "forward"})},
		{"E", "Media Stream Read (Green, Dashed)", Merge(streamReadStyle, Attrs{"dir": "forward"})},
	}

	marker := Attrs{"shape": "none", "width": "0.1", "height": "0.1"}
	for _, e := range entries {
		legend.Node("vis_"+e.key, "", marker)
		legend.Node("desc_"+e.key, e.text, Attrs{"shape": "plaintext"})
	}

	// Lay the entries out horizontally: marker beside its description, each
	// description followed by the next marker.
	for _, e := range entries {
		legend.Edge("vis_"+e.key, "desc_"+e.key, invisible, Attrs{"weight": "10"})
	}
	prev := "desc_title"
	for _, e := range entries {
		legend.Edge(prev, "vis_"+e.key, invisible)
		prev = "desc_" + e.key
	}

	// Visible self-loops draw each line style next to its description.
	for _, e := range entries {
		legend.Edge("vis_"+e.key, "vis_"+e.key, e.marker)
	}

	g.Edge("absolute_bottom_ranker", "desc_title", invisible, Attrs{"constraint": "true", "weight": "1000"})

	return g
}
