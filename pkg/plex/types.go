package plex

// Response is the JSON envelope every Plex endpoint wraps its payload in.
type Response struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// MediaContainer is the body of a Plex response. Which of its slices are
// populated depends on the endpoint: /library/sections returns Directory
// entries, /library/sections/{key}/all returns Metadata entries.
type MediaContainer struct {
	Size              int        `json:"size"`
	TotalSize         int        `json:"totalSize"`
	Offset            int        `json:"offset"`
	FriendlyName      string     `json:"friendlyName,omitempty"`
	MachineIdentifier string     `json:"machineIdentifier,omitempty"`
	Version           string     `json:"version,omitempty"`
	Directory         []Section  `json:"Directory,omitempty"`
	Metadata          []Metadata `json:"Metadata,omitempty"`
}

// Identity describes the server answering at the configured host.
type Identity struct {
	FriendlyName      string
	MachineIdentifier string
	Version           string
}

// Section is a top-level library category such as "Movies" or "TV Shows".
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"` // movie, show, artist, photo
}

// Section types handled by the exporter.
const (
	TypeMovie = "movie"
	TypeShow  = "show"
)

// Metadata is a single library item. Movies and shows share the structure;
// LeafCount and ChildCount are only meaningful for shows (episode and season
// counts). Year and Rating are nil when the server does not report them.
type Metadata struct {
	RatingKey     string   `json:"ratingKey"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Year          *int     `json:"year,omitempty"`
	Summary       string   `json:"summary"`
	Rating        *float64 `json:"rating,omitempty"`
	ContentRating string   `json:"contentRating"`
	Studio        string   `json:"studio"`
	Genre         []Tag    `json:"Genre,omitempty"`
	Collection    []Tag    `json:"Collection,omitempty"`
	LeafCount     int      `json:"leafCount"`
	ChildCount    int      `json:"childCount"`
}

// Tag is a named label attached to an item (genre, collection, ...).
type Tag struct {
	Tag string `json:"tag"`
}

// Tags returns the tag names in order.
func Tags(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Tag)
	}
	return names
}
