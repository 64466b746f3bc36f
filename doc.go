// Package homelab bundles three small home-lab utilities behind a Go API.
// Each one has a matching binary under cmd/:
//
//   - [ExportLibrary] (cmd/plex-dump) dumps the movies and shows of a Plex
//     Media Server to a JSON file.
//   - [GenerateToken] (cmd/cwp-token) exchanges an access key pair for a
//     console API token.
//   - [RenderDiagram] (cmd/network-graph) renders the home hybrid-cloud
//     architecture diagram to an image.
//
// The three share nothing but the [Logger] interface.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named homelab:
//
//	import "github.com/kataras/homelab-tools" // package homelab
//
// # Quick start
//
//	result, err := homelab.ExportLibrary(ctx, homelab.ExportOptions{
//	    Host:       "http://localhost:32400",
//	    Token:      os.Getenv("PLEX_TOKEN"),
//	    OutputFile: "plex_media_dump.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Library.Movies), "movies")
//
// # Logging
//
// Pass a [Logger] implementation in the options to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Filesystems
//
// [ExportOptions.Fs] and [DiagramOptions.Fs] accept any afero.Fs, which makes
// it possible to render into memory. The OS filesystem is used when nil.
package homelab
