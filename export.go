package homelab

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/kataras/homelab-tools/pkg/catalog"
	"github.com/kataras/homelab-tools/pkg/plex"
)

// DefaultExportFile is where ExportLibrary writes when no file is given.
const DefaultExportFile = "plex_media_dump.json"

// ExportOptions configures a library export.
type ExportOptions struct {
	Host       string   // URL or host:port, defaults to plex.DefaultHost
	Token      string   // X-Plex-Token
	OutputFile string   // defaults to DefaultExportFile
	Fs         afero.Fs // nil = OS filesystem
	Verbose    bool     // log every HTTP response
	Logger     Logger   // nil = no logging
}

// ExportResult describes a finished export.
type ExportResult struct {
	Server     *plex.Identity
	Library    *catalog.Library
	OutputFile string
}

// ExportLibrary connects to a Plex server, collects every movie and show of
// its library sections and writes them as JSON. Episodes are not exported.
// Any failure aborts the run before the file is written.
func ExportLibrary(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	log := logs{opts.Logger}

	if opts.Host == "" {
		opts.Host = plex.DefaultHost
	}
	if opts.OutputFile == "" {
		opts.OutputFile = DefaultExportFile
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	host, err := plex.NormalizeHost(opts.Host)
	if err != nil {
		return nil, err
	}

	log.info("Connecting to Plex at %s...", host)
	client := plex.NewClient(host, opts.Token,
		plex.WithLogger(opts.Logger),
		plex.WithVerbose(opts.Verbose),
		plex.WithVersion(Version),
	)

	server, err := client.Identity(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	log.info("Connection successful (%s, version %s).", server.FriendlyName, server.Version)

	sections, err := client.Sections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list library sections: %w", err)
	}

	lib := catalog.New()
	for _, section := range sections {
		if section.Type != plex.TypeMovie && section.Type != plex.TypeShow {
			log.info("Skipping section %s (type: %s)", section.Title, section.Type)
			continue
		}

		log.info("Processing section: %s (type: %s)", section.Title, section.Type)
		items, err := client.AllItems(ctx, section.Key)
		if err != nil {
			return nil, fmt.Errorf("list section %q: %w", section.Title, err)
		}

		added := 0
		for _, item := range items {
			if lib.Add(section.Type, item) {
				added++
			}
		}

		switch section.Type {
		case plex.TypeMovie:
			log.info("-> Found %d movies.", added)
		case plex.TypeShow:
			log.info("-> Found %d TV shows (series level).", added)
		}
	}

	log.info("Writing %s...", opts.OutputFile)
	if err := catalog.Write(opts.Fs, opts.OutputFile, lib); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	return &ExportResult{
		Server:     server,
		Library:    lib,
		OutputFile: opts.OutputFile,
	}, nil
}
