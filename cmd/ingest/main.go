package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/crateworks/ingest/internal/config"
	"github.com/crateworks/ingest/internal/models"
	"github.com/crateworks/ingest/internal/tarball"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: ingest <name> <version> <crate-file> [ingest.yaml]")
		os.Exit(1)
	}

	name := os.Args[1]
	version := os.Args[2]
	cratePath := os.Args[3]

	cfg := config.DefaultIngestConfig()
	if len(os.Args) > 4 {
		var err error
		cfg, err = config.LoadIngestConfig(os.Args[4])
		if err != nil {
			slog.Error("loading config", "error", err)
			os.Exit(1)
		}
	}

	maxUnpack, err := cfg.MaxUnpackBytes()
	if err != nil {
		slog.Error("resolving max unpack size", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(cratePath)
	if err != nil {
		slog.Error("opening crate file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	info, err := tarball.Process(name, version, f, maxUnpack)
	if err != nil {
		var terr *models.Error
		if errors.As(err, &terr) {
			slog.Error("tarball rejected", "reason", terr.Type, "error", err)
		} else {
			slog.Error("tarball rejected", "error", err)
		}
		os.Exit(1)
	}

	pkg := info.Manifest.Pkg()

	// Print summary
	fmt.Printf("Package: %s\n", pkg.Name)
	fmt.Printf("Version: %s\n", pkg.Version.Value)
	if readme, ok := pkg.ReadmePath(); ok {
		fmt.Printf("Readme: %s\n", readme)
	}
	if pkg.Repository.Value != "" {
		fmt.Printf("Repository: %s\n", pkg.Repository.Value)
	}
	if pkg.RustVersion.Defined {
		fmt.Printf("Rust version: %s\n", pkg.RustVersion.Value)
	}
	if info.VcsInfo != nil {
		fmt.Printf("VCS sha1: %s\n", info.VcsInfo.Git.Sha1)
		fmt.Printf("VCS path: %s\n", info.VcsInfo.PathInVcs)
	}
}
