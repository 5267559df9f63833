package cargo

import (
	"context"
	"fmt"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Metadata is the subset of `cargo metadata` output this tool uses.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
}

// Package is a package in the resolved dependency graph.
type Package struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	ID           string   `json:"id"`
	Source       *string  `json:"source"`
	ManifestPath string   `json:"manifest_path"`
	Targets      []Target `json:"targets"`
}

// IsLocal returns whether the package lives on the local file system (a
// workspace member or path dependency) rather than in a registry or git
// checkout.
func (p *Package) IsLocal() bool {
	return p.Source == nil
}

// Target is a single build target of a package.
type Target struct {
	Name       string   `json:"name"`
	Kind       []string `json:"kind"`
	CrateTypes []string `json:"crate_types"`
	SrcPath    string   `json:"src_path"`
}

// libraryKinds are the target kinds that make a target a library.
var libraryKinds = map[string]struct{}{
	"lib":        {},
	"rlib":       {},
	"dylib":      {},
	"cdylib":     {},
	"staticlib":  {},
	"proc-macro": {},
}

// IsLibrary returns whether the target is a library of any crate type.
func (t *Target) IsLibrary() bool {
	for _, kind := range t.Kind {
		if _, ok := libraryKinds[kind]; ok {
			return true
		}
	}

	return false
}

// Metadata runs `cargo metadata` for the crate and decodes its output.
func (r *Runner) Metadata(ctx context.Context) (*Metadata, error) {
	out, err := r.run(ctx, r.Env, "metadata", "--format-version", "1")
	if err != nil {
		return nil, err
	}

	return ParseMetadata([]byte(out.Stdout))
}

// ParseMetadata decodes the JSON output of `cargo metadata`.
func ParseMetadata(data []byte) (*Metadata, error) {
	meta := &Metadata{}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("failed to decode cargo metadata: %w", err)
	}

	return meta, nil
}

// LocalLibraryDirs returns the directories containing the root source file of
// every library target of every local package, in package order.
func LocalLibraryDirs(meta *Metadata) []string {
	var dirs []string
	for i := range meta.Packages {
		pkg := &meta.Packages[i]
		if !pkg.IsLocal() {
			continue
		}

		for j := range pkg.Targets {
			if target := &pkg.Targets[j]; target.IsLibrary() {
				dirs = append(dirs, filepath.Dir(target.SrcPath))
			}
		}
	}

	return dirs
}
