package main

import (
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/domtools/dommerge/internal/model"
)

// groupsFile is the on-disk shape of a --groups YAML document: a bare
// mapping from group name to the ordered list of member mod paths,
// resolved relative to the YAML file's own directory.
type groupsFile struct {
	Groups map[string][]string `yaml:"groups"`
}

// loadGroups reads path (if non-empty) and resolves it into ModGroups
// whose member ModFiles open real files on disk.
func loadGroups(path string) ([]model.ModGroup, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CLIError{Operation: "load mod groups", Cause: "cannot read groups file", Details: path, Underlying: err}
	}

	var gf groupsFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, &CLIError{Operation: "load mod groups", Cause: "invalid YAML", Details: path, Underlying: err}
	}

	base := filepath.Dir(path)
	groups := make([]model.ModGroup, 0, len(gf.Groups))
	for name, members := range gf.Groups {
		files := make([]model.ModFile, 0, len(members))
		for _, m := range members {
			p := m
			if !filepath.IsAbs(p) {
				p = filepath.Join(base, p)
			}
			files = append(files, fileModFile(p))
		}
		groups = append(groups, model.ModGroup{Name: name, Files: files})
	}
	return groups, nil
}

// fileModFile returns a ModFile whose Open reopens path fresh each call,
// matching the scan-then-write two-pass traversal every mod undergoes.
func fileModFile(path string) model.ModFile {
	return model.ModFile{
		Name: filepath.Base(path),
		Path: path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func loadMods(paths []string) []model.ModFile {
	out := make([]model.ModFile, 0, len(paths))
	for _, p := range paths {
		out = append(out, fileModFile(p))
	}
	return out
}
