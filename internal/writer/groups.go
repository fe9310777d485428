package writer

import (
	"fmt"
	"io"

	"github.com/domtools/dommerge/internal/model"
)

// resolvedMod is one entry in the pipeline's working order: a name to
// scan/allocate/write under, an Open that yields its (possibly
// concatenated) content, and the original files that back it — for a
// plain mod these are the same file; for a mod group they are every
// member, tracked separately so resource copying still walks each
// original directory (spec §4.8 step 2).
type resolvedMod struct {
	Name      string
	Open      func() (io.ReadCloser, error)
	Originals []model.ModFile
}

// resolveGroups expands groups into resolvedMods alongside any mods
// listed individually, preserving input order: spec §4.8 step 2 treats
// a mod group as one concatenated virtual mod during parsing/mapping,
// with banner comments demarcating the original filenames.
func resolveGroups(mods []model.ModFile, groups []model.ModGroup) []resolvedMod {
	out := make([]resolvedMod, 0, len(mods)+len(groups))
	for _, f := range mods {
		f := f
		out = append(out, resolvedMod{
			Name:      f.Name,
			Open:      f.Open,
			Originals: []model.ModFile{f},
		})
	}
	for _, g := range groups {
		g := g
		out = append(out, resolvedMod{
			Name:      g.Name,
			Open:      func() (io.ReadCloser, error) { return openGroup(g) },
			Originals: g.Files,
		})
	}
	return out
}

// openGroup concatenates every member file's content into one stream,
// inserting a banner comment ahead of each member so the scanner's
// line numbers and the writer's output both read as one virtual mod
// demarcated by source.
func openGroup(g model.ModGroup) (io.ReadCloser, error) {
	var readers []io.Reader
	var closers []io.Closer
	for _, f := range g.Files {
		rc, err := f.Open()
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, fmt.Errorf("open group %q member %q: %w", g.Name, f.Name, err)
		}
		closers = append(closers, rc)
		banner := fmt.Sprintf("-- MOD MERGER: begin group member %s\n", f.Name)
		readers = append(readers, &banneredReader{banner: []byte(banner), body: rc})
	}
	return &multiReadCloser{r: io.MultiReader(readers...), closers: closers}, nil
}

// banneredReader prepends banner to the first read from body.
type banneredReader struct {
	banner []byte
	body   io.Reader
}

func (b *banneredReader) Read(p []byte) (int, error) {
	if len(b.banner) > 0 {
		n := copy(p, b.banner)
		b.banner = b.banner[n:]
		return n, nil
	}
	return b.body.Read(p)
}

type multiReadCloser struct {
	r       io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Read(p []byte) (int, error) { return m.r.Read(p) }

func (m *multiReadCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
