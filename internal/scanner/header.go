package scanner

import (
	"bufio"
	"io"
	"strings"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// headerPeekBytes bounds how much of a mod's content ParseHeaderMeta
// will read: header directives always appear near the top of a mod
// file, and a mod's body can be large, so there is no reason to read
// past the first 4 KiB just to answer "what is this mod called".
const headerPeekBytes = 4096

// ParseHeaderMeta reads at most the first 4 KiB of r and extracts
// header metadata (mod name, description, version, icon path). It is
// safe to call repeatedly against a fresh reader each time; the result
// reflects only the bytes it was given and must be invalidated by the
// caller if the underlying content changes between calls.
func ParseHeaderMeta(r io.Reader) (model.HeaderMeta, error) {
	limited := io.LimitReader(r, headerPeekBytes)
	sc := bufio.NewScanner(limited)

	var meta model.HeaderMeta
	var inDescription bool
	var descParts []string

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if inDescription {
			if idx := strings.Index(line, `"`); idx >= 0 {
				descParts = append(descParts, line[:idx])
				meta.Description = strings.Join(descParts, "\n")
				inDescription = false
			} else {
				descParts = append(descParts, line)
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		if m := catalog.HeaderModName.FindStringSubmatch(line); m != nil {
			if meta.ModName == "" {
				meta.ModName = m[1]
			}
			continue
		}
		if m := catalog.HeaderDescOpen.FindStringSubmatch(line); m != nil {
			rest := m[1]
			if idx := strings.Index(rest, `"`); idx >= 0 {
				meta.Description = rest[:idx]
			} else {
				inDescription = true
				descParts = []string{rest}
			}
			continue
		}
		if m := catalog.HeaderVersion.FindStringSubmatch(line); m != nil {
			meta.Version = strings.TrimSpace(m[1])
			continue
		}
		if m := catalog.HeaderDomVersion.FindStringSubmatch(line); m != nil {
			meta.DomVersion = strings.TrimSpace(m[1])
			continue
		}
		if m := catalog.HeaderIcon.FindStringSubmatch(line); m != nil {
			meta.IconPath = m[1]
			continue
		}
	}
	return meta, sc.Err()
}
