// Package rewrite implements the content-rewriting stages that run
// once the ID mapping is known: the pure per-line entity processor,
// the stateful spell-block processor, and the implicit-ID processor
// that turns unnumbered "#newX" directives into "#selectX <id>".
package rewrite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// idMatch is one recognized (kind, old id) reference within a line,
// plus the byte span of the numeric token so it can be substituted in
// place without disturbing surrounding whitespace or comments.
type idMatch struct {
	kind      catalog.EntityKind
	old       int
	spanStart int
	spanEnd   int
	signed    bool // true for a signed-argument directive (#code); the span may then include a leading '-'
}

// findIDMatch tries every catalog pattern against line and returns the
// first (kind, old-id) reference found, or nil if line references no
// entity by numeric id.
func findIDMatch(line string) *idMatch {
	for _, kind := range catalog.NewSelectKinds {
		if re := catalog.NewPattern(kind); re != nil {
			if loc := re.FindStringSubmatchIndex(line); loc != nil && loc[2] != -1 {
				return numericMatch(line, kind, loc[2], loc[3])
			}
		}
	}
	allKinds := append(append([]catalog.EntityKind{}, catalog.NewSelectKinds...), catalog.SelectOnlyKinds...)
	for _, kind := range allKinds {
		if re := catalog.SelectPattern(kind); re != nil {
			if loc := re.FindStringSubmatchIndex(line); loc != nil && loc[2] != -1 {
				return numericMatch(line, kind, loc[2], loc[3])
			}
		}
	}
	for _, re := range []*regexp.Regexp{catalog.SelectSpell, catalog.CopySpell, catalog.NextSpell} {
		if m := matchSpellRef(re, line); m != nil {
			return m
		}
	}
	for _, rd := range catalog.ReferenceDirectives {
		if loc := rd.Pattern.FindStringSubmatchIndex(line); loc != nil && loc[2] != -1 {
			return numericMatch(line, rd.Kind, loc[2], loc[3])
		}
	}
	if loc := catalog.EventCodeLine.FindStringSubmatchIndex(line); loc != nil && loc[2] != -1 {
		return signedMatch(line, catalog.EventCode, loc[2], loc[3])
	}
	return nil
}

func numericMatch(line string, kind catalog.EntityKind, start, end int) *idMatch {
	n, err := strconv.Atoi(line[start:end])
	if err != nil {
		return nil
	}
	return &idMatch{kind: kind, old: n, spanStart: start, spanEnd: end}
}

func signedMatch(line string, kind catalog.EntityKind, start, end int) *idMatch {
	n, err := strconv.Atoi(line[start:end])
	if err != nil {
		return nil
	}
	return &idMatch{kind: kind, old: n, spanStart: start, spanEnd: end, signed: true}
}

// matchSpellRef handles the three spell-reference patterns, which all
// share the shape "<directive> (<id>|"<name>")"; only the numeric
// form is remapped — name-based references are left unchanged.
func matchSpellRef(re *regexp.Regexp, line string) *idMatch {
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil || loc[2] == -1 {
		return nil
	}
	return numericMatch(line, catalog.Spell, loc[2], loc[3])
}

// ProcessLine rewrites line using mapping, returning the rewritten
// text, an audit comment (empty if nothing changed), and whether a
// substitution occurred.
func ProcessLine(line string, mapping *model.IdMapping) (rewritten string, audit string, changed bool) {
	m := findIDMatch(line)
	if m == nil {
		return line, "", false
	}

	lookupKey := m.old
	if m.signed && lookupKey < 0 {
		lookupKey = -lookupKey
	}
	newVal := mapping.Lookup(m.kind, lookupKey)
	if newVal == lookupKey {
		return line, "", false
	}

	replacement := strconv.Itoa(newVal)
	if m.signed && m.old < 0 {
		replacement = "-" + strconv.Itoa(newVal)
	}

	rewritten = line[:m.spanStart] + replacement + line[m.spanEnd:]
	audit = fmt.Sprintf("-- MOD MERGER: Remapped %s %d -> %d", displayKind(m.kind), lookupKey, newVal)
	return rewritten, audit, true
}

func displayKind(kind catalog.EntityKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
