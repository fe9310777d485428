// Package scanner implements the per-mod line-by-line state machine
// that turns a mod file's raw text into a model.ModDefinition. It never
// rewrites content — only classifies and records entity references.
package scanner

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// frameKind distinguishes a spell block (which needs #damage
// classification tracked across lines) from every other kind of block,
// whose interior lines are classified the same way top-level lines are.
type frameKind int

const (
	frameOther frameKind = iota
	frameSpell
)

// blockOpenKinds are the EntityKinds whose #new<kind>/#select<kind>
// directive opens a #end-terminated block per the grammar in spec §6
// ("#newevent, #newnation, each #new<monster|item|weapon|armor|site>").
// NameType and Enchantment directives are single-line, with no block.
var blockOpenKinds = []catalog.EntityKind{
	catalog.Monster, catalog.Weapon, catalog.Armor, catalog.Item, catalog.Site, catalog.Nation,
}

// Scan reads r fully (mod's name is used only for diagnostics) and
// returns the resulting ModDefinition, or a *model.ParseError wrapping
// the first malformed line encountered.
func Scan(modFileName string, r io.Reader) (*model.ModDefinition, error) {
	def := model.NewModDefinition("")
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		stack          []frameKind
		inDescription  bool
		effectKind     catalog.EffectKind
		effectSeen     bool
		lineNo         int
		modNameSet     bool
	)

	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)

		if inDescription {
			if strings.Contains(line, `"`) {
				inDescription = false
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		// Header directives, recognized regardless of block depth since
		// they cannot legally appear mid-block, but a tolerant scanner
		// doesn't need to reject that — it just records whichever comes
		// first.
		if m := catalog.HeaderModName.FindStringSubmatch(line); m != nil {
			if !modNameSet {
				def.ModName = m[1]
				modNameSet = true
			}
			continue
		}
		if m := catalog.HeaderDescOpen.FindStringSubmatch(line); m != nil {
			rest := m[1]
			if !strings.Contains(rest, `"`) {
				inDescription = true
			}
			continue
		}
		if catalog.HeaderVersion.MatchString(line) || catalog.HeaderDomVersion.MatchString(line) || catalog.HeaderIcon.MatchString(line) {
			continue
		}

		top := frameOther
		inBlock := len(stack) > 0
		if inBlock {
			top = stack[len(stack)-1]
		}

		if inBlock && top == frameSpell {
			if catalog.BlockEnd.MatchString(line) {
				stack = stack[:len(stack)-1]
				effectKind = catalog.EffectNone
				effectSeen = false
				continue
			}
			if m := catalog.Effect.FindStringSubmatch(line); m != nil {
				id, _ := strconv.Atoi(m[1])
				effectKind = catalog.ClassifyEffect(id)
				effectSeen = true
				continue
			}
			if m := catalog.CopySpell.FindStringSubmatch(line); m != nil {
				if !effectSeen {
					if m[1] != "" {
						id, _ := strconv.Atoi(m[1])
						if catalog.IsKnownSummoningSpellID(id) {
							effectKind = catalog.EffectSummoning
						}
					} else if catalog.IsKnownSummoningSpellName(m[2]) {
						effectKind = catalog.EffectSummoning
					}
				}
				registerSpellReference(def, m)
				continue
			}
			if m := catalog.Damage.FindStringSubmatch(line); m != nil {
				n, err := strconv.Atoi(m[1])
				if err != nil {
					return nil, &model.ParseError{Mod: modFileName, Line: lineNo, Text: raw, Cause: "malformed #damage argument", Under: err}
				}
				switch effectKind {
				case catalog.EffectSummoning:
					if n > 0 {
						registerID(def, catalog.Monster, n)
					} else if n < 0 {
						registerID(def, catalog.Montag, -n)
					}
				case catalog.EffectEnchantment:
					registerID(def, catalog.Enchantment, n)
				}
				continue
			}
			if m := catalog.NextSpell.FindStringSubmatch(line); m != nil {
				registerSpellReference(def, m)
				continue
			}
			if m := catalog.SelectSpell.FindStringSubmatch(line); m != nil {
				registerSpellReference(def, m)
				continue
			}
			// Unrecognized directive inside a spell block: forward
			// compatibility, ignore.
			continue
		}

		if catalog.BlockEnd.MatchString(line) {
			if inBlock {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if m := catalog.NewSpell.FindStringSubmatch(line); m != nil {
			def.Entity(catalog.Spell).ImplicitDefinitions++
			stack = append(stack, frameSpell)
			effectKind = catalog.EffectNone
			effectSeen = false
			continue
		}
		if m := catalog.SelectSpell.FindStringSubmatch(line); m != nil {
			registerSpellReference(def, m)
			stack = append(stack, frameSpell)
			effectKind = catalog.EffectNone
			effectSeen = false
			continue
		}

		if matched := tryGenericDispatch(def, line); matched {
			if opensBlock(line) {
				stack = append(stack, frameOther)
			}
			continue
		}

		// "#newevent" has no EntityKind of its own; it only opens a
		// block whose interior #code line registers an EventCode.
		if strings.HasPrefix(strings.ToLower(line), "#newevent") {
			stack = append(stack, frameOther)
			continue
		}

		// Unknown "#" directive: forward compatibility, ignore.
	}
	if err := sc.Err(); err != nil {
		return nil, &model.ParseError{Mod: modFileName, Line: lineNo, Text: "", Cause: "scanner I/O error", Under: err}
	}
	return def, nil
}

// registerSpellReference records a #selectspell/#copyspell/#nextspell
// numeric reference against the Spell kind. Name-based references
// (group 2 non-empty) are not recorded.
func registerSpellReference(def *model.ModDefinition, m []string) {
	if len(m) < 2 {
		return
	}
	if m[1] != "" {
		id, err := strconv.Atoi(m[1])
		if err == nil {
			registerID(def, catalog.Spell, id)
		}
	}
}

// registerID classifies id for kind as a vanilla edit or a
// modding-range definition, per the uniform rule spec §4.2 bullet 5
// describes.
func registerID(def *model.ModDefinition, kind catalog.EntityKind, id int) {
	e := def.Entity(kind)
	if catalog.InVanilla(kind, id) {
		e.VanillaEditedIDs[id] = struct{}{}
		return
	}
	if catalog.InModding(kind, id) {
		e.DefinedIDs[id] = struct{}{}
	}
}

// tryGenericDispatch applies rule 5: any numbered entity line
// registers per kind/range; unnumbered #newX lines increment implicit
// counters. Returns whether the line matched something in the catalog.
func tryGenericDispatch(def *model.ModDefinition, line string) bool {
	for _, kind := range catalog.NewSelectKinds {
		if re := catalog.NewPattern(kind); re != nil {
			if m := re.FindStringSubmatch(line); m != nil {
				if m[1] == "" {
					def.Entity(kind).ImplicitDefinitions++
				} else {
					id, err := strconv.Atoi(m[1])
					if err == nil {
						registerID(def, kind, id)
					}
				}
				return true
			}
		}
	}
	for _, kind := range append(append([]catalog.EntityKind{}, catalog.NewSelectKinds...), catalog.SelectOnlyKinds...) {
		if re := catalog.SelectPattern(kind); re != nil {
			if m := re.FindStringSubmatch(line); m != nil {
				id, err := strconv.Atoi(m[1])
				if err == nil {
					registerID(def, kind, id)
				}
				return true
			}
		}
	}
	for _, rd := range catalog.ReferenceDirectives {
		if m := rd.Pattern.FindStringSubmatch(line); m != nil {
			id, err := strconv.Atoi(m[1])
			if err == nil {
				def.Entity(rd.Kind).Referenced[id] = struct{}{}
			}
			return true
		}
	}
	if m := catalog.EventCodeLine.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			if n < 0 {
				n = -n
			}
			registerID(def, catalog.EventCode, n)
		}
		return true
	}
	return false
}

// opensBlock reports whether line is a #new<kind>/#select<kind>
// directive for one of blockOpenKinds, which per spec §6 opens a
// #end-terminated block.
func opensBlock(line string) bool {
	for _, kind := range blockOpenKinds {
		if re := catalog.NewPattern(kind); re != nil && re.MatchString(line) {
			return true
		}
		if re := catalog.SelectPattern(kind); re != nil && re.MatchString(line) {
			return true
		}
	}
	return false
}
