package writer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
	"github.com/domtools/dommerge/internal/rewrite"
)

// blockOpenKinds mirrors the scanner's own table (spec §6 grammar):
// these kinds' #new/#select directives open a #end-terminated block
// whose interior is otherwise processed exactly like a top-level line.
var blockOpenKinds = []catalog.EntityKind{
	catalog.Monster, catalog.Weapon, catalog.Armor, catalog.Item, catalog.Site, catalog.Nation,
}

func opensGenericBlock(line string) bool {
	for _, kind := range blockOpenKinds {
		if re := catalog.NewPattern(kind); re != nil && re.MatchString(line) {
			return true
		}
		if re := catalog.SelectPattern(kind); re != nil && re.MatchString(line) {
			return true
		}
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "#newevent")
}

// writeFreshHeader emits the output mod's own header block, built
// entirely from configuration — spec §4.8 step 5a: never copied from
// any input mod.
func writeFreshHeader(w *bufio.Writer, cfg *model.MergeConfig) error {
	lines := []string{
		fmt.Sprintf("#modname %q", cfg.ModName),
	}
	if cfg.Description != "" {
		lines = append(lines, fmt.Sprintf("#description %q", cfg.Description))
	}
	if cfg.Version != "" {
		lines = append(lines, "#version "+cfg.Version)
	}
	if cfg.IconPath != "" {
		lines = append(lines, fmt.Sprintf("#icon %q", cfg.IconPath))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// frameKind mirrors scanner.frameKind locally; the writer's own block
// stack only needs to distinguish spell blocks (which buffer) from
// everything else (which streams straight through).
type frameKind int

const (
	frameOther frameKind = iota
	frameSpell
)

// streamMod copies one resolved mod's content into w, rewriting IDs
// via mapped.Mapping and converting unnumbered declarations to
// #select<kind> <assigned_id> using mapped's pre-allocated implicit
// IDs, in source order (spec §4.6, §4.7).
func streamMod(w *bufio.Writer, name string, r io.Reader, mapped *model.MappedModDefinition, lookup rewrite.SpellEffectLookup) error {
	if _, err := fmt.Fprintf(w, "-- MOD MERGER: source: %s\n", name); err != nil {
		return err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		stack         []frameKind
		inDescription bool
		spellProc     = rewrite.NewSpellBlockProcessor(lookup)
		seen          = make(map[catalog.EntityKind]int, len(catalog.Kinds))
	)

	emit := func(line string) error {
		_, err := fmt.Fprintln(w, line)
		return err
	}

	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimSpace(raw)

		if inDescription {
			if err := emit(raw); err != nil {
				return err
			}
			if strings.Contains(line, `"`) {
				inDescription = false
			}
			continue
		}

		if line == "" || strings.HasPrefix(line, "--") {
			if err := emit(raw); err != nil {
				return err
			}
			continue
		}

		if m := catalog.HeaderDescOpen.FindStringSubmatch(line); m != nil {
			if !strings.Contains(m[1], `"`) {
				inDescription = true
			}
			if err := emit(raw); err != nil {
				return err
			}
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
				for _, out := range spellProc.Flush(mapped.Mapping) {
					if err := emit(out); err != nil {
						return err
					}
				}
				if err := emit(raw); err != nil {
					return err
				}
				continue
			}
			spellProc.HandleLine(raw)
			continue
		}

		if catalog.BlockEnd.MatchString(line) {
			if inBlock {
				stack = stack[:len(stack)-1]
			}
			if err := emit(raw); err != nil {
				return err
			}
			continue
		}

		if catalog.NewSpell.MatchString(line) {
			id, ok := mapped.NextImplicit(catalog.Spell, seen[catalog.Spell])
			if !ok {
				return fmt.Errorf("writer: ran out of pre-allocated spell ids for mod %s", name)
			}
			seen[catalog.Spell]++
			spellProc.StartBlock(raw, id)
			stack = append(stack, frameSpell)
			continue
		}
		if catalog.SelectSpell.MatchString(line) {
			spellProc.StartBlock(raw, 0)
			stack = append(stack, frameSpell)
			continue
		}

		if kind, ok := unnumberedKind(line); ok {
			id, ok := mapped.NextImplicit(kind, seen[kind])
			if !ok {
				return fmt.Errorf("writer: ran out of pre-allocated %s ids for mod %s", kind, name)
			}
			seen[kind]++
			audit, rewritten, ok := rewrite.ConvertImplicitNew(raw, kind, id)
			if ok {
				if err := emit(audit); err != nil {
					return err
				}
				if err := emit(rewritten); err != nil {
					return err
				}
			} else if err := emit(raw); err != nil {
				return err
			}
			if opensGenericBlock(line) {
				stack = append(stack, frameOther)
			}
			continue
		}

		rewritten, audit, changed := rewrite.ProcessLine(raw, mapped.Mapping)
		if changed {
			if err := emit(audit); err != nil {
				return err
			}
		}
		if err := emit(rewritten); err != nil {
			return err
		}
		if opensGenericBlock(line) {
			stack = append(stack, frameOther)
		}
	}
	if spellProc.InBlock() {
		for _, out := range spellProc.Flush(mapped.Mapping) {
			if err := emit(out); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

// unnumberedKind reports whether line is an unnumbered "#new<kind>"
// directive (for a kind other than Spell, which streamMod handles
// separately) and, if so, which kind.
func unnumberedKind(line string) (catalog.EntityKind, bool) {
	for _, kind := range catalog.NewSelectKinds {
		if kind == catalog.Spell {
			continue
		}
		re := catalog.NewPattern(kind)
		if re == nil {
			continue
		}
		loc := re.FindStringSubmatchIndex(line)
		if loc != nil && loc[2] == -1 {
			return kind, true
		}
	}
	return "", false
}
