package rewrite

import (
	"strconv"
	"strings"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

// SpellEffectLookup is the slice of the game-data query interface
// (spec §6.2) the spell-block processor needs: given a spell id or
// name, what effect does it cast. Defined locally so this package
// doesn't need to import the gamedata package just for this one
// method set.
type SpellEffectLookup interface {
	SpellEffectByID(spellID int) (effectID int, ok bool)
	SpellEffectByName(name string) (effectID int, ok bool)
}

// spellBlock buffers one #newspell/#selectspell … #end segment.
type spellBlock struct {
	lines        []string
	openerIsNew  bool // true if the opener was an unnumbered #newspell
	assignedID   int  // set by the caller when converting that opener
	effectKind   catalog.EffectKind
	effectKnown  bool
}

// SpellBlockProcessor owns the only stateful rewriting beyond a plain
// per-line remap: it buffers a whole spell block and only emits a
// rewritten form once #end is seen, because #damage's meaning depends
// on #effect regardless of which line appears first in the source.
type SpellBlockProcessor struct {
	lookup   SpellEffectLookup
	buf      *spellBlock
	Warnings []string
}

// NewSpellBlockProcessor returns a processor backed by the given
// read-only game-data lookup (may be nil if no copy-spell resolution
// is needed/available).
func NewSpellBlockProcessor(lookup SpellEffectLookup) *SpellBlockProcessor {
	return &SpellBlockProcessor{lookup: lookup}
}

// InBlock reports whether a block is currently being buffered.
func (p *SpellBlockProcessor) InBlock() bool { return p.buf != nil }

// StartBlock opens a new spell block. openerLine is the raw
// "#newspell" or "#selectspell …" line. If assignedID > 0, the opener
// is an unnumbered #newspell being converted to "#selectspell
// <assignedID>" at flush. If a block was already open, it is
// discarded and a warning recorded — spec §4.6's edge case for
// malformed source.
func (p *SpellBlockProcessor) StartBlock(openerLine string, assignedID int) {
	if p.buf != nil {
		p.Warnings = append(p.Warnings, "spell block opened before previous #end; discarding buffered block: "+p.buf.lines[0])
	}
	p.buf = &spellBlock{
		lines:       []string{openerLine},
		openerIsNew: assignedID > 0,
		assignedID:  assignedID,
	}
}

// HandleLine buffers one line of the open block and, in passing,
// updates the block's effect classification so #damage can be
// resolved correctly at flush regardless of source order.
func (p *SpellBlockProcessor) HandleLine(line string) {
	if p.buf == nil {
		return
	}
	p.buf.lines = append(p.buf.lines, line)

	if m := catalog.Effect.FindStringSubmatch(line); m != nil {
		id, err := strconv.Atoi(m[1])
		if err == nil {
			p.buf.effectKind = catalog.ClassifyEffect(id)
			p.buf.effectKnown = true
		}
		return
	}
	if p.buf.effectKnown {
		return
	}
	if m := catalog.CopySpell.FindStringSubmatch(line); m != nil {
		if m[1] != "" {
			id, err := strconv.Atoi(m[1])
			if err == nil {
				if p.lookup != nil {
					if eff, ok := p.lookup.SpellEffectByID(id); ok {
						p.buf.effectKind = catalog.ClassifyEffect(eff)
						p.buf.effectKnown = true
						return
					}
				}
				if catalog.IsKnownSummoningSpellID(id) {
					p.buf.effectKind = catalog.EffectSummoning
					p.buf.effectKnown = true
				}
			}
		} else if m[2] != "" {
			if p.lookup != nil {
				if eff, ok := p.lookup.SpellEffectByName(m[2]); ok {
					p.buf.effectKind = catalog.ClassifyEffect(eff)
					p.buf.effectKnown = true
					return
				}
			}
			if catalog.IsKnownSummoningSpellName(m[2]) {
				p.buf.effectKind = catalog.EffectSummoning
				p.buf.effectKnown = true
			}
		}
	}
}

// Flush rewrites and returns the buffered block's lines (not including
// the trailing #end, which the caller re-emits itself), applying
// mapping, then clears the buffer.
func (p *SpellBlockProcessor) Flush(mapping *model.IdMapping) []string {
	if p.buf == nil {
		return nil
	}
	buf := p.buf
	p.buf = nil

	out := make([]string, 0, len(buf.lines)+1)
	for i, line := range buf.lines {
		if i == 0 && buf.openerIsNew && buf.assignedID > 0 {
			out = append(out, "-- MOD MERGER: Converted unnumbered #newspell to #selectspell "+strconv.Itoa(buf.assignedID))
			out = append(out, "#selectspell "+strconv.Itoa(buf.assignedID))
			continue
		}
		if loc := catalog.Damage.FindStringSubmatchIndex(line); loc != nil {
			rewritten, audit := rewriteDamage(line, loc[2], loc[3], buf.effectKind, mapping)
			if audit != "" {
				out = append(out, audit)
			}
			out = append(out, rewritten)
			continue
		}
		rewritten, audit, changed := ProcessLine(line, mapping)
		if changed {
			out = append(out, audit)
		}
		out = append(out, rewritten)
	}
	return collapseBlankRuns(out)
}

func rewriteDamage(line string, start, end int, kind catalog.EffectKind, mapping *model.IdMapping) (string, string) {
	numText := line[start:end]
	n, err := strconv.Atoi(numText)
	if err != nil {
		return line, ""
	}
	var (
		lookupKind catalog.EntityKind
		key        int
		negate     bool
	)
	switch {
	case kind == catalog.EffectSummoning && n > 0:
		lookupKind, key = catalog.Monster, n
	case kind == catalog.EffectSummoning && n < 0:
		lookupKind, key, negate = catalog.Montag, -n, true
	case kind == catalog.EffectEnchantment:
		lookupKind, key = catalog.Enchantment, n
	default:
		return line, ""
	}

	newVal := mapping.Lookup(lookupKind, key)
	if newVal == key {
		return line, ""
	}

	repl := strconv.Itoa(newVal)
	if negate {
		repl = "-" + repl
	}
	rewritten := line[:start] + repl + line[end:]
	audit := "-- MOD MERGER: Remapped " + displayKind(lookupKind) + " " + strconv.Itoa(key) + " -> " + strconv.Itoa(newVal)
	return rewritten, audit
}

// collapseBlankRuns collapses runs of consecutive blank lines to one,
// per spec §4.6 step 4.
func collapseBlankRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, l := range lines {
		blank := strings.TrimSpace(l) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, l)
		prevBlank = blank
	}
	return out
}
