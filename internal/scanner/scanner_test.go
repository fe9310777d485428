package scanner

import (
	"strings"
	"testing"

	"github.com/domtools/dommerge/internal/catalog"
	"github.com/domtools/dommerge/internal/model"
)

func scan(t *testing.T, src string) *model.ModDefinition {
	t.Helper()
	def, err := Scan("test.dm", strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	return def
}

func TestScanSimpleMonsterDefinitions(t *testing.T) {
	def := scan(t, `
#modname "Mod A"
#newmonster 5000
#end
#newmonster 5001
#end
`)
	m := def.Entity(catalog.Monster)
	if _, ok := m.DefinedIDs[5000]; !ok {
		t.Fatalf("expected 5000 in DefinedIDs")
	}
	if _, ok := m.DefinedIDs[5001]; !ok {
		t.Fatalf("expected 5001 in DefinedIDs")
	}
	if def.ModName != "Mod A" {
		t.Fatalf("unexpected mod name: %q", def.ModName)
	}
}

func TestScanVanillaEditIsNotDefined(t *testing.T) {
	def := scan(t, `
#modname "Mod"
#selectmonster 2845
#end
`)
	m := def.Entity(catalog.Monster)
	if _, ok := m.VanillaEditedIDs[2845]; !ok {
		t.Fatalf("expected 2845 in VanillaEditedIDs")
	}
	if len(m.DefinedIDs) != 0 {
		t.Fatalf("expected no DefinedIDs, got %v", m.DefinedIDs)
	}
}

func TestScanSummoningSpellPositiveDamage(t *testing.T) {
	def := scan(t, `
#modname "Mod B"
#newmonster 5001
#end
#newspell
#name "Test Summon"
#effect 1
#damage 5001
#end
`)
	mon := def.Entity(catalog.Monster)
	if _, ok := mon.DefinedIDs[5001]; !ok {
		t.Fatalf("expected monster 5001 recorded via #damage, got %v", mon.DefinedIDs)
	}
	spell := def.Entity(catalog.Spell)
	if spell.ImplicitDefinitions != 1 {
		t.Fatalf("expected 1 implicit spell definition, got %d", spell.ImplicitDefinitions)
	}
}

func TestScanSummoningSpellNegativeDamageIsMontag(t *testing.T) {
	def := scan(t, `
#modname "Mod B"
#newspell
#effect 1
#damage -4149
#end
`)
	tag := def.Entity(catalog.Montag)
	if _, ok := tag.DefinedIDs[4149]; !ok {
		t.Fatalf("expected montag 4149 recorded, got %v", tag.DefinedIDs)
	}
}

func TestScanEnchantmentDamage(t *testing.T) {
	def := scan(t, `
#modname "Mod B"
#newspell
#effect 81
#damage 500
#end
`)
	ench := def.Entity(catalog.Enchantment)
	if _, ok := ench.DefinedIDs[500]; !ok {
		t.Fatalf("expected enchantment 500 recorded, got %v", ench.DefinedIDs)
	}
}

func TestScanDamageWithoutEffectIsIgnored(t *testing.T) {
	def := scan(t, `
#modname "Mod"
#newspell
#damage 5001
#end
`)
	mon := def.Entity(catalog.Monster)
	if len(mon.DefinedIDs) != 0 {
		t.Fatalf("expected no monster registered without #effect, got %v", mon.DefinedIDs)
	}
}

func TestScanMultiLineDescriptionIsConsumed(t *testing.T) {
	def := scan(t, `
#modname "Mod"
#description "this is a
multi line
description"
#newmonster 5000
#end
`)
	mon := def.Entity(catalog.Monster)
	if _, ok := mon.DefinedIDs[5000]; !ok {
		t.Fatalf("expected monster after multi-line description, got %v", mon.DefinedIDs)
	}
}

func TestScanReferenceDirectiveDoesNotDefine(t *testing.T) {
	def := scan(t, `
#modname "Mod"
#newevent
#req_monster 5000
#end
`)
	mon := def.Entity(catalog.Monster)
	if len(mon.DefinedIDs) != 0 {
		t.Fatalf("expected #req_monster to not count as a definition, got %v", mon.DefinedIDs)
	}
	if _, ok := mon.Referenced[5000]; !ok {
		t.Fatalf("expected 5000 recorded as referenced, got %v", mon.Referenced)
	}
}

func TestScanCommentsAndBlankLinesIgnored(t *testing.T) {
	def := scan(t, `
-- this is a comment
#modname "Mod"

-- another comment
#newmonster 5000
#end
`)
	mon := def.Entity(catalog.Monster)
	if _, ok := mon.DefinedIDs[5000]; !ok {
		t.Fatalf("expected monster despite comments/blanks, got %v", mon.DefinedIDs)
	}
}
