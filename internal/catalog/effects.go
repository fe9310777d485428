package catalog

import "strings"

// EffectKind classifies a spell's #effect value for the purpose of
// rewriting its #damage field.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSummoning
	EffectEnchantment
)

// summoningEffects and enchantmentEffects are the bit-exact sets from
// spec §6. Membership is the only thing that matters; order is not
// observable.
var summoningEffects = map[int]struct{}{
	1: {}, 21: {}, 31: {}, 37: {}, 38: {}, 43: {}, 50: {}, 54: {}, 62: {}, 89: {}, 93: {}, 119: {}, 126: {}, 130: {}, 137: {},
	10001: {}, 10021: {}, 10031: {}, 10037: {}, 10038: {}, 10043: {}, 10050: {}, 10054: {}, 10062: {}, 10089: {}, 10093: {}, 10119: {}, 10126: {}, 10130: {}, 10137: {},
}

var enchantmentEffects = map[int]struct{}{
	81: {}, 10081: {}, 10082: {}, 10084: {}, 10085: {}, 10086: {},
}

// knownSummoningSpellIDs is the fallback table used when a #copyspell
// reference has no #effect line of its own to classify. The id on a
// #selectspell opener is not checked against it.
var knownSummoningSpellIDs = map[int]struct{}{
	721: {}, 724: {}, 733: {}, 795: {}, 805: {}, 813: {}, 818: {}, 847: {}, 875: {}, 893: {}, 900: {}, 920: {}, 1091: {},
}

// knownSummoningSpellNames mirrors knownSummoningSpellIDs but for
// name-based #copyspell references; a #selectspell name is not checked
// against it. Keys are lowercased.
var knownSummoningSpellNames = map[string]struct{}{
	"animate skeleton": {}, "horde of skeletons": {}, "raise skeletons": {}, "reanimation": {},
	"pale riders": {}, "revive lictor": {}, "living mercury": {}, "king of elemental earth": {},
	"summon fire elemental": {}, "pack of wolves": {}, "contact forest giant": {}, "infernal disease": {},
	"hannya pact": {}, "swarm": {}, "creeping doom": {},
}

// ClassifyEffect maps a spell's #effect value to its EffectKind.
func ClassifyEffect(effectID int) EffectKind {
	if _, ok := summoningEffects[effectID]; ok {
		return EffectSummoning
	}
	if _, ok := enchantmentEffects[effectID]; ok {
		return EffectEnchantment
	}
	return EffectNone
}

// IsKnownSummoningSpellID reports whether id is one of the fallback
// summoning spells used when a spell block has no #effect of its own.
func IsKnownSummoningSpellID(id int) bool {
	_, ok := knownSummoningSpellIDs[id]
	return ok
}

// IsKnownSummoningSpellName reports whether name (any case) is one of
// the fallback summoning spells used when a spell block has no #effect
// of its own.
func IsKnownSummoningSpellName(name string) bool {
	_, ok := knownSummoningSpellNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
