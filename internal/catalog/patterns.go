package catalog

import "regexp"

// ArgKind describes what a pattern's capture group holds.
type ArgKind int

const (
	ArgID ArgKind = iota
	ArgName
)

// NewSelectKinds lists the kinds that have both a numbered/unnumbered
// "#new<kind>" directive and a "#select<kind> <id>" directive at the
// top level of a mod file.
var NewSelectKinds = []EntityKind{
	Monster, Weapon, Armor, Item, Site, Nation, NameType, Enchantment,
}

// SelectOnlyKinds lists the kinds that spec §4.1 documents as
// "referenced only via #select<kind> <id>" — they are never newly
// created with an unnumbered directive.
var SelectOnlyKinds = []EntityKind{
	Montag, EventCode, PopType, RestrictedItem,
}

var (
	HeaderModName     = regexp.MustCompile(`(?i)^\s*#modname\s+"([^"]*)"`)
	HeaderDescOpen    = regexp.MustCompile(`(?i)^\s*#description\s+"(.*)$`)
	HeaderVersion     = regexp.MustCompile(`(?i)^\s*#version\s+(.+)$`)
	HeaderDomVersion  = regexp.MustCompile(`(?i)^\s*#domversion\s+(.+)$`)
	HeaderIcon        = regexp.MustCompile(`(?i)^\s*#icon\s+"([^"]*)"`)

	NewSpell    = regexp.MustCompile(`(?i)^\s*#newspell\b`)
	SelectSpell = regexp.MustCompile(`(?i)^\s*#selectspell\s+(?:(\d+)\b|"([^"]*)")`)
	NextSpell   = regexp.MustCompile(`(?i)^\s*#nextspell\s+(?:(\d+)\b|"([^"]*)")`)
	CopySpell   = regexp.MustCompile(`(?i)^\s*#copyspell\s+(?:(\d+)\b|"([^"]*)")`)
	Effect      = regexp.MustCompile(`(?i)^\s*#effect\s+(\d+)\b`)
	Damage      = regexp.MustCompile(`(?i)^\s*#damage\s+(-?\d+)\b`)
	BlockEnd    = regexp.MustCompile(`(?i)^\s*#end\b`)

	EventCodeLine = regexp.MustCompile(`(?i)^\s*#code\s+(-?\d+)\b`)
)

// newKindPatterns and selectKindPatterns are built once per kind in
// init(); the set of kinds is closed so a simple map suffices.
var (
	newKindPatterns    = map[EntityKind]*regexp.Regexp{}
	selectKindPatterns = map[EntityKind]*regexp.Regexp{}
)

func init() {
	for _, k := range NewSelectKinds {
		newKindPatterns[k] = regexp.MustCompile(`(?i)^\s*#new` + string(k) + `(?:\s+(\d+)\b)?`)
		selectKindPatterns[k] = regexp.MustCompile(`(?i)^\s*#select` + string(k) + `\s+(\d+)\b`)
	}
	for _, k := range SelectOnlyKinds {
		selectKindPatterns[k] = regexp.MustCompile(`(?i)^\s*#select` + string(k) + `\s+(\d+)\b`)
	}
}

// NewPattern returns the "#new<kind>" recognizer for kind, or nil if
// kind never has a #new directive (select-only kinds, and Spell which
// is handled separately because it is always unnumbered).
func NewPattern(kind EntityKind) *regexp.Regexp {
	return newKindPatterns[kind]
}

// SelectPattern returns the "#select<kind> <id>" recognizer for kind.
func SelectPattern(kind EntityKind) *regexp.Regexp {
	return selectKindPatterns[kind]
}

// ReferenceDirective pairs a directive recognizer with the EntityKind
// its numeric argument refers to. These cover the event-block
// "reference-bearing fields" spec §4.1 mentions (#req_*, #kill*, …)
// without needing a new type per directive.
type ReferenceDirective struct {
	Name    string
	Kind    EntityKind
	Pattern *regexp.Regexp
}

var ReferenceDirectives = []ReferenceDirective{
	{"req_monster", Monster, regexp.MustCompile(`(?i)^\s*#req_monster\s+(\d+)\b`)},
	{"killmonster", Monster, regexp.MustCompile(`(?i)^\s*#killmonster\s+(\d+)\b`)},
	{"req_item", Item, regexp.MustCompile(`(?i)^\s*#req_item\s+(\d+)\b`)},
	{"req_armor", Armor, regexp.MustCompile(`(?i)^\s*#req_armor\s+(\d+)\b`)},
	{"req_weapon", Weapon, regexp.MustCompile(`(?i)^\s*#req_weapon\s+(\d+)\b`)},
	{"req_site", Site, regexp.MustCompile(`(?i)^\s*#req_site\s+(\d+)\b`)},
	{"req_nation", Nation, regexp.MustCompile(`(?i)^\s*#req_nation\s+(\d+)\b`)},
}
