package catalog

import "math"

// IdRange describes the two inclusive ID intervals for one EntityKind:
// the immutable vanilla range and the remappable modding range. A
// VanillaEnd of 0 means the kind has no vanilla range at all (Montag,
// EventCode) — every ID for that kind is a modding ID.
type IdRange struct {
	VanillaEnd   int
	ModdingStart int
	ModdingEnd   int
}

// Ranges is the bit-exact table from spec §6. Treat these as constants;
// nothing in the pipeline computes them.
var Ranges = map[EntityKind]IdRange{
	Weapon:         {VanillaEnd: 999, ModdingStart: 1000, ModdingEnd: 3999},
	Armor:          {VanillaEnd: 399, ModdingStart: 400, ModdingEnd: 1999},
	Monster:        {VanillaEnd: 4999, ModdingStart: 5000, ModdingEnd: 19999},
	NameType:       {VanillaEnd: 169, ModdingStart: 170, ModdingEnd: 399},
	Spell:          {VanillaEnd: 1999, ModdingStart: 2000, ModdingEnd: 7999},
	Enchantment:    {VanillaEnd: 199, ModdingStart: 200, ModdingEnd: 9999},
	Item:           {VanillaEnd: 699, ModdingStart: 700, ModdingEnd: 1999},
	Site:           {VanillaEnd: 1699, ModdingStart: 1700, ModdingEnd: 3999},
	Nation:         {VanillaEnd: 149, ModdingStart: 150, ModdingEnd: 499},
	PopType:        {VanillaEnd: 124, ModdingStart: 125, ModdingEnd: 249},
	Montag:         {VanillaEnd: 0, ModdingStart: 1000, ModdingEnd: 100000},
	EventCode:      {VanillaEnd: 0, ModdingStart: 1, ModdingEnd: math.MaxInt32},
	RestrictedItem: {VanillaEnd: 0, ModdingStart: 0, ModdingEnd: math.MaxInt32},
}

// RangeFor returns the IdRange for kind. It panics on an unknown kind:
// the catalog is closed and callers are expected to only use the
// constants above.
func RangeFor(kind EntityKind) IdRange {
	r, ok := Ranges[kind]
	if !ok {
		panic("catalog: unknown entity kind " + string(kind))
	}
	return r
}

// InVanilla reports whether id falls in kind's vanilla range.
func InVanilla(kind EntityKind, id int) bool {
	r := RangeFor(kind)
	return r.VanillaEnd > 0 && id >= 1 && id <= r.VanillaEnd
}

// InModding reports whether id falls in kind's modding range.
func InModding(kind EntityKind, id int) bool {
	r := RangeFor(kind)
	return id >= r.ModdingStart && id <= r.ModdingEnd
}
