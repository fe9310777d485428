// Package catalog holds the closed, data-driven tables that describe the
// mod-file directive grammar: entity kinds, their ID ranges, the spell
// effect-classification sets, and the line-recognizer patterns built on
// top of them. Adding a new entity kind is a table edit here, not a new
// type elsewhere in the tree.
package catalog

// EntityKind enumerates the closed set of entity kinds a mod file can
// declare or edit.
type EntityKind string

const (
	Monster         EntityKind = "monster"
	Weapon          EntityKind = "weapon"
	Armor           EntityKind = "armor"
	Item            EntityKind = "item"
	Site            EntityKind = "site"
	Spell           EntityKind = "spell"
	Nation          EntityKind = "nation"
	NameType        EntityKind = "nametype"
	Enchantment     EntityKind = "enchantment"
	Montag          EntityKind = "montag"
	EventCode       EntityKind = "eventcode"
	PopType         EntityKind = "poptype"
	RestrictedItem  EntityKind = "restricteditem"
)

// Kinds lists every EntityKind in a stable, deterministic order. Several
// stages (allocator, conflict detector) iterate kinds and rely on this order
// for reproducible output.
var Kinds = []EntityKind{
	Monster,
	Weapon,
	Armor,
	Item,
	Site,
	Spell,
	Nation,
	NameType,
	Enchantment,
	Montag,
	EventCode,
	PopType,
	RestrictedItem,
}
