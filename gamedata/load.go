package gamedata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// resource file names, matching the vanilla game's shipped layout.
const (
	spellsFile        = "spells.csv"
	effectsSpellsFile = "effects_spells.csv"
	monstersFile      = "monsters.csv"
)

// Load reads the three tab-separated resource files out of dir and
// builds a Store. Missing files are tolerated — a Store built from a
// partial resource directory simply answers fewer queries, letting
// callers that have no game-data directory at all pass an empty dir
// and get a Store that defers entirely to the catalog's fallback
// tables.
func Load(dir string) (*Store, error) {
	s := &Store{
		spellsByID:   map[int]SpellData{},
		spellsByName: map[string]SpellData{},
		effects:      map[int]int{},
		monsters:     map[int]MonsterData{},
	}

	if err := loadSpells(filepath.Join(dir, spellsFile), s); err != nil {
		return nil, err
	}
	if err := loadEffectsSpells(filepath.Join(dir, effectsSpellsFile), s); err != nil {
		return nil, err
	}
	if err := loadMonsters(filepath.Join(dir, monstersFile), s); err != nil {
		return nil, err
	}
	return s, nil
}

func openTSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("gamedata: open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r, f, nil
}

// loadSpells expects columns: id, name, effect.
func loadSpells(path string, s *Store) error {
	r, f, err := openTSV(path)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	defer f.Close()

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("gamedata: read %s: %w", path, err)
		}
		if len(rec) < 3 {
			continue
		}
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		effect, err := strconv.Atoi(rec[2])
		if err != nil {
			continue
		}
		sp := SpellData{ID: id, Name: rec[1], Effect: effect}
		s.spellsByID[id] = sp
		s.spellsByName[normalizeName(rec[1])] = sp
	}
	return nil
}

// loadEffectsSpells expects columns: spell id, effect id.
func loadEffectsSpells(path string, s *Store) error {
	r, f, err := openTSV(path)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	defer f.Close()

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("gamedata: read %s: %w", path, err)
		}
		if len(rec) < 2 {
			continue
		}
		spellID, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		effectID, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		s.effects[spellID] = effectID
	}
	return nil
}

// loadMonsters expects columns: id, name.
func loadMonsters(path string, s *Store) error {
	r, f, err := openTSV(path)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}
	defer f.Close()

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("gamedata: read %s: %w", path, err)
		}
		if len(rec) < 2 {
			continue
		}
		id, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		s.monsters[id] = MonsterData{ID: id, Name: rec[1]}
	}
	return nil
}
