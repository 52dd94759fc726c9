package gamedata

// UnitDef defines a unit class loaded from JSON.
type UnitDef struct {
	ID           string   `json:"id"`     // Unique identifier (e.g., "cavalier")
	Name         string   `json:"name"`   // Display name
	Symbol       string   `json:"symbol"` // Single character for rendering
	HP           int      `json:"hp"`
	Attack       int      `json:"attack"`
	Skill        int      `json:"skill"`
	Speed        int      `json:"speed"`
	Luck         int      `json:"luck"`
	Defense      int      `json:"defense"`
	Constitution int      `json:"constitution"`
	Movement     int      `json:"movement"` // Movement points per turn
	Actions      int      `json:"actions"`  // Action points per turn
	Weapons      []string `json:"weapons"`  // Starting weapon IDs, first is equipped
	Abilities    []string `json:"abilities"`
}

// SymbolRune returns the symbol as a rune for rendering.
func (u *UnitDef) SymbolRune() rune {
	if len(u.Symbol) == 0 {
		return '?'
	}
	return rune(u.Symbol[0])
}

// UnitsFile represents the structure of units.json.
type UnitsFile struct {
	Units []UnitDef `json:"units"`
}

// LoadUnits loads unit class definitions from the embedded units.json file.
func LoadUnits() ([]UnitDef, error) {
	file, err := Load[UnitsFile]("units.json")
	if err != nil {
		return nil, err
	}
	return file.Units, nil
}
