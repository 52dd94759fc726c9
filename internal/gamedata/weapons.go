package gamedata

// WeaponDef defines a weapon loaded from JSON.
type WeaponDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "iron_sword")
	Name   string `json:"name"`   // Display name
	Type   string `json:"type"`   // sword, lance, axe, bow, staff or tome
	Attack int    `json:"attack"` // Might added to the wielder's attack
	Hit    int    `json:"hit"`    // Base accuracy
	Crit   int    `json:"crit"`   // Base critical chance
	Weight int    `json:"weight"` // Slows wielders whose constitution is lower
	Range  int    `json:"range"`  // Maximum strike distance in tiles
}

// WeaponsFile represents the structure of weapons.json.
type WeaponsFile struct {
	Weapons []WeaponDef `json:"weapons"`
}

// LoadWeapons loads weapon definitions from the embedded weapons.json file.
func LoadWeapons() ([]WeaponDef, error) {
	file, err := Load[WeaponsFile]("weapons.json")
	if err != nil {
		return nil, err
	}
	return file.Weapons, nil
}
