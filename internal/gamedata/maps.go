package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// MapDef defines a battle map loaded from JSON.
type MapDef struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Rows    []string    `json:"rows"` // One string per row, one terrain rune per tile
	Players []PlayerDef `json:"players"`
	Spawns  []SpawnDef  `json:"spawns"`
}

// PlayerDef describes one side of a map.
type PlayerDef struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Color  string `json:"color"` // Hex color code (e.g., "#3B82F6")
}

// SpawnDef places a unit of a class on the map at load time.
type SpawnDef struct {
	Class  string `json:"class"` // UnitDef ID
	Name   string `json:"name"`
	Player int    `json:"player"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// TCellColor returns the player color as a tcell.Color.
func (p *PlayerDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(p.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// MapsFile represents the structure of maps.json.
type MapsFile struct {
	Maps []MapDef `json:"maps"`
}

// LoadMaps loads map definitions from the embedded maps.json file.
func LoadMaps() ([]MapDef, error) {
	file, err := Load[MapsFile]("maps.json")
	if err != nil {
		return nil, err
	}
	return file.Maps, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(v>>16&0xFF), int32(v>>8&0xFF), int32(v&0xFF)), nil
}
