package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/milk9111/stargrab/gameplay"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the level played when none is named.
const Default = "meadow"

type Level struct {
	Name         string                `json:"name"`
	Width        float64               `json:"width"`
	Height       float64               `json:"height"`
	Gravity      float64               `json:"gravity"`
	Background   string                `json:"background"`
	Platforms    []Platform            `json:"platforms"`
	PlayerSpawn  Point                 `json:"player_spawn"`
	Stars        gameplay.StarLayout   `json:"stars"`
	Hazards      gameplay.HazardConfig `json:"hazards"`
	HazardScript string                `json:"hazard_script,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Platform is one static body. Scale 0 means 1.
type Platform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Image string  `json:"image"`
	Scale float64 `json:"scale,omitempty"`
}

func (l *Level) Area() gameplay.PlayArea {
	return gameplay.PlayArea{Width: l.Width, Height: l.Height}
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("level %s: bad size %gx%g", l.Name, l.Width, l.Height)
	}
	if len(l.Platforms) == 0 {
		return fmt.Errorf("level %s: no platforms", l.Name)
	}
	for i, p := range l.Platforms {
		if p.Image == "" {
			return fmt.Errorf("level %s: platform %d has no image", l.Name, i)
		}
		if p.Scale < 0 {
			return fmt.Errorf("level %s: platform %d has negative scale", l.Name, i)
		}
	}
	if sp := l.PlayerSpawn; sp.X < 0 || sp.X > l.Width || sp.Y < 0 || sp.Y > l.Height {
		return fmt.Errorf("level %s: player spawn (%g,%g) outside level", l.Name, sp.X, sp.Y)
	}
	if err := l.Stars.Validate(); err != nil {
		return fmt.Errorf("level %s: %w", l.Name, err)
	}
	return nil
}

// LoadLevelFromFS loads an embedded level by name; ".json" is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	file := name
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, file)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(file, ".json")
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
