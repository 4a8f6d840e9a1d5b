package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/spf13/viper"
)

// presets maps the named output resolutions to pixel dimensions.
var presets = map[string][2]int{
	"preview":       {960, 540},
	"noise-preview": {480, 270},
	"hd":            {1920, 1080},
	"qhd":           {2560, 1440},
	"4k":            {3840, 2160},
}

// resolvePreset returns the dimensions for a named preset.
func resolvePreset(name string) (int, int, error) {
	dims, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for n := range presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return 0, 0, fmt.Errorf("unknown preset %q: must be one of %s", name, strings.Join(names, ", "))
	}
	return dims[0], dims[1], nil
}

// loadProject loads the project named by --project, falling back to the
// built-in frost project when the flag is empty.
func loadProject() (config.Project, error) {
	path := viper.GetString("project")
	if path == "" {
		return config.DefaultProject(), nil
	}

	p, err := config.Load(path)
	if err != nil {
		return config.Project{}, err
	}
	return p, nil
}

// applySeed re-derives the per-layer seeds from a new global seed, keeping
// every other layer parameter. A zero seed leaves the project untouched.
func applySeed(p config.Project, seed int64) config.Project {
	if seed == 0 {
		return p
	}

	out := p.Clone()
	out.GlobalSeed = seed
	for i := range out.NoiseLayers {
		out.NoiseLayers[i].Seed = seed + int64(i)
	}
	return out
}
