package mod

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// forgeManifest mirrors the subset of META-INF/mods.toml the analyzer reads.
// The clientSideOnly marker has appeared both at the top level and inside the
// mods block across loader versions, so both spots are checked.
type forgeManifest struct {
	ClientSideOnly bool                         `toml:"clientSideOnly"`
	Mods           []forgeModEntry              `toml:"mods"`
	Dependencies   map[string][]forgeDependency `toml:"dependencies"`
}

type forgeModEntry struct {
	ModID          string `toml:"modId"`
	DisplayName    string `toml:"displayName"`
	LogoFile       string `toml:"logoFile"`
	ClientSideOnly bool   `toml:"clientSideOnly"`
}

type forgeDependency struct {
	ModID string `toml:"modId"`
	Side  string `toml:"side"`
}

func parseForge(data []byte) Record {
	var m forgeManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Record{Loader: LoaderUnknown}
	}

	rec := Record{Loader: LoaderForge}
	clientOnly := m.ClientSideOnly
	if len(m.Mods) > 0 {
		first := m.Mods[0]
		rec.ModID = first.ModID
		rec.DisplayName = first.DisplayName
		rec.IconPath = first.LogoFile
		clientOnly = clientOnly || first.ClientSideOnly
	}

	if clientOnly {
		rec.Requirements = append(rec.Requirements, Requirement{DependencyID: rec.ModID, Side: SideClient})
	}

	keys := make([]string, 0, len(m.Dependencies))
	for k := range m.Dependencies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, dep := range m.Dependencies[k] {
			id := dep.ModID
			if id == "" {
				id = k
			}
			rec.Requirements = append(rec.Requirements, Requirement{
				DependencyID: id,
				Side:         forgeSide(dep.Side),
			})
		}
	}

	return rec
}

// forgeSide maps a mods.toml side marker ("CLIENT", "SERVER", "BOTH") to a
// Side. Unknown or absent markers stay unspecified.
func forgeSide(side string) Side {
	switch strings.ToUpper(side) {
	case "CLIENT":
		return SideClient
	case "SERVER":
		return SideServer
	case "BOTH":
		return SideBoth
	default:
		return SideUnspecified
	}
}
