package mod

import (
	"encoding/json"
	"sort"
)

// fabricManifest mirrors the subset of fabric.mod.json fields the analyzer
// reads. Icon and dependency values vary in shape across mods, so they are
// kept raw and decoded leniently.
type fabricManifest struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Icon        json.RawMessage            `json:"icon"`
	Environment string                     `json:"environment"`
	Depends     map[string]json.RawMessage `json:"depends"`
}

// fabricDependency is the object form of a depends entry. Most mods use a
// plain version string instead; those decode to an empty marker.
type fabricDependency struct {
	Environment string `json:"environment"`
}

func parseFabric(data []byte) Record {
	var m fabricManifest
	if err := json.Unmarshal(stripControlBytes(data), &m); err != nil {
		return Record{Loader: LoaderUnknown}
	}

	rec := Record{
		Loader:      LoaderFabric,
		ModID:       m.ID,
		DisplayName: m.Name,
		IconPath:    fabricIconPath(m.Icon),
	}

	// The manifest's own environment marker comes first, as the mod's entry
	// for itself. Absence leaves the side unspecified.
	if side, ok := fabricSide(m.Environment); ok {
		rec.Requirements = append(rec.Requirements, Requirement{DependencyID: m.ID, Side: side})
	}

	// Map iteration order is random; sort keys so the requirement sequence
	// is stable across runs.
	keys := make([]string, 0, len(m.Depends))
	for k := range m.Depends {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dep := Requirement{DependencyID: k}
		var obj fabricDependency
		if err := json.Unmarshal(m.Depends[k], &obj); err == nil {
			if side, ok := fabricSide(obj.Environment); ok {
				dep.Side = side
			}
		}
		rec.Requirements = append(rec.Requirements, dep)
	}

	return rec
}

// fabricSide maps a fabric environment marker to a Side. The second return
// value is false when no marker was declared.
func fabricSide(env string) (Side, bool) {
	switch env {
	case "client":
		return SideClient, true
	case "server":
		return SideServer, true
	case "*":
		return SideBoth, true
	default:
		return SideUnspecified, false
	}
}

// fabricIconPath extracts the icon entry name. The field is either a plain
// string or a size-keyed object; for the object form the largest size wins.
func fabricIconPath(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var sizes map[string]string
	if err := json.Unmarshal(raw, &sizes); err != nil {
		return ""
	}
	keys := make([]string, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return sizes[keys[len(keys)-1]]
}

// stripControlBytes removes the stray control characters some mods ship in
// their manifests that would otherwise break the JSON decoder.
func stripControlBytes(data []byte) []byte {
	cleaned := make([]byte, 0, len(data))
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			continue
		}
		cleaned = append(cleaned, b)
	}
	return cleaned
}
