package scanner

import (
	"net/url"
	"strings"

	"modside-analyzer/mod"
)

// Links holds the generated catalog page URLs for one mod. They are built
// from fixed templates; nothing validates them against the live sites.
type Links struct {
	CurseForge string
	Modrinth   string
	MCMod      string
}

// BuildLinks constructs the three catalog URLs for a record. Search queries
// prefer the display name (what the catalogs index), falling back to the mod
// id and then the archive file name; the CurseForge slug prefers the mod id.
// Records with no usable identifier get no links.
func BuildLinks(rec mod.Record, fileName string) Links {
	query := rec.DisplayName
	if query == "" {
		query = rec.ModID
	}
	if query == "" {
		query = strings.TrimSuffix(fileName, ".jar")
		query = strings.TrimSuffix(query, ".zip")
	}
	if query == "" {
		return Links{}
	}

	slug := rec.ModID
	if slug == "" {
		slug = query
	}

	return Links{
		CurseForge: "https://www.curseforge.com/minecraft/mc-mods/" + slugify(slug),
		Modrinth:   "https://modrinth.com/mods?q=" + url.QueryEscape(query),
		MCMod:      "https://search.mcmod.cn/s?key=" + url.QueryEscape(query),
	}
}

// slugify lowercases the identifier and squeezes everything that is not a
// letter, digit, or dash into single dashes, matching catalog slug rules.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true // trim leading dashes
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
