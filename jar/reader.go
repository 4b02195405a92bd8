// Package jar reads loader manifests and icons out of mod archives without
// extracting them to disk.
package jar

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"modside-analyzer/mod"
)

var (
	// ErrCorruptArchive means the file could not be opened as a zip at all.
	ErrCorruptArchive = errors.New("not a valid mod archive")
	// ErrManifestNotFound means the archive opened fine but none of the
	// known descriptor entries were present.
	ErrManifestNotFound = errors.New("no recognized manifest entry")
	// ErrEntryNotFound is returned by ReadEntry for a missing entry name.
	ErrEntryNotFound = errors.New("entry not found in archive")
)

// manifestEntries are the known descriptor names, in priority order. Entries
// are matched by suffix because some build setups nest them under a prefix.
var manifestEntries = []struct {
	name   string
	loader mod.LoaderKind
}{
	{"fabric.mod.json", mod.LoaderFabric},
	{"META-INF/mods.toml", mod.LoaderForge},
	{"META-INF/neoforge.mods.toml", mod.LoaderForge},
}

// Manifest is the raw descriptor found in an archive plus the loader kind
// implied by which entry name matched.
type Manifest struct {
	Loader mod.LoaderKind
	Data   []byte
}

// ReadManifest opens the archive at path and returns the first known
// descriptor entry. Filesystem errors (vanished file, permissions) pass
// through untouched so callers can tell them apart from corrupt archives.
func ReadManifest(path string) (Manifest, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return Manifest{}, err
		}
		return Manifest{}, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	defer r.Close()

	for _, entry := range manifestEntries {
		for _, f := range r.File {
			if f.Mode().IsDir() {
				continue
			}
			if f.Name == entry.name || strings.HasSuffix(f.Name, "/"+entry.name) {
				data, err := readAll(f)
				if err != nil {
					return Manifest{}, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
				}
				return Manifest{Loader: entry.loader, Data: data}, nil
			}
		}
	}
	return Manifest{}, ErrManifestNotFound
}

// ReadEntry returns the bytes of a single entry by exact name. It serves
// icon extraction, where the manifest already told us the entry name.
func ReadEntry(path, name string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == name {
			return readAll(f)
		}
	}
	return nil, ErrEntryNotFound
}

func readAll(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
