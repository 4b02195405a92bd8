package jar

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"modside-analyzer/mod"
)

// writeArchive builds a small zip file with the given entries.
func writeArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
}

func TestReadManifestFabric(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fabricmod.jar")
	writeArchive(t, path, map[string]string{
		"fabric.mod.json": `{"id": "m"}`,
		"other.txt":       "ignored",
	})

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Loader != mod.LoaderFabric {
		t.Errorf("Loader = %v, want fabric", manifest.Loader)
	}
	if string(manifest.Data) != `{"id": "m"}` {
		t.Errorf("Data = %q", manifest.Data)
	}
}

func TestReadManifestForge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forgemod.jar")
	writeArchive(t, path, map[string]string{
		"META-INF/mods.toml": "[[mods]]\nmodId = \"m\"\n",
	})

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Loader != mod.LoaderForge {
		t.Errorf("Loader = %v, want forge", manifest.Loader)
	}
}

func TestReadManifestNeoforge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neomod.jar")
	writeArchive(t, path, map[string]string{
		"META-INF/neoforge.mods.toml": "[[mods]]\nmodId = \"m\"\n",
	})

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Loader != mod.LoaderForge {
		t.Errorf("Loader = %v, want forge", manifest.Loader)
	}
}

// TestReadManifestPriority checks that a fabric descriptor wins over a forge
// one when both are present.
func TestReadManifestPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dual.jar")
	writeArchive(t, path, map[string]string{
		"META-INF/mods.toml": "[[mods]]\nmodId = \"forgeside\"\n",
		"fabric.mod.json":    `{"id": "fabricside"}`,
	})

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Loader != mod.LoaderFabric {
		t.Errorf("Loader = %v, want fabric to win", manifest.Loader)
	}
}

// TestReadManifestNestedEntry checks suffix matching for descriptors nested
// under a build prefix.
func TestReadManifestNestedEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.jar")
	writeArchive(t, path, map[string]string{
		"bundle/fabric.mod.json": `{"id": "nested"}`,
	})

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Loader != mod.LoaderFabric {
		t.Errorf("Loader = %v, want fabric", manifest.Loader)
	}
}

func TestReadManifestNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nomanifest.jar")
	writeArchive(t, path, map[string]string{"readme.txt": "nothing here"})

	_, err := ReadManifest(path)
	if !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("err = %v, want ErrManifestNotFound", err)
	}
}

func TestReadManifestCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.jar")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadManifest(path)
	if !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("err = %v, want ErrCorruptArchive", err)
	}
}

// TestReadManifestMissingFile checks that filesystem errors pass through
// instead of being reported as corruption.
func TestReadManifestMissingFile(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "gone.jar"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if errors.Is(err, ErrCorruptArchive) {
		t.Errorf("missing file reported as corrupt archive: %v", err)
	}
	if !os.IsNotExist(err) {
		t.Errorf("err = %v, want a not-exist filesystem error", err)
	}
}

func TestReadEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.jar")
	writeArchive(t, path, map[string]string{
		"fabric.mod.json": `{"id": "m", "icon": "assets/icon.png"}`,
		"assets/icon.png": "PNGDATA",
	})

	data, err := ReadEntry(path, "assets/icon.png")
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	if string(data) != "PNGDATA" {
		t.Errorf("Data = %q", data)
	}

	if _, err := ReadEntry(path, "assets/other.png"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}
