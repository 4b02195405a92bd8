package db

import (
	"gorm.io/gorm"
)

// ScanRun represents one completed analysis of a mods folder
type ScanRun struct {
	gorm.Model
	ModsDir       string // Folder that was scanned
	OutputDir     string // Per-run output directory
	LogPath       string // Generated report, empty when disabled
	Total         int    // Archives considered
	ServerCapable int
	ClientOnly    int
	Unparseable   int
	Skipped       int // Files skipped over filesystem errors
}

// ScanResult is the stored verdict for a single archive within a run
type ScanResult struct {
	gorm.Model
	ScanRunID     uint   `gorm:"index"` // References ScanRun.ID
	FileName      string // Archive file name
	DisplayName   string // Manifest display name, file name fallback
	ModID         string
	Loader        string // fabric, forge, unknown
	Category      string // server-capable, client-only, unparseable
	Reason        string // Parse failure reason, if any
	Skipped       bool
	CurseForgeURL string
	ModrinthURL   string
	MCModURL      string
}
