// Package imagepath identifies an image either as a plain file or as an
// entry inside a zip, rar or 7z archive, and reads its bytes.
package imagepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// File returns the ImagePath of a plain file.
func File(path string) ImagePath {
	return ImagePath{Path: path}
}

// Entry returns the ImagePath of an archive entry.
func Entry(archivePath, entryPath string) ImagePath {
	return ImagePath{
		Path:        archivePath + ":" + entryPath,
		ArchivePath: archivePath,
		EntryPath:   entryPath,
	}
}

// InArchive reports whether the image lives inside an archive.
func (p ImagePath) InArchive() bool {
	return p.ArchivePath != ""
}

// Name is the name used for ordering and display: the base name of a file,
// or the entry path inside an archive.
func (p ImagePath) Name() string {
	if p.InArchive() {
		return p.EntryPath
	}
	return filepath.Base(p.Path)
}

// DisplayName is used in the window title.
func (p ImagePath) DisplayName() string {
	if p.InArchive() {
		return filepath.Base(p.ArchivePath) + ":" + filepath.Base(p.EntryPath)
	}
	return filepath.Base(p.Path)
}

func (p ImagePath) String() string {
	return p.Path
}

var supportedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

var archiveExts = map[string]bool{
	".zip": true,
	".cbz": true,
	".rar": true,
	".cbr": true,
	".7z":  true,
	".cb7": true,
}

func IsSupportedExt(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

func IsArchiveExt(path string) bool {
	return archiveExts[strings.ToLower(filepath.Ext(path))]
}

// SupportedPatterns returns glob patterns for every readable extension,
// archives included.
func SupportedPatterns() []string {
	var patterns []string
	for _, group := range []map[string]bool{supportedExts, archiveExts} {
		for ext := range group {
			patterns = append(patterns, "*"+ext)
		}
	}
	return patterns
}

// ReadAll returns the raw bytes of the image.
func ReadAll(p ImagePath) ([]byte, error) {
	if !p.InArchive() {
		return os.ReadFile(p.Path)
	}
	data, err := readEntry(p.ArchivePath, p.EntryPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Path, err)
	}
	return data, nil
}

// Fingerprint identifies the current contents of the image for caching:
// the path plus the size and modification time of the file (or archive).
func Fingerprint(p ImagePath) (string, error) {
	file := p.Path
	if p.InArchive() {
		file = p.ArchivePath
	}
	info, err := os.Stat(file)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", p.Path, info.Size(), info.ModTime().UnixNano()), nil
}
