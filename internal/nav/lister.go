package nav

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"viewer/internal/imagepath"
)

// Entry is one candidate in a listing.
type Entry struct {
	Path    imagepath.ImagePath
	Name    string
	ModTime time.Time
}

// Lister produces the unsorted candidates that surround current.
type Lister interface {
	List(current imagepath.ImagePath) ([]Entry, error)
}

// DirLister changes the working directory to the directory of the current
// file and lists its regular files. Every file is a candidate; files the
// decoder rejects are skipped during navigation.
type DirLister struct{}

func (DirLister) List(current imagepath.ImagePath) ([]Entry, error) {
	dir, err := filepath.Abs(filepath.Dir(current.Path))
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("changing directory to %s: %w", dir, err)
	}

	dirEntries, err := os.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		entries = append(entries, Entry{
			Path:    imagepath.File(filepath.Join(dir, de.Name())),
			Name:    de.Name(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

// ArchiveLister lists the image entries of the archive holding current.
type ArchiveLister struct{}

func (ArchiveLister) List(current imagepath.ImagePath) ([]Entry, error) {
	archived, err := imagepath.ListArchive(current.ArchivePath)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(archived))
	for _, a := range archived {
		entries = append(entries, Entry{
			Path:    a.Path,
			Name:    a.Path.Name(),
			ModTime: a.ModTime,
		})
	}
	return entries, nil
}

// SourceLister picks the archive lister for archive entries and the
// directory lister otherwise.
type SourceLister struct {
	Dir     Lister
	Archive Lister
}

// NewSourceLister returns a SourceLister backed by the filesystem.
func NewSourceLister() *SourceLister {
	return &SourceLister{Dir: DirLister{}, Archive: ArchiveLister{}}
}

func (l *SourceLister) List(current imagepath.ImagePath) ([]Entry, error) {
	if current.InArchive() {
		return l.Archive.List(current)
	}
	return l.Dir.List(current)
}
