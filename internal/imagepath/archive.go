package imagepath

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
)

// ArchiveEntry is an image stored in an archive.
type ArchiveEntry struct {
	Path    ImagePath
	ModTime time.Time
}

// ListArchive returns the image entries of an archive in stored order.
func ListArchive(archivePath string) ([]ArchiveEntry, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip", ".cbz":
		return listZip(archivePath)
	case ".rar", ".cbr":
		return listRar(archivePath)
	case ".7z", ".cb7":
		return list7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func readEntry(archivePath, entryPath string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip", ".cbz":
		return readZipEntry(archivePath, entryPath)
	case ".rar", ".cbr":
		return readRarEntry(archivePath, entryPath)
	case ".7z", ".cb7":
		return read7zEntry(archivePath, entryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

func listZip(archivePath string) ([]ArchiveEntry, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []ArchiveEntry
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && IsSupportedExt(f.Name) {
			entries = append(entries, ArchiveEntry{
				Path:    Entry(archivePath, f.Name),
				ModTime: f.Modified,
			})
		}
	}
	return entries, nil
}

func readZipEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func listRar(archivePath string) ([]ArchiveEntry, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var entries []ArchiveEntry
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && IsSupportedExt(header.Name) {
			entries = append(entries, ArchiveEntry{
				Path:    Entry(archivePath, header.Name),
				ModTime: header.ModificationTime,
			})
		}
	}
	return entries, nil
}

func readRarEntry(archivePath, entryPath string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func list7z(archivePath string) ([]ArchiveEntry, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []ArchiveEntry
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && IsSupportedExt(f.Name) {
			entries = append(entries, ArchiveEntry{
				Path:    Entry(archivePath, f.Name),
				ModTime: f.Modified,
			})
		}
	}
	return entries, nil
}

func read7zEntry(archivePath, entryPath string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}
