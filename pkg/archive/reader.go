// Package archive reads named entries from classpath locations that are
// either directories or JAR/ZIP archives.
//
// Absence of an entry is the normal case for most classpath locations, so
// [Reader.Read] never fails: I/O problems are logged and reported the same
// way as a missing entry.
package archive

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
)

// Reader reads entries from directories and archives.
// The zero value logs to log.Default().
type Reader struct {
	Logger *log.Logger
}

// NewReader returns a Reader logging to logger (log.Default() if nil).
func NewReader(logger *log.Logger) *Reader {
	return &Reader{Logger: logger}
}

func (r *Reader) logger() *log.Logger {
	if r == nil || r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Read returns the UTF-8 text of entryName inside location.
//
// If location is a directory, entryName is a file below it. If location is a
// regular file it is opened as a ZIP archive and entryName is matched
// verbatim against the archive's entry names, so "nested/eea-for-gav" finds
// the nested entry and not the root one. The archive is closed before Read
// returns. The second result is false when the entry is absent, location
// does not exist, or any I/O error occurs.
func (r *Reader) Read(location, entryName string) (string, bool) {
	info, err := os.Stat(location)
	if err != nil {
		r.logger().Error("File does not exist", "path", location)
		return "", false
	}
	switch {
	case info.IsDir():
		return r.readFile(filepath.Join(location, filepath.FromSlash(entryName)))
	case info.Mode().IsRegular():
		return r.readEntry(location, entryName)
	default:
		r.logger().Error("File is neither a directory nor a file", "path", location)
		return "", false
	}
}

func (r *Reader) readFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		r.logger().Error("Cannot read file", "path", path, "err", err)
		return "", false
	}
	return string(data), true
}

func (r *Reader) readEntry(archivePath, entryName string) (string, bool) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		r.logger().Error("Cannot open archive", "path", archivePath, "entry", entryName, "err", err)
		return "", false
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.logger().Error("Cannot open archive entry", "path", archivePath, "entry", entryName, "err", err)
			return "", false
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			r.logger().Error("Cannot read archive entry", "path", archivePath, "entry", entryName, "err", err)
			return "", false
		}
		return string(data), true
	}
	return "", false
}
