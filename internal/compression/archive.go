// Package compression reads portrait images out of zip and tar archives.
package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"
)

// DefaultMaxEntryBytes caps the decompressed size of a single entry.
const DefaultMaxEntryBytes = 50 << 20

// ErrEntryTooLarge is returned when an entry exceeds the size cap.
var ErrEntryTooLarge = errors.New("archive entry too large")

// Entry is one file read from an archive.
type Entry struct {
	Name string
	Data []byte
}

// Format is a supported archive layout.
type Format string

const (
	FormatZip   Format = "zip"
	FormatTar   Format = "tar"
	FormatTarGz Format = "tar.gz"
	FormatTarXz Format = "tar.xz"
	FormatTarBz Format = "tar.bz2"
)

// DetectFormat returns the archive format implied by name, or "" when name
// is not an archive.
func DetectFormat(name string) Format {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".zip"):
		return FormatZip
	case strings.HasSuffix(n, ".tar.gz"), strings.HasSuffix(n, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(n, ".tar.xz"), strings.HasSuffix(n, ".txz"):
		return FormatTarXz
	case strings.HasSuffix(n, ".tar.bz2"), strings.HasSuffix(n, ".tbz2"):
		return FormatTarBz
	case strings.HasSuffix(n, ".tar"):
		return FormatTar
	default:
		return ""
	}
}

// IsArchive reports whether name has a supported archive extension.
func IsArchive(name string) bool {
	return DetectFormat(name) != ""
}

// Options controls ReadFile and Read.
type Options struct {
	// Match selects entries by name. Nil keeps every regular file.
	Match func(name string) bool
	// MaxEntryBytes caps each entry. Zero means DefaultMaxEntryBytes.
	MaxEntryBytes int64
}

// ReadFile opens the archive at p and returns its matching entries sorted by
// name.
func ReadFile(p string, opts Options) ([]Entry, error) {
	format := DetectFormat(p)
	if format == "" {
		return nil, fmt.Errorf("unsupported archive: %s", p)
	}
	data, err := os.ReadFile(p) // #nosec G304 - user-specified archive, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return Read(data, format, opts)
}

// Read decodes an in-memory archive of the given format.
func Read(data []byte, format Format, opts Options) ([]Entry, error) {
	if opts.MaxEntryBytes <= 0 {
		opts.MaxEntryBytes = DefaultMaxEntryBytes
	}
	if opts.Match == nil {
		opts.Match = func(string) bool { return true }
	}

	var (
		entries []Entry
		err     error
	)
	switch format {
	case FormatZip:
		entries, err = readZip(data, opts)
	case FormatTar:
		entries, err = readTar(bytes.NewReader(data), opts)
	case FormatTarGz:
		gzr, gerr := gzip.NewReader(bytes.NewReader(data))
		if gerr != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", gerr)
		}
		defer gzr.Close()
		entries, err = readTar(gzr, opts)
	case FormatTarXz:
		xzr, xerr := xz.NewReader(bytes.NewReader(data))
		if xerr != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", xerr)
		}
		entries, err = readTar(xzr, opts)
	case FormatTarBz:
		entries, err = readTar(bzip2.NewReader(bytes.NewReader(data)), opts)
	default:
		return nil, fmt.Errorf("unsupported archive format: %q", format)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func readZip(data []byte, opts Options) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var entries []Entry
	for _, f := range zr.File {
		name, ok := cleanName(f.Name)
		if !ok || !f.Mode().IsRegular() || !opts.Match(name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", name, err)
		}
		body, err := readLimited(rc, opts.MaxEntryBytes)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Data: body})
	}
	return entries, nil
}

func readTar(r io.Reader, opts Options) ([]Entry, error) {
	tr := tar.NewReader(r)
	var entries []Entry
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		name, ok := cleanName(header.Name)
		if !ok || !opts.Match(name) {
			continue
		}
		body, err := readLimited(tr, opts.MaxEntryBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Data: body})
	}
	return entries, nil
}

// cleanName normalises an entry name and rejects absolute or escaping paths.
func cleanName(name string) (string, bool) {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		return "", false
	}
	return name, true
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrEntryTooLarge, limit)
	}
	return data, nil
}
