package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Materializer resolves referenced filenames against a media tree laid out as
// one subfolder per media identity.
type Materializer struct {
	root        string
	searchDepth int
}

func NewMaterializer(root string, searchDepth int) *Materializer {
	return &Materializer{
		root:        root,
		searchDepth: searchDepth,
	}
}

// Root is the media tree the materializer resolves against.
func (m *Materializer) Root() string {
	return m.root
}

// Resolution lists the files found for a set of references and the filenames that could not be found.
type Resolution struct {
	Paths   []string
	Missing []string
}

func (r *Resolution) add(path string) {
	for _, existing := range r.Paths {
		if existing == path {
			return
		}
	}
	r.Paths = append(r.Paths, path)
}

// Resolve looks for filename in the identity subfolder first, then anywhere in the tree.
func (m *Materializer) Resolve(filename, identity string) (string, bool) {
	return m.resolve(filename, identity)
}

// ResolveReference also tries the folder named by a nested reference before the identity subfolder.
func (m *Materializer) ResolveReference(ref Reference, identity string) (string, bool) {
	if ref.Folder != "" && ref.Folder != identity && validName(ref.Folder) {
		if p, ok := regularFile(filepath.Join(m.root, ref.Folder, ref.Filename)); ok {
			return p, true
		}
	}
	return m.resolve(ref.Filename, identity)
}

// ResolveAll resolves every distinct reference, logging the ones that cannot be found.
func (m *Materializer) ResolveAll(refs []Reference, identity string) Resolution {
	var result Resolution
	for _, ref := range Distinct(refs) {
		p, ok := m.ResolveReference(ref, identity)
		if !ok {
			slog.Default().Warn("media file not found",
				slog.String("filename", ref.Filename),
				slog.String("identity", identity),
				slog.String("root", m.root),
			)
			result.Missing = append(result.Missing, ref.Filename)
			continue
		}
		result.add(p)
	}
	return result
}

func (m *Materializer) resolve(filename, identity string) (string, bool) {
	if !validName(filename) {
		return "", false
	}
	if identity != "" && validName(identity) {
		if p, ok := regularFile(filepath.Join(m.root, identity, filename)); ok {
			return p, true
		}
	}

	found, ok := m.search(filename)
	if ok {
		slog.Default().Warn("media file found outside its deck folder, the deck identity may not match the media layout",
			slog.String("filename", filename),
			slog.String("identity", identity),
			slog.String("path", found),
		)
	}
	return found, ok
}

// search walks the tree in lexical order, at most searchDepth folders deep, and returns the first file named filename.
func (m *Materializer) search(filename string) (string, bool) {
	var found string
	err := filepath.WalkDir(m.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == m.root {
				return err
			}
			// unreadable subtrees are skipped
			return nil
		}
		if d.IsDir() {
			if p != m.root && depth(m.root, p) > m.searchDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == filename && d.Type().IsRegular() {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().Debug("media search failed",
			slog.String("root", m.root),
			slog.Any("error", err),
		)
	}
	return found, found != ""
}

func depth(root, p string) int {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func regularFile(p string) (string, bool) {
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

// LocateFlat resolves references against a flat store such as the application's private media folder.
func LocateFlat(dir string, refs []Reference) Resolution {
	var result Resolution
	for _, ref := range Distinct(refs) {
		if !validName(ref.Filename) {
			result.Missing = append(result.Missing, ref.Filename)
			continue
		}
		p, ok := regularFile(filepath.Join(dir, ref.Filename))
		if !ok {
			slog.Default().Warn("media file not found in the private store",
				slog.String("filename", ref.Filename),
				slog.String("store", dir),
			)
			result.Missing = append(result.Missing, ref.Filename)
			continue
		}
		result.add(p)
	}
	return result
}

// Materialize copies each file into destination and returns how many were copied.
// A destination file that already exists is presumed identical and skipped. Copy failures do not stop the
// batch; they are joined into the returned error.
func Materialize(paths []string, destination string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return 0, fmt.Errorf("os.MkdirAll(%s) > %w", destination, err)
	}

	copied := 0
	targets := make(map[string]struct{}, len(paths))
	var errs []error
	for _, src := range paths {
		target := filepath.Join(destination, filepath.Base(src))
		if _, ok := targets[target]; ok {
			continue
		}
		targets[target] = struct{}{}

		if _, err := os.Lstat(target); err == nil {
			continue
		}
		if err := copyFile(src, target); err != nil {
			errs = append(errs, fmt.Errorf("copyFile(%s, %s) > %w", src, target, err))
			continue
		}
		copied++
	}
	return copied, errors.Join(errs...)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = in.Close()
	}()
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("file.Stat > %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("os.OpenFile > %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("file.Close > %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("io.Copy > %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("os.Chtimes > %w", err)
	}
	return nil
}
