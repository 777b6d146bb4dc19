package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"

	"bms/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination could not be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{items: make(map[string]item), file: f}, nil
}

// item is either a path (file or directory) to be read at the time report is
// closed or a blob captured when stored.
type item struct {
	source string
	path   string
	stamp  time.Time
	blob   []byte
}

// Report gathers files and data for debug archive. Nil report silently
// ignores everything so callers do not have to check whether reporting was
// requested.
type Report struct {
	mu    sync.Mutex
	items map[string]item
	file  *os.File
}

func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers path to be archived later under name. Storing different
// path under the same name is a programming error.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.items[name]; ok && old.source != path {
		panic(fmt.Sprintf("report entry [%s] already points to %s, refusing %s", name, old.source, path))
	}
	it := item{source: path, path: path}
	if abs, err := filepath.Abs(path); err == nil {
		it.path = abs
	}
	r.items[name] = it
}

// StoreData archives data under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[name]; ok {
		panic(fmt.Sprintf("report entry [%s] already has data", name))
	}
	r.items[name] = item{blob: append([]byte{}, data...), stamp: time.Now()}
}

// StoreCopy snapshots file or directory at path into temporary location.
// Repeated names get time stamp suffix.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}

	it := item{source: path, stamp: time.Now()}
	switch {
	case info.Mode().IsRegular():
		data, err := os.ReadFile(abs)
		if err != nil {
			return err
		}
		it.path = filepath.Join(dir, filepath.Base(abs))
		if err := os.WriteFile(it.path, data, 0644); err != nil {
			return err
		}
	case info.IsDir():
		if err := os.CopyFS(dir, os.DirFS(abs)); err != nil {
			return err
		}
		it.path = dir
	default:
		return fmt.Errorf("unable to copy %s: not a regular file or directory", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; ok {
		name = fmt.Sprintf("%s-%d", name, it.stamp.UnixNano())
	}
	r.items[name] = it
	return nil
}

// Close writes archive and closes report file.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		err = multierr.Append(err, r.file.Close())
	}()

	arc := zip.NewWriter(r.file)
	err = r.write(arc)
	return multierr.Append(err, arc.Close())
}

func (r *Report) write(arc *zip.Writer) error {
	now := time.Now()

	names := slices.Collect(maps.Keys(r.items))
	sort.Sort(natural.StringSlice(names))

	manifest := new(bytes.Buffer)
	for _, name := range names {
		it := r.items[name]
		stamp := it.stamp
		if stamp.IsZero() {
			stamp = now
		}
		fmt.Fprintf(manifest, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), name, it.source, it.path)
	}
	if err := addEntry(arc, "MANIFEST", now, manifest); err != nil {
		return err
	}

	for _, name := range names {
		it := r.items[name]
		if it.blob != nil {
			if err := addEntry(arc, name, it.stamp, bytes.NewReader(it.blob)); err != nil {
				return err
			}
			continue
		}
		info, err := os.Stat(it.path)
		if err != nil {
			// file disappeared or was never created
			continue
		}
		if info.IsDir() {
			err = addTree(arc, name, it.path)
		} else if info.Mode().IsRegular() {
			err = addFile(arc, name, it.path, info.ModTime())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func addEntry(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func addFile(arc *zip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return addEntry(arc, name, t, f)
}

func addTree(arc *zip.Writer, name, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return addFile(arc, filepath.ToSlash(filepath.Join(name, rel)), path, info.ModTime())
	})
}
