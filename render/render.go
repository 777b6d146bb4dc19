// Package render implements the render command: it assembles the page for
// configured jobs and writes it out as a directory or a zip archive.
package render

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bms/common"
	"bms/config"
	"bms/jobs"
	"bms/site"
)

// IndexName is the name of the rendered page.
const IndexName = "index.html"

// ErrExists is returned when output is already present and overwriting was
// not requested.
var ErrExists = errors.New("destination already exists")

// Request describes single render.
type Request struct {
	Settings    site.Settings
	Jobs        []jobs.Spec
	Destination string // directory
	Format      common.OutputFmt
	Overwrite   bool
}

type artifact struct {
	name string
	data []byte
}

// ArchiveName returns file name of zip output for company.
func ArchiveName(company string) string {
	name := slug.Make(company)
	if name == "" {
		name = "site"
	}
	return config.CleanFileName(name) + common.OutputFmtZip.Ext()
}

func prepare(doc *site.Document) ([]artifact, error) {
	page := new(bytes.Buffer)
	if err := doc.WriteHTML(page); err != nil {
		return nil, fmt.Errorf("unable to render page: %w", err)
	}
	out := []artifact{{name: IndexName, data: page.Bytes()}}

	if doc.External {
		sheet := new(bytes.Buffer)
		if err := doc.WriteCSS(sheet); err != nil {
			return nil, fmt.Errorf("unable to render stylesheet: %w", err)
		}
		out = append(out, artifact{name: site.StylesheetName, data: sheet.Bytes()})
	}
	return out, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Process assembles document and writes it. It returns path to the produced
// index file or archive.
func Process(ctx context.Context, req Request, rpt *config.Report, log *zap.Logger) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := site.Assemble(req.Settings, req.Jobs, log)
	if err != nil {
		return "", err
	}
	arts, err := prepare(doc)
	if err != nil {
		return "", err
	}
	for _, a := range arts {
		rpt.StoreData(filepath.ToSlash(filepath.Join("output", a.name)), a.data)
	}

	if err := os.MkdirAll(req.Destination, 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	switch req.Format {
	case common.OutputFmtDir:
		return writeDir(req.Destination, arts, req.Overwrite, log)
	case common.OutputFmtZip:
		return writeZip(filepath.Join(req.Destination, ArchiveName(req.Settings.Company)), arts, req.Overwrite, log)
	default:
		return "", fmt.Errorf("unsupported output format %v", req.Format)
	}
}

func writeDir(dir string, arts []artifact, overwrite bool, log *zap.Logger) (string, error) {
	if !overwrite {
		for _, a := range arts {
			path := filepath.Join(dir, a.name)
			found, err := exists(path)
			if err != nil {
				return "", err
			}
			if found {
				return "", fmt.Errorf("%w: %s", ErrExists, path)
			}
		}
	}
	for _, a := range arts {
		path := filepath.Join(dir, a.name)
		if err := os.WriteFile(path, a.data, 0644); err != nil {
			return "", fmt.Errorf("unable to write %s: %w", a.name, err)
		}
		log.Debug("Output written", zap.String("file", path), zap.Int("size", len(a.data)))
	}
	return filepath.Join(dir, IndexName), nil
}

func writeZip(path string, arts []artifact, overwrite bool, log *zap.Logger) (_ string, err error) {
	if !overwrite {
		found, err := exists(path)
		if err != nil {
			return "", err
		}
		if found {
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	zw := zip.NewWriter(f)
	for _, a := range arts {
		w, err := zw.Create(a.name)
		if err != nil {
			return "", multierr.Append(err, zw.Close())
		}
		if _, err := w.Write(a.data); err != nil {
			return "", multierr.Append(err, zw.Close())
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("unable to finalize archive: %w", err)
	}
	log.Debug("Archive written", zap.String("file", path), zap.Int("entries", len(arts)))
	return path, nil
}
