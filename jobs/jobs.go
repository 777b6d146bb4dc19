// Package jobs describes completed work shown in the page grid and loads it
// from YAML files.
package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

// Photo is an image of a job.
type Photo struct {
	Src    string `yaml:"src"`
	Srcset string `yaml:"srcset,omitempty"`
	Alt    string `yaml:"alt,omitempty"`
}

// Spec is a single job placed in the grid. Width and Height are grid spans.
type Spec struct {
	Title            string  `yaml:"title"`
	Width            int     `yaml:"width" validate:"min=1"`
	Height           int     `yaml:"height" validate:"min=1"`
	Cheap            bool    `yaml:"cheap"`
	HighlightedPhoto Photo   `yaml:"highlighted_photo"`
	Photos           []Photo `yaml:"photos,omitempty"`
}

type document struct {
	Jobs []Spec `yaml:"jobs" validate:"dive"`
}

// GrayscaleFilter is applied to featured image of cheap jobs.
const GrayscaleFilter = "grayscale(75%)"

// Placement returns grid-column-start and grid-row-start values. Spans below
// 1 are treated as 1.
func Placement(s Spec) (column, row string) {
	return "span " + strconv.Itoa(max(1, s.Width)), "span " + strconv.Itoa(max(1, s.Height))
}

// ImageFilter returns filter for featured image, empty when none.
func ImageFilter(s Spec) string {
	if s.Cheap {
		return GrayscaleFilter
	}
	return ""
}

// Decode reads jobs document from r.
func Decode(r io.Reader) ([]Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	if err := gencfg.Validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid jobs: %w", err)
	}
	return doc.Jobs, nil
}

// Load reads jobs from path. Empty path means no jobs. When path is a
// directory every *.yaml and *.yml file in it is loaded in natural order.
func Load(path string) ([]Spec, error) {
	if path == "" {
		return []Spec{}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("unable to access jobs: %w", err)
	}
	if !info.IsDir() {
		return loadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read jobs directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))

	all := []Spec{}
	for _, name := range names {
		specs, err := loadFile(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		all = append(all, specs...)
	}
	return all, nil
}

func loadFile(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read jobs file: %w", err)
	}
	specs, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if specs == nil {
		specs = []Spec{}
	}
	return specs, nil
}
