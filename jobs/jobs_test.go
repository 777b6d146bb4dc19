package jobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPlacement(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantCol string
		wantRow string
	}{
		{"regular", Spec{Width: 2, Height: 3}, "span 2", "span 3"},
		{"single", Spec{Width: 1, Height: 1}, "span 1", "span 1"},
		{"clamped", Spec{Width: 0, Height: -4}, "span 1", "span 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := Placement(tt.spec)
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("Placement() = (%q, %q), want (%q, %q)", col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}

func TestImageFilter(t *testing.T) {
	if got := ImageFilter(Spec{Cheap: true}); got != "grayscale(75%)" {
		t.Errorf("expected grayscale filter for cheap job, got %q", got)
	}
	if got := ImageFilter(Spec{}); got != "" {
		t.Errorf("expected no filter, got %q", got)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	specs, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if specs == nil || len(specs) != 0 {
		t.Errorf("expected empty non-nil list, got %v", specs)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jobs.yaml", `
jobs:
  - title: Granite upright
    width: 2
    height: 3
    cheap: true
    highlighted_photo:
      src: photos/upright.jpg
    photos:
      - src: photos/upright-side.jpg
        alt: side view
  - title: Flat marker
    width: 1
    height: 1
    highlighted_photo:
      src: photos/marker.jpg
`)

	specs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(specs))
	}

	first := specs[0]
	if first.Title != "Granite upright" || first.Width != 2 || first.Height != 3 || !first.Cheap {
		t.Errorf("unexpected first job %+v", first)
	}
	if first.HighlightedPhoto.Src != "photos/upright.jpg" {
		t.Errorf("unexpected highlighted photo %+v", first.HighlightedPhoto)
	}
	if len(first.Photos) != 1 || first.Photos[0].Alt != "side view" {
		t.Errorf("unexpected photos %+v", first.Photos)
	}
	if specs[1].Cheap {
		t.Error("expected second job not to be cheap")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")

	specs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("expected no jobs, got %v", specs)
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "job10.yaml", "jobs:\n  - {title: ten, width: 1, height: 1}\n")
	writeFile(t, dir, "job2.yml", "jobs:\n  - {title: two, width: 1, height: 1}\n")
	writeFile(t, dir, "job1.yaml", "jobs:\n  - {title: one, width: 1, height: 1}\n")
	writeFile(t, dir, "notes.txt", "not a job")
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	specs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var titles []string
	for _, s := range specs {
		titles = append(titles, s.Title)
	}
	if got := strings.Join(titles, ","); got != "one,two,ten" {
		t.Errorf("expected natural order one,two,ten, got %s", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero width", "jobs:\n  - {title: bad, width: 0, height: 1}\n", "invalid jobs"},
		{"missing height", "jobs:\n  - {title: bad, width: 1}\n", "invalid jobs"},
		{"unknown field", "jobs:\n  - {title: bad, width: 1, height: 1, colour: red}\n", "failed to decode jobs"},
		{"not yaml", "jobs: [", "failed to decode jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.yaml", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) || !strings.Contains(err.Error(), "bad.yaml") {
				t.Errorf("unexpected error %v", err)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
