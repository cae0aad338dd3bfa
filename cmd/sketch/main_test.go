package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/gallery"
)

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-list"}, &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("run -list: %v", err)
	}
	for _, want := range []string{"sierpinski", "map", "svg", "pdf"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("-list output %q lacks %q", out.String(), want)
		}
	}
}

func TestRunWritesFormats(t *testing.T) {
	tests := []struct {
		file  string
		magic string
	}{
		{"out.png", "\x89PNG"},
		{"out.svg", "<?xml"},
		{"out.pdf", "%PDF"},
		{"out.eps", "%!PS"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			args := []string{"-demo", "tiles", "-w", "120", "-h", "90", "-o", path}
			if err := run(args, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
				t.Fatalf("run: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte(tt.magic)) {
				t.Errorf("%s starts with %q, want %q", tt.file, data[:min(len(data), 8)], tt.magic)
			}
		})
	}
}

func TestRunConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sketch.toml")
	fromConfig := filepath.Join(dir, "config.svg")
	cfg := `width = 100
height = 80
output = "` + filepath.ToSlash(fromConfig) + `"
demo = "sectors"
font = "Go-Mono"
log_level = "warn"

[inputs]
benchmarks = ""
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{"-config", cfgPath}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run with config: %v", err)
	}
	if _, err := os.Stat(fromConfig); err != nil {
		t.Errorf("config output not written: %v", err)
	}

	// Flags override the file.
	fromFlag := filepath.Join(dir, "flag.png")
	var stderr bytes.Buffer
	if err := run([]string{"-config", cfgPath, "-o", fromFlag, "-demo", "stars", "-v"}, &bytes.Buffer{}, &stderr); err != nil {
		t.Fatalf("run with override: %v", err)
	}
	if _, err := os.Stat(fromFlag); err != nil {
		t.Errorf("flag output not written: %v", err)
	}
	if !strings.Contains(stderr.String(), "level=DEBUG") {
		t.Errorf("-v did not enable debug logging: %q", stderr.String())
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"defaults kept", "demo = \"logo\"\n", false},
		{"unknown key", "colour = \"red\"\n", true},
		{"bad syntax", "width = \n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := loadConfig(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadConfig error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && (cfg.Width != 800 || cfg.Demo != "logo") {
				t.Errorf("loadConfig = %+v", cfg)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown demo", []string{"-demo", "mandala", "-o", filepath.Join(dir, "a.png")}, gallery.ErrUnknownDemo},
		{"unknown extension", []string{"-demo", "tiles", "-o", filepath.Join(dir, "a.webm")}, sketch.ErrUnknownFormat},
		{"bad size", []string{"-w", "0"}, nil},
		{"bad flag", []string{"-nope"}, nil},
		{"missing config", []string{"-config", filepath.Join(dir, "none.toml")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if err == nil {
				t.Fatal("run succeeded, want an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
