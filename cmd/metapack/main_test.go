package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/hdparallax/meta"
)

func writeFile(t *testing.T, root, rel, data string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func openPack(t *testing.T) *meta.Pack {
	t.Helper()
	p, err := meta.OpenPack(filepath.Join(t.TempDir(), "meta.res"), false)
	if err != nil {
		t.Fatalf("OpenPack: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPackDir(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "bgs/a/cloud.meta.yaml", "fps: 8\n")
	writeFile(t, src, "bgs/b/rain.meta.yml", "frames: 0-2\n")
	writeFile(t, src, "bgs/b/rain00.png", "not scanned")
	writeFile(t, src, "bgs/b/notes.yaml", "ignored: true\n")

	p := openPack(t)
	n, size, err := packDir(src, p, false)
	if err != nil {
		t.Fatalf("packDir: %v", err)
	}
	if n != 2 || size != len("fps: 8\n")+len("frames: 0-2\n") {
		t.Fatalf("packed %d docs, %d bytes", n, size)
	}
	data, ok := p.TryGetResource("bgs/a/cloud.meta")
	if !ok || string(data) != "fps: 8\n" {
		t.Fatalf("cloud = %q, %v", data, ok)
	}
	if _, ok := p.TryGetResource("bgs/b/rain.meta"); !ok {
		t.Fatalf("rain missing")
	}
}

func TestPackDirRejectsInvalid(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "bgs/a/cloud.meta.yaml", "fps: 0\n")

	if _, _, err := packDir(src, openPack(t), false); err == nil {
		t.Fatalf("packDir accepted fps 0")
	}

	p := openPack(t)
	n, _, err := packDir(src, p, true)
	if err != nil || n != 1 {
		t.Fatalf("keep invalid: n=%d err=%v", n, err)
	}
}
