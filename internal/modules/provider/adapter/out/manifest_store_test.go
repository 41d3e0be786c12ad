package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	providerout "pagepulse/internal/modules/provider/adapter/out"
)

func TestLoadOnAbsentStoreIsEmpty(t *testing.T) {
	t.Parallel()
	store := providerout.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("absent store should load empty, got %d", len(manifests))
	}
}

func TestLoadResolvesRelativeBinaryPaths(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "providers"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	payload := `[{"name":"reference","version":"1.0.0","binary":"bin/reference","sha256":"` +
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" + `","enabled":true}]`
	if err := os.WriteFile(filepath.Join(base, "providers", "providers.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write manifests: %v", err)
	}
	manifests, err := providerout.NewFileManifestStore(base).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	want := filepath.Join(base, "bin", "reference")
	if manifests[0].Binary != want {
		t.Fatalf("binary = %s, want %s", manifests[0].Binary, want)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "providers"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "providers", "providers.json"), []byte(`[{"name":"x","bogus":true}]`), 0o644); err != nil {
		t.Fatalf("write manifests: %v", err)
	}
	if _, err := providerout.NewFileManifestStore(base).Load(context.Background()); err == nil {
		t.Fatalf("unknown manifest fields should fail decode")
	}
}
