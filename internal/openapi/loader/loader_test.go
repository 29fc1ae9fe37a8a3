package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-admaiora/pkg/openapi"
)

func TestLoader_LoadsFromFS(t *testing.T) {
	files := fstest.MapFS{
		"schema/contact.yaml": {Data: []byte("openapi: 3.0.3\n")},
	}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("schema/contact.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "openapi: 3.0.3\n" {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != "schema/contact.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoader_LoadsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	l := New(pkgopenapi.NewLoaderOptions())

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Source().Kind() != pkgopenapi.SourceKindFile {
		t.Fatalf("unexpected source kind %q", doc.Source().Kind())
	}
}

func TestLoader_Errors(t *testing.T) {
	l := New(pkgopenapi.NewLoaderOptions())
	ctx := context.Background()

	if _, err := l.Load(ctx, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFS("missing.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFile(filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Fatalf("expected error for missing file")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	withFS := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(fstest.MapFS{
		"a.yaml": {Data: []byte("x")},
	})))
	if _, err := withFS.Load(cancelled, pkgopenapi.SourceFromFS("a.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
