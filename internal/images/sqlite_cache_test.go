package images

import (
	"path/filepath"
	"testing"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

func TestSQLiteCache_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	c, err := OpenSQLiteCache(path, nil)
	if err != nil {
		t.Fatalf("OpenSQLiteCache: %v", err)
	}
	img := entity.EncodedImage{CacheKey: "pag-1.png", MIMEType: "image/png", DataURL: "data:image/png;base64,QUJD"}
	c.Put(img)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = OpenSQLiteCache(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()

	got, ok := c.Get("pag-1.png")
	if !ok {
		t.Fatal("entry lost across reopen")
	}
	if got != img {
		t.Errorf("got %+v, want %+v", got, img)
	}

	if _, ok := c.Get("inexistente"); ok {
		t.Error("unexpected hit")
	}
}

func TestSQLiteCache_UpsertReplaces(t *testing.T) {
	c, err := OpenSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Put(entity.EncodedImage{CacheKey: "k", MIMEType: "image/png", DataURL: "v1"})
	c.Put(entity.EncodedImage{CacheKey: "k", MIMEType: "image/png", DataURL: "v2"})

	got, ok := c.Get("k")
	if !ok || got.DataURL != "v2" {
		t.Errorf("got %+v, want latest value", got)
	}
}
