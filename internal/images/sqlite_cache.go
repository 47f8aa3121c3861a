package images

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// SQLiteCache layers a persistent tier under a memory cache so encoded
// images survive process restarts. Purely an optimization: every lookup
// falls back to the memory tier and every error degrades to a miss.
type SQLiteCache struct {
	mem    *MemoryCache
	db     *sql.DB
	logger *slog.Logger
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS encoded_image (
	cache_key TEXT PRIMARY KEY,
	mime_type TEXT NOT NULL,
	data_url  TEXT NOT NULL
);`

func OpenSQLiteCache(path string, logger *slog.Logger) (*SQLiteCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteCache{mem: NewMemoryCache(), db: db, logger: logger}, nil
}

func (c *SQLiteCache) Get(key string) (entity.EncodedImage, bool) {
	if img, ok := c.mem.Get(key); ok {
		return img, true
	}
	var img entity.EncodedImage
	row := c.db.QueryRow(`SELECT cache_key, mime_type, data_url FROM encoded_image WHERE cache_key = ?`, key)
	if err := row.Scan(&img.CacheKey, &img.MIMEType, &img.DataURL); err != nil {
		if err != sql.ErrNoRows {
			c.logger.Warn("images.cache.sqlite_read_failed", "key", key, "error", err)
		}
		return entity.EncodedImage{}, false
	}
	c.mem.Put(img)
	return img, true
}

func (c *SQLiteCache) Put(img entity.EncodedImage) {
	c.mem.Put(img)
	_, err := c.db.Exec(
		`INSERT INTO encoded_image (cache_key, mime_type, data_url) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET mime_type = excluded.mime_type, data_url = excluded.data_url`,
		img.CacheKey, img.MIMEType, img.DataURL,
	)
	if err != nil {
		c.logger.Warn("images.cache.sqlite_write_failed", "key", img.CacheKey, "error", err)
	}
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
