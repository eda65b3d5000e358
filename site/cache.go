package site

import (
	"io/fs"
	"time"

	"github.com/ancientlore/cachefs"
	"github.com/google/uuid"
)

// cached wraps fsys with a read-only groupcache-backed cache when the config asks for one.
// groupcache groups live for the life of the process, so each call gets a unique group name.
func cached(fsys fs.FS, cfg CacheConfig) fs.FS {
	if cfg.Size <= 0 {
		return fsys
	}
	return cachefs.New(fsys, &cachefs.Config{
		GroupName:   "site-" + uuid.NewString(),
		SizeInBytes: cfg.Size,
		Duration:    time.Duration(cfg.Expires),
	})
}
