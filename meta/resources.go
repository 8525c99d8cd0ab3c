package meta

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resources looks up raw metadata documents by atlas-relative key, e.g.
// "bgs/foo/cloud.meta". found is false when no document of the expected
// schema exists.
type Resources interface {
	TryGetResource(key string) (data []byte, found bool)
}

// schemaExts are the file extensions that mark a resource as YAML metadata.
var schemaExts = []string{".yaml", ".yml"}

// DirResources resolves keys against a directory on disk first, then against
// an embedded filesystem. Either side may be empty.
type DirResources struct {
	// Dir is the on-disk root mirroring the atlas layout.
	Dir string
	// FS is the fallback filesystem and Root the atlas directory inside it.
	FS   fs.FS
	Root string
}

func (r DirResources) TryGetResource(key string) ([]byte, bool) {
	clean := cleanKey(key)
	if clean == "" {
		return nil, false
	}
	for _, ext := range schemaExts {
		name := clean + ext
		if r.Dir != "" {
			if data, err := os.ReadFile(filepath.Join(r.Dir, filepath.FromSlash(name))); err == nil {
				return data, true
			}
		}
		if r.FS != nil {
			if data, err := fs.ReadFile(r.FS, path.Join(r.fsRoot(), name)); err == nil {
				return data, true
			}
		}
	}
	return nil, false
}

func (r DirResources) fsRoot() string {
	if r.Root == "" {
		return "."
	}
	return strings.Trim(filepath.ToSlash(r.Root), "/")
}

// Chain consults each Resources in order and returns the first hit.
type Chain []Resources

func (c Chain) TryGetResource(key string) ([]byte, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if data, ok := r.TryGetResource(key); ok {
			return data, true
		}
	}
	return nil, false
}

func cleanKey(key string) string {
	if key == "" {
		return ""
	}
	s := path.Clean("/" + filepath.ToSlash(key))
	return strings.TrimPrefix(s, "/")
}
