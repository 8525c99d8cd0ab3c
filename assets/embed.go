package assets

import (
	"embed"

	"github.com/milk9111/hdparallax/atlas"
	"github.com/milk9111/hdparallax/meta"
)

// FS holds the bundled atlas. Textures and their .meta.yaml documents live
// side by side under bgs/.
//
//go:embed bgs
var FS embed.FS

// LoadSheet decodes the bundled textures.
func LoadSheet() (*atlas.Sheet, error) {
	return atlas.Load(FS, ".")
}

// Resources resolves metadata from dir first, falling back to the bundled
// copies. dir may be empty.
func Resources(dir string) meta.DirResources {
	return meta.DirResources{Dir: dir, FS: FS, Root: "."}
}
