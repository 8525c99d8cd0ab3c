package atlas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/common"
)

// Load decodes every PNG under root in fsys into a Sheet. Texture paths are
// relative to root with the extension removed. A missing root yields an empty
// sheet.
func Load(fsys fs.FS, root string) (*Sheet, error) {
	sheet := NewSheet()
	if fsys == nil {
		return sheet, nil
	}
	root = strings.Trim(path.Clean("/"+root), "/")
	if root == "" {
		root = "."
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".png") {
			return nil
		}
		img, err := decodeImage(fsys, p)
		if err != nil {
			return err
		}
		sheet.Register(NewTexture(texturePath(root, p), img))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			common.Logf("Atlas", "atlas root %q not found, starting empty", root)
			return sheet, nil
		}
		return nil, fmt.Errorf("atlas: load %s: %w", root, err)
	}

	common.Logf("Atlas", "loaded %d textures (%s)", sheet.Len(), humanize.Bytes(uint64(sheet.Bytes())))
	return sheet, nil
}

func decodeImage(fsys fs.FS, p string) (*ebiten.Image, error) {
	b, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", p, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("atlas: decode %s: %w", p, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func texturePath(root, p string) string {
	rel := p
	if root != "." {
		rel = strings.TrimPrefix(p, root+"/")
	}
	return strings.TrimSuffix(rel, path.Ext(rel))
}
