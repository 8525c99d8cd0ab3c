package atlas

import (
	"sort"
	"strconv"
	"strings"
)

// Atlas looks textures up by logical path.
type Atlas interface {
	// Subtextures returns every texture named prefix followed only by digits,
	// ordered by that numeric suffix.
	Subtextures(prefix string) []*Texture
	// Texture returns the texture registered under path.
	Texture(path string) (*Texture, bool)
}

// Sheet is an in-memory Atlas.
type Sheet struct {
	textures map[string]*Texture
}

func NewSheet() *Sheet {
	return &Sheet{textures: make(map[string]*Texture)}
}

// Register stores tex under its path, replacing any previous entry.
func (s *Sheet) Register(tex *Texture) {
	if s == nil || tex == nil || tex.Path == "" {
		return
	}
	s.textures[tex.Path] = tex
}

func (s *Sheet) Texture(path string) (*Texture, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	tex, ok := s.textures[path]
	return tex, ok
}

func (s *Sheet) Subtextures(prefix string) []*Texture {
	if s == nil {
		return nil
	}
	type numbered struct {
		n   int
		tex *Texture
	}
	var found []numbered
	for path, tex := range s.textures {
		suffix, ok := strings.CutPrefix(path, prefix)
		if !ok || suffix == "" || !allDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		found = append(found, numbered{n: n, tex: tex})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].n != found[j].n {
			return found[i].n < found[j].n
		}
		return found[i].tex.Path < found[j].tex.Path
	})
	out := make([]*Texture, len(found))
	for i, f := range found {
		out[i] = f.tex
	}
	return out
}

// Len returns the number of registered textures.
func (s *Sheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.textures)
}

// Bytes sums the footprint of every registered texture.
func (s *Sheet) Bytes() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, tex := range s.textures {
		total += tex.Bytes()
	}
	return total
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
