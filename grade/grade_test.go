package grade

import (
	"bytes"
	"image/color"
	"testing"
)

func TestDefaultUniforms(t *testing.T) {
	u := DefaultParams().Uniforms()
	if u["Saturation"] != float32(1) || u["Contrast"] != float32(1) {
		t.Fatalf("uniforms = %v", u)
	}
	tint, ok := u["Tint"].([]float32)
	if !ok || len(tint) != 4 {
		t.Fatalf("tint = %#v", u["Tint"])
	}
	for i, v := range tint {
		if v != 1 {
			t.Fatalf("tint[%d] = %v, want 1", i, v)
		}
	}
}

func TestZeroTintIsWhite(t *testing.T) {
	u := Params{Saturation: 0.5, Contrast: 2}.Uniforms()
	tint := u["Tint"].([]float32)
	if tint[0] != 1 || tint[3] != 1 {
		t.Fatalf("tint = %v, want white", tint)
	}
	if u["Saturation"] != float32(0.5) {
		t.Fatalf("saturation = %v", u["Saturation"])
	}
}

func TestTintUniform(t *testing.T) {
	p := DefaultParams()
	p.Tint = color.NRGBA{R: 0xff, G: 0, B: 0x33, A: 0xff}
	tint := p.Uniforms()["Tint"].([]float32)
	if tint[0] != 1 || tint[1] != 0 || tint[2] != 0.2 {
		t.Fatalf("tint = %v", tint)
	}
}

func TestNilGrade(t *testing.T) {
	var g *Grade
	if g.Shader() != nil || g.Uniforms() != nil {
		t.Fatalf("nil grade must have no shader and no uniforms")
	}
}

func TestSourceDeclaresUniforms(t *testing.T) {
	src := Source()
	for _, name := range []string{"Saturation", "Contrast", "Tint", "Fragment"} {
		if !bytes.Contains(src, []byte(name)) {
			t.Fatalf("shader source lacks %s", name)
		}
	}
}
