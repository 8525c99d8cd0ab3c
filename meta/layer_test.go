package meta

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name       string
		doc        string
		wantFPS    float64
		hasFPS     bool
		wantFrames string
		hasFrames  bool
	}{
		{"empty", "", 0, false, "", false},
		{"fps_only", "fps: 5\n", 5, true, "", false},
		{"frames_only", "frames: \"0-2,1\"\n", 0, false, "0-2,1", true},
		{"upper_case_keys", "FPS: 7.5\nFrames: 0,1\n", 7.5, true, "0,1", true},
		{"unknown_keys_ignored", "fps: 3\nloop: true\n", 3, true, "", false},
		{"integer_frames", "frames: 2\n", 0, false, "2", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := Parse([]byte(c.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if (m.FPS != nil) != c.hasFPS {
				t.Fatalf("FPS presence = %v, want %v", m.FPS != nil, c.hasFPS)
			}
			if c.hasFPS && *m.FPS != c.wantFPS {
				t.Fatalf("FPS = %v, want %v", *m.FPS, c.wantFPS)
			}
			if (m.Frames != nil) != c.hasFrames {
				t.Fatalf("Frames presence = %v, want %v", m.Frames != nil, c.hasFrames)
			}
			if c.hasFrames && *m.Frames != c.wantFrames {
				t.Fatalf("Frames = %q, want %q", *m.Frames, c.wantFrames)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for name, doc := range map[string]string{
		"not_a_mapping":  "- 1\n- 2\n",
		"fps_not_number": "fps: fast\n",
		"frames_list":    "frames: [0, 1]\n",
		"broken_yaml":    "fps: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error for %q", doc)
			}
		})
	}
}

func TestFrameOrder(t *testing.T) {
	frames := "1*2,0"
	m := LayerMetadata{Frames: &frames}
	order, ok, err := m.FrameOrder()
	if err != nil || !ok {
		t.Fatalf("FrameOrder: ok=%v err=%v", ok, err)
	}
	if !equalInts(order, []int{1, 1, 0}) {
		t.Fatalf("unexpected order %v", order)
	}

	if _, ok, _ := (LayerMetadata{}).FrameOrder(); ok {
		t.Fatalf("expected no frame order without Frames")
	}
}

func TestKey(t *testing.T) {
	if got := Key("bgs/foo/cloud"); got != "bgs/foo/cloud.meta" {
		t.Fatalf("Key = %q", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		doc    string
		frames int
		ok     bool
	}{
		{"empty_doc", "{}", 4, true},
		{"fps_only", "fps: 24", 0, true},
		{"zero_fps", "fps: 0", 0, false},
		{"negative_fps", "FPS: -3", 0, false},
		{"infinite_fps", "fps: .inf", 0, false},
		{"frames_in_range", "frames: 0-3", 4, true},
		{"frames_out_of_range", "frames: 0-4", 4, false},
		{"frames_unknown_count", "frames: 0-40", 0, true},
		{"frames_huge_unknown_count", "frames: 0-200000000", 0, false},
		{"frames_huge_repeat", "frames: 0*2000000000", 4, false},
		{"frames_malformed", "frames: 0-", 4, false},
		{"frames_blank", "frames: ''", 4, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			md, err := Parse([]byte(c.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			err = md.Validate(c.frames)
			if (err == nil) != c.ok {
				t.Fatalf("Validate = %v, want ok=%v", err, c.ok)
			}
		})
	}
}
