package cmd

import (
	"testing"
)

func TestParseSeeds(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    []int64
		wantErr bool
	}{
		{name: "empty uses project seed", spec: "", want: []int64{42}},
		{name: "comma list", spec: "1,2,3", want: []int64{1, 2, 3}},
		{name: "single value", spec: "1337", want: []int64{1337}},
		{name: "range", spec: "100:3", want: []int64{100, 101, 102}},
		{name: "range with spaces", spec: " 5 : 2 ", want: []int64{5, 6}},
		{name: "bad number", spec: "1,x,3", wantErr: true},
		{name: "bad range start", spec: "x:3", wantErr: true},
		{name: "zero count", spec: "5:0", wantErr: true},
		{name: "negative count", spec: "5:-2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeeds(tt.spec, 42)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSeeds(%q) expected error, got %v", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSeeds(%q) failed: %v", tt.spec, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseSeeds(%q) = %v, want %v", tt.spec, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseSeeds(%q)[%d] = %d, want %d", tt.spec, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildJobs(t *testing.T) {
	jobs, err := buildJobs("preview,hd", []int64{42, 43}, false)
	if err != nil {
		t.Fatalf("buildJobs failed: %v", err)
	}
	if len(jobs) != 4 {
		t.Fatalf("expected 4 jobs (2 presets x 2 seeds), got %d", len(jobs))
	}

	if jobs[0].Label != "preview_seed42" {
		t.Errorf("first label = %s, want preview_seed42", jobs[0].Label)
	}
	if jobs[0].Width != 960 || jobs[0].Height != 540 {
		t.Errorf("preview dims = %dx%d, want 960x540", jobs[0].Width, jobs[0].Height)
	}
	if jobs[2].Width != 1920 || jobs[2].Height != 1080 {
		t.Errorf("hd dims = %dx%d, want 1920x1080", jobs[2].Width, jobs[2].Height)
	}
}

func TestBuildJobsUnknownPreset(t *testing.T) {
	if _, err := buildJobs("imax", []int64{42}, false); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestBuildJobsEmpty(t *testing.T) {
	if _, err := buildJobs(" , ", []int64{42}, false); err == nil {
		t.Error("expected error for empty preset list")
	}
}

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{name: "preview", w: 960, h: 540},
		{name: "noise-preview", w: 480, h: 270},
		{name: "hd", w: 1920, h: 1080},
		{name: "qhd", w: 2560, h: 1440},
		{name: "4k", w: 3840, h: 2160},
		{name: "8k", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := resolvePreset(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolvePreset(%q) failed: %v", tt.name, err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("resolvePreset(%q) = %dx%d, want %dx%d", tt.name, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestApplySeed(t *testing.T) {
	p, err := loadProject()
	if err != nil {
		t.Fatal(err)
	}

	out := applySeed(p, 500)
	if out.GlobalSeed != 500 {
		t.Errorf("GlobalSeed = %d, want 500", out.GlobalSeed)
	}
	for i, layer := range out.NoiseLayers {
		if layer.Seed != 500+int64(i) {
			t.Errorf("layer %d seed = %d, want %d", i, layer.Seed, 500+int64(i))
		}
		// Other parameters must survive the override.
		if layer.ScaleX != p.NoiseLayers[i].ScaleX {
			t.Errorf("layer %d scale changed by seed override", i)
		}
	}

	// Zero keeps the project untouched.
	same := applySeed(p, 0)
	if same.GlobalSeed != p.GlobalSeed {
		t.Errorf("applySeed(0) changed the seed to %d", same.GlobalSeed)
	}

	// The original is never mutated.
	if p.NoiseLayers[0].Seed == 500 {
		t.Error("applySeed mutated the original project")
	}
}
