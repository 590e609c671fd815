package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	panel "github.com/grindlemire/go-panel"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PANEL_CONFIG", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c != Default() {
		t.Errorf("Load() = %+v, want %+v", c, Default())
	}
	if got := c.FrameInterval(); got != time.Second/60 {
		t.Errorf("FrameInterval() = %v, want %v", got, time.Second/60)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
momentum:
  projection_rate: 0.99
  projectable: true
  rubber_band: false
spring:
  response_time: 0.3
display:
  frame_rate: 120
removal:
  enabled: true
`)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	b := c.Behavior()
	if b.MomentumProjectionRate() != 0.99 {
		t.Errorf("projection rate = %v, want 0.99", b.MomentumProjectionRate())
	}
	if !b.ShouldProjectMomentum(panel.Tip) {
		t.Error("projectable not applied")
	}
	if b.AllowsRubberBanding(panel.EdgeTop) {
		t.Error("rubber band not disabled")
	}
	if b.SpringResponseTime() != 0.3 {
		t.Errorf("spring response = %v, want 0.3", b.SpringResponseTime())
	}
	if b.RedirectionalProgress(panel.Half, panel.Tip) != 0.5 {
		t.Errorf("redirectional progress = %v, want default 0.5", b.RedirectionalProgress(panel.Half, panel.Tip))
	}
	if c.FrameInterval() != time.Second/120 {
		t.Errorf("FrameInterval() = %v", c.FrameInterval())
	}
	if !c.Removal.Enabled || c.Removal.Threshold != 5.5 {
		t.Errorf("removal = %+v", c.Removal)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "momentum:\n  redirectional_progress: 0.3\n")
	t.Setenv("PANEL_CONFIG", path)
	t.Setenv("PANEL_MOMENTUM_REDIRECTIONAL_PROGRESS", "0.7")
	t.Setenv("PANEL_DISPLAY_SCALE", "3")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Momentum.RedirectionalProgress != 0.7 {
		t.Errorf("redirectional progress = %v, want 0.7", c.Momentum.RedirectionalProgress)
	}
	if c.Display.Scale != 3 {
		t.Errorf("display scale = %v, want 3", c.Display.Scale)
	}
}

func TestLoad_Errors(t *testing.T) {
	type tc struct {
		body string
	}

	tests := map[string]tc{
		"projection rate above one": {body: "momentum:\n  projection_rate: 1.5\n"},
		"negative progress":         {body: "momentum:\n  redirectional_progress: -0.1\n"},
		"zero frame rate":           {body: "display:\n  frame_rate: 0\n"},
		"negative response":         {body: "spring:\n  response_time: -1\n"},
		"malformed yaml":            {body: "momentum: [\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tt.body)); err == nil {
				t.Error("LoadFile() error = nil, want error")
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() of a missing explicit file should fail")
	}
}

func TestOptions(t *testing.T) {
	c := Default()
	c.Display.Scale = 3
	l := panel.BottomLayout()
	p, err := panel.New(l, append(c.Options(), panel.WithGeometry(panel.Geometry{Size: panel.Size{Width: 390, Height: 844}}))...)
	if err != nil {
		t.Fatalf("panel.New() error = %v", err)
	}
	if p.State() != panel.Half {
		t.Errorf("State() = %v, want half", p.State())
	}
}
