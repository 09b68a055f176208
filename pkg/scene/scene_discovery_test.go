package scene

import (
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"sphere-grid", "Sphere Grid"},
		{"dragon_gold", "Dragon Gold"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestCreateKnownScenes(t *testing.T) {
	for _, id := range SceneIDs() {
		t.Run(id, func(t *testing.T) {
			s, err := Create(id, 1)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", id, err)
			}
			if s.Camera == nil || s.World == nil || s.World.Len() == 0 {
				t.Errorf("Create(%q) returned an incomplete scene: %+v", id, s)
			}
		})
	}
}

func TestCreateUnknownScene(t *testing.T) {
	_, err := Create("cornell-box", 1)
	if err == nil {
		t.Fatal("Expected an error for an unknown scene")
	}
	if !strings.Contains(err.Error(), DefaultSceneID) {
		t.Errorf("Expected error to list available scenes, got %q", err)
	}
}

func TestCreateAppliesCameraOverrides(t *testing.T) {
	fov := 60.0
	s, err := Create("simple", 0, renderer.CameraOverride{FOV: &fov}, AspectOverride(200, 100))
	if err != nil {
		t.Fatal(err)
	}
	if s.CameraConfig.FOV != 60 || s.CameraConfig.AspectRatio != 2 {
		t.Errorf("Expected overrides to be applied, got %+v", s.CameraConfig)
	}
	if s.CameraConfig.Aperture != renderer.DefaultCameraConfig().Aperture {
		t.Errorf("Expected unset fields to keep defaults, got %+v", s.CameraConfig)
	}
}

func TestCreatePinholeOverride(t *testing.T) {
	pinhole := 0.0
	s, err := Create("spheres", 1, renderer.CameraOverride{Aperture: &pinhole})
	if err != nil {
		t.Fatal(err)
	}
	if s.CameraConfig.Aperture != 0 {
		t.Errorf("Expected aperture 0, got %v", s.CameraConfig.Aperture)
	}
}

func TestListAllScenes(t *testing.T) {
	response := ListAllScenes()

	if len(response.Groups) == 0 || response.Groups[0].Name != builtInGroup {
		t.Fatalf("Expected built-in group first, got %+v", response.Groups)
	}

	total := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			if info.ID == "" || info.DisplayName == "" {
				t.Errorf("Scene info missing ID or display name: %+v", info)
			}
			if info.Group != group.Name {
				t.Errorf("Scene %q listed under %q but belongs to %q", info.ID, group.Name, info.Group)
			}
			total++
		}
	}
	if total != len(SceneIDs()) {
		t.Errorf("Expected %d scenes, got %d", len(SceneIDs()), total)
	}
}
