package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Seeded      bool   `json:"seeded"`      // Layout depends on the seed
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// DefaultSceneID is the scene rendered when none is requested
const DefaultSceneID = "spheres"

const builtInGroup = "Built-in Scenes"

type sceneEntry struct {
	info  SceneInfo
	build func(seed int64, cameraOverrides ...renderer.CameraOverride) *Scene
}

var registry = map[string]sceneEntry{
	"spheres": {
		info: SceneInfo{
			Description: "Diffuse, metal and glass spheres among a field of small random spheres",
			Group:       builtInGroup,
			Seeded:      true,
		},
		build: NewSpheresScene,
	},
	"simple": {
		info: SceneInfo{
			Description: "Diffuse, metal and glass spheres on a ground sphere",
			Group:       builtInGroup,
		},
		build: func(_ int64, cameraOverrides ...renderer.CameraOverride) *Scene {
			return NewSimpleScene(cameraOverrides...)
		},
	},
	"sphere-grid": {
		info: SceneInfo{
			Description: "10x10 grid of rainbow-colored metallic spheres",
			Group:       "Showcase",
		},
		build: func(_ int64, cameraOverrides ...renderer.CameraOverride) *Scene {
			return NewSphereGridScene(cameraOverrides...)
		},
	},
}

// Create builds the scene registered under id
func Create(id string, seed int64, cameraOverrides ...renderer.CameraOverride) (*Scene, error) {
	entry, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(SceneIDs(), ", "))
	}
	return entry.build(seed, cameraOverrides...), nil
}

// SceneIDs returns all registered scene IDs in sorted order
func SceneIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListAllScenes returns the built-in scenes grouped by category
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	groupMap := make(map[string][]SceneInfo)
	for _, id := range SceneIDs() {
		info := registry[id].info
		info.ID = id
		info.DisplayName = titleCase(id)
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if scenes, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: scenes})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response
}

// titleCase converts an ID-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
