package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string       `json:"id"`          // Unique identifier used on the command line
	DisplayName string       `json:"displayName"` // UI display name
	Description string       `json:"description"` // Short description
	Animated    bool         `json:"animated"`    // Whether the world changes with t
	Factory     WorldFactory `json:"-"`
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Description: "Diffuse, metal and glass spheres on a ground plane with a thin disc and a glowing sphere",
		Factory:     NewDefaultScene,
	},
	{
		ID:          "plane-sphere",
		Description: "A white sphere resting above a slightly tilted plane",
		Factory:     NewPlaneSphereScene,
	},
	{
		ID:          "glass",
		Description: "Glass spheres of different refractive indices in front of a mirror disc",
		Factory:     NewGlassScene,
	},
	{
		ID:          "orbit",
		Description: "A metal sphere orbiting a glass sphere; t is the fraction of one revolution",
		Animated:    true,
		Factory:     NewOrbitScene,
	},
	{
		ID:          "empty",
		Description: "No objects, only the sky gradient",
		Factory:     NewEmptyScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	for i := range scenes {
		scenes[i].DisplayName = titleCase(scenes[i].ID)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of the built-in scenes, sorted
func Names() []string {
	scenes := List()
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.ID
	}
	return names
}

// Lookup returns the factory for a built-in scene
func Lookup(name string) (WorldFactory, error) {
	info, err := Info(name)
	if err != nil {
		return nil, err
	}
	return info.Factory, nil
}

// Info returns the metadata for a built-in scene
func Info(name string) (SceneInfo, error) {
	for _, s := range List() {
		if s.ID == name {
			return s, nil
		}
	}
	return SceneInfo{}, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// titleCase converts an ID to title case
// e.g., "plane-sphere" -> "Plane Sphere"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
