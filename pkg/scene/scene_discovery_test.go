package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"glass_bubble", "Glass Bubble"},
		{"my-custom-scene", "My Custom Scene"},
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

func TestParseJSONMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		file                string
		content             string
		expectedName        string
		expectedDescription string
	}{
		{
			file:                "complete.json",
			content:             `{"name": "Glass Trio", "description": "Three glass spheres", "spheres": []}`,
			expectedName:        "Glass Trio",
			expectedDescription: "Three glass spheres",
		},
		{
			file:         "no-metadata.json",
			content:      `{"spheres": []}`,
			expectedName: "No Metadata",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("Failed to write scene file: %v", err)
			}

			info, err := ParseJSONMetadata(path)
			if err != nil {
				t.Fatalf("ParseJSONMetadata() error: %v", err)
			}
			if info.DisplayName != tc.expectedName {
				t.Errorf("DisplayName = %q, want %q", info.DisplayName, tc.expectedName)
			}
			if info.Description != tc.expectedDescription {
				t.Errorf("Description = %q, want %q", info.Description, tc.expectedDescription)
			}
			if info.Type != "json" || info.FilePath != path || info.ID != path {
				t.Errorf("Unexpected info %+v", info)
			}
		})
	}
}

func TestListJSONScenes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b-scene.json": `{"name": "Beta"}`,
		"a-scene.json": `{"name": "Alpha"}`,
		"broken.json":  `{not json`,
		"notes.txt":    `ignored`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListJSONScenes(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d: %+v", len(scenes), scenes)
	}
	if scenes[0].DisplayName != "Alpha" || scenes[1].DisplayName != "Beta" {
		t.Errorf("Expected scenes sorted by display name, got %q, %q", scenes[0].DisplayName, scenes[1].DisplayName)
	}
}

func TestListJSONScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListJSONScenes(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListAllScenes_BuiltinsFirst(t *testing.T) {
	scenes, err := ListAllScenes(t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != len(ListScenes()) {
		t.Fatalf("Expected %d built-in scenes, got %d", len(ListScenes()), len(scenes))
	}
	for _, s := range scenes {
		if s.Type != "builtin" {
			t.Errorf("Expected built-in scene, got %+v", s)
		}
		if s.DisplayName == "" || s.Description == "" {
			t.Errorf("Built-in scene %q is missing metadata", s.ID)
		}
	}
}

func TestListJSONScenes_UnreadableDirectory(t *testing.T) {
	// A path below a regular file fails with "not a directory", not "does not exist"
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := ListJSONScenes(filepath.Join(file, "scenes")); err == nil {
		t.Error("Expected error for a scenes path that cannot be read")
	}
	if _, err := ListAllScenes(filepath.Join(file, "scenes")); err == nil {
		t.Error("Expected ListAllScenes to report the error")
	}
}

func TestListJSONScenes_ShippedScenes(t *testing.T) {
	scenes, err := ListJSONScenes(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	found := false
	for _, s := range scenes {
		if s.DisplayName == "Three Spheres" && s.Description != "" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected shipped three-spheres scene, got %+v", scenes)
	}
}
