package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	C = ServiceCfg{}

	if err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("Missing file should not be fatal: %v", err)
	}
	if C.Sheet.Tab != "Sheet1" {
		t.Errorf("Expected default tab Sheet1, got %q", C.Sheet.Tab)
	}
	if C.Quota.FreeChecks != 3 {
		t.Errorf("Expected default quota 3, got %d", C.Quota.FreeChecks)
	}
	if C.Suggest.Max != 3 {
		t.Errorf("Expected default suggest max 3, got %d", C.Suggest.Max)
	}
}

func TestLoad_YamlAndEnvOverride(t *testing.T) {
	C = ServiceCfg{}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	yaml := `
sheet:
  id: "from-yaml"
  tab: "Rules"
quota:
  free_checks: 10
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SHEET_ID", "from-env")

	if err := Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if C.Sheet.ID != "from-env" {
		t.Errorf("Env should override yaml, got %q", C.Sheet.ID)
	}
	if C.Sheet.Tab != "Rules" {
		t.Errorf("Yaml tab lost, got %q", C.Sheet.Tab)
	}
	if C.Quota.FreeChecks != 10 {
		t.Errorf("Yaml quota lost, got %d", C.Quota.FreeChecks)
	}
}

func TestLoad_BadYamlFails(t *testing.T) {
	C = ServiceCfg{}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("sheet: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err == nil {
		t.Error("Expected parse error for malformed yaml")
	}
}
