package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vmapp.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{
  "name": "demo",
  "subnets": [
    {"id": "subnet-1a", "vpc": {"id": "vpc-1", "region": "us-east-1"}}
  ],
  "database": {"enabled": true, "engine": "mariadb"},
  "tags": {"env": "test"}
}`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("name: got %q", cfg.Name)
	}
	if len(cfg.Subnets) != 1 || cfg.Subnets[0].VPC.Region != "us-east-1" {
		t.Errorf("subnets: got %+v", cfg.Subnets)
	}
	if !cfg.Database.Enabled || cfg.Database.Engine != "mariadb" {
		t.Errorf("database options: got %+v", cfg.Database)
	}
	if cfg.Tags["env"] != "test" {
		t.Errorf("tags: got %v", cfg.Tags)
	}
}

func TestLoadConfigurationBadJSON(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), `{"name": `)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected read error")
	}
}

func TestLoadConfigurationValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
	}{
		{"missing name", `{"subnets": [{"id": "s-1", "vpc": {"id": "vpc-1"}}]}`, "name"},
		{"subnet without id", `{"name": "demo", "subnets": [{"vpc": {"id": "vpc-1"}}]}`, "subnets[0].id"},
		{"subnet without vpc", `{"name": "demo", "subnets": [{"id": "s-1"}]}`, "subnets[0].vpc.id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, t.TempDir(), tc.content)
			_, err := LoadConfiguration(path)
			var validation ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validation.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, validation.Field)
			}
		})
	}
}

func TestWriteConfigurationRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	cfg := &Configuration{
		Name: "demo",
		Subnets: []Subnet{
			{ID: "subnet-1a", VPC: VPC{ID: "vpc-1", Region: "us-east-1"}},
		},
	}
	if err := WriteConfiguration(path, cfg); err != nil {
		t.Fatalf("WriteConfiguration: %v", err)
	}
	got, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	if got.Name != cfg.Name || got.Subnets[0].ID != cfg.Subnets[0].ID {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
