package cli

import (
	"strings"
	"testing"
)

func TestParseManifest_Valid(t *testing.T) {
	data := []byte(`
workflow:
  slug: release
  name: Release pipeline
steps:
  - slug: build
    description: Compile artifacts
  - slug: test
    depends_on: [build]
  - slug: deploy
    depends_on: [build, test]
`)

	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Workflow.Slug != "release" {
		t.Errorf("expected slug release, got %s", m.Workflow.Slug)
	}
	if len(m.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(m.Steps))
	}
	if len(m.Steps[2].DependsOn) != 2 {
		t.Errorf("deploy should have 2 prerequisites, got %d", len(m.Steps[2].DependsOn))
	}
}

func TestParseManifest_NameDefaultsToSlug(t *testing.T) {
	data := []byte(`
workflow:
  slug: nightly
steps:
  - slug: only
`)

	m, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Workflow.Name != "nightly" {
		t.Errorf("expected name to default to slug, got %q", m.Workflow.Name)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "missing workflow slug",
			data:    "steps:\n  - slug: a\n",
			wantErr: "workflow.slug is required",
		},
		{
			name: "empty step slug",
			data: `
workflow:
  slug: wf
steps:
  - description: no slug
`,
			wantErr: "empty slug",
		},
		{
			name: "duplicate step",
			data: `
workflow:
  slug: wf
steps:
  - slug: a
  - slug: a
`,
			wantErr: "duplicate step",
		},
		{
			name: "self dependency",
			data: `
workflow:
  slug: wf
steps:
  - slug: a
    depends_on: [a]
`,
			wantErr: "depends on itself",
		},
		{
			name: "undeclared dependency",
			data: `
workflow:
  slug: wf
steps:
  - slug: a
    depends_on: [ghost]
`,
			wantErr: "undeclared step",
		},
		{
			name:    "not yaml",
			data:    "{{{",
			wantErr: "parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
