package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Manifest — декларативное описание workflow в YAML.
//
// Пример:
//
//	workflow:
//	  slug: release
//	  name: Release pipeline
//	steps:
//	  - slug: build
//	    description: Compile artifacts
//	  - slug: test
//	    depends_on: [build]
//	  - slug: deploy
//	    depends_on: [build, test]
type Manifest struct {
	Workflow ManifestWorkflow `yaml:"workflow"`
	Steps    []ManifestStep   `yaml:"steps"`
}

// ManifestWorkflow — секция workflow манифеста.
type ManifestWorkflow struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// ManifestStep — шаг манифеста с опциональными предпосылками.
type ManifestStep struct {
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	DependsOn   []string `yaml:"depends_on"`
}

// ParseManifest разбирает и проверяет YAML-манифест.
//
// Проверяются только локальные инварианты (пустые slug, дубликаты,
// петли, ссылки на необъявленные шаги). Циклы ловит сервер при
// запросе порядка выполнения.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if m.Workflow.Slug == "" {
		return nil, fmt.Errorf("manifest: workflow.slug is required")
	}
	if m.Workflow.Name == "" {
		m.Workflow.Name = m.Workflow.Slug
	}

	seen := make(map[string]bool, len(m.Steps))
	for _, s := range m.Steps {
		if s.Slug == "" {
			return nil, fmt.Errorf("manifest: step with empty slug")
		}
		if seen[s.Slug] {
			return nil, fmt.Errorf("manifest: duplicate step %q", s.Slug)
		}
		seen[s.Slug] = true
	}

	for _, s := range m.Steps {
		for _, dep := range s.DependsOn {
			if dep == s.Slug {
				return nil, fmt.Errorf("manifest: step %q depends on itself", s.Slug)
			}
			if !seen[dep] {
				return nil, fmt.Errorf("manifest: step %q depends on undeclared step %q", s.Slug, dep)
			}
		}
	}

	return &m, nil
}

func newWorkflowApplyCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create a workflow with steps and dependencies from a YAML manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}

			manifest, err := ParseManifest(data)
			if err != nil {
				return err
			}

			wf, err := client.CreateWorkflow(manifest.Workflow.Slug, manifest.Workflow.Name)
			if err != nil {
				return err
			}
			out.Success(fmt.Sprintf("Workflow created: %s", wf.Slug))

			// Сначала все шаги, потом все рёбра: ребро требует
			// существования обоих шагов.
			for _, s := range manifest.Steps {
				if _, err := client.AddStep(wf.Slug, s.Slug, s.Description); err != nil {
					return fmt.Errorf("add step %q: %w", s.Slug, err)
				}
				out.Success(fmt.Sprintf("Step added: %s", s.Slug))
			}

			for _, s := range manifest.Steps {
				for _, dep := range s.DependsOn {
					if _, err := client.AddDependency(wf.Slug, s.Slug, dep); err != nil {
						return fmt.Errorf("add dependency %q -> %q: %w", dep, s.Slug, err)
					}
					out.Success(fmt.Sprintf("Dependency added: %s -> %s", dep, s.Slug))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the manifest file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}
