package jobs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ColaberryIntern/JobFlow/internal/secrets"
)

// SourceSpec is one entry of the sources definition file. The list order
// defines aggregation precedence.
type SourceSpec struct {
	ID        string         `yaml:"id"`
	Type      string         `yaml:"type"`
	Path      string         `yaml:"path"`
	URL       string         `yaml:"url"`
	TokenFile string         `yaml:"token-file"`
	Selectors *HTMLSelectors `yaml:"selectors"`
}

type sourcesFile struct {
	Sources []SourceSpec `yaml:"sources"`
}

// LoadSources reads a sources YAML file and builds the concrete sources in
// declaration order.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	sources := make([]Source, 0, len(file.Sources))
	for i, spec := range file.Sources {
		source, err := BuildSource(spec)
		if err != nil {
			return nil, fmt.Errorf("source %d (%s): %w", i, spec.ID, err)
		}
		sources = append(sources, source)
	}

	return sources, nil
}

// BuildSource constructs one source from its spec.
func BuildSource(spec SourceSpec) (Source, error) {
	if spec.ID == "" {
		return nil, fmt.Errorf("source id is required")
	}

	switch spec.Type {
	case "file":
		if spec.Path == "" {
			return nil, fmt.Errorf("file source requires a path")
		}
		return NewFileSource(spec.ID, spec.Path), nil
	case "http":
		if spec.URL == "" {
			return nil, fmt.Errorf("http source requires a url")
		}
		token := ""
		if spec.TokenFile != "" {
			loaded, err := secrets.Load(secrets.Source{
				Name: fmt.Sprintf("%s api token", spec.ID),
				File: spec.TokenFile,
			})
			if err != nil {
				return nil, err
			}
			token = loaded
		}
		return NewHTTPSource(spec.ID, spec.URL, token), nil
	case "rss":
		if spec.URL == "" {
			return nil, fmt.Errorf("rss source requires a url")
		}
		return NewRSSSource(spec.ID, spec.URL), nil
	case "html":
		if spec.URL == "" {
			return nil, fmt.Errorf("html source requires a url")
		}
		if spec.Selectors == nil || spec.Selectors.Item == "" {
			return nil, fmt.Errorf("html source requires selectors with at least an item selector")
		}
		return NewHTMLSource(spec.ID, spec.URL, *spec.Selectors), nil
	default:
		return nil, fmt.Errorf("unknown source type: %q", spec.Type)
	}
}
