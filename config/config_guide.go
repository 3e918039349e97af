package config

import (
	"errors"

	"github.com/citystride/wayfarer/pkg/guide"
)

type guideConfig struct {
	Completer string `yaml:"completer"`
	Renderer  string `yaml:"renderer"`

	Persona string `yaml:"persona"`
}

func (cfg *Config) RegisterGuide(id string, g *guide.Orchestrator, persona string) {
	if cfg.guides == nil {
		cfg.guides = make(map[string]*guide.Orchestrator)
	}

	if cfg.personas == nil {
		cfg.personas = make(map[string]string)
	}

	if _, ok := cfg.guides[""]; !ok {
		cfg.guides[""] = g
		cfg.personas[""] = persona
	}

	cfg.guides[id] = g
	cfg.personas[id] = persona
}

func (cfg *Config) Guide(id string) (*guide.Orchestrator, error) {
	if cfg.guides != nil {
		if g, ok := cfg.guides[id]; ok {
			return g, nil
		}
	}

	return nil, errors.New("guide not found: " + id)
}

func (cfg *Config) Persona(id string) string {
	if cfg.personas != nil {
		return cfg.personas[id]
	}

	return ""
}

func (cfg *Config) registerGuides(f *configFile) error {
	var configs map[string]guideConfig

	if !f.Guides.IsZero() {
		if err := f.Guides.Decode(&configs); err != nil {
			return err
		}
	}

	for id, g := range configs {
		completer, err := cfg.Completer(g.Completer)

		if err != nil {
			return err
		}

		options := []guide.Option{
			guide.WithCompleter(completer),
		}

		if g.Renderer != "" {
			renderer, err := cfg.Renderer(g.Renderer)

			if err != nil {
				return err
			}

			options = append(options, guide.WithRenderer(renderer))
		}

		orchestrator, err := guide.New(options...)

		if err != nil {
			return err
		}

		cfg.RegisterGuide(id, orchestrator, g.Persona)
	}

	return nil
}
