package config

import (
	"errors"
	"strings"

	"github.com/citystride/wayfarer/pkg/limiter"
	"github.com/citystride/wayfarer/pkg/otel"
	"github.com/citystride/wayfarer/pkg/provider"
	"github.com/citystride/wayfarer/pkg/provider/anthropic"
	"github.com/citystride/wayfarer/pkg/provider/google"
	"github.com/citystride/wayfarer/pkg/provider/openai"
)

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Limit *int `yaml:"limit"`

	Models map[string]modelConfig `yaml:"models"`
}

type modelConfig struct {
	ID string `yaml:"id"`

	// Type is completer, renderer or synthesizer. Defaults to completer.
	Type string `yaml:"type"`

	Voice string `yaml:"voice"`
}

func (cfg *Config) RegisterModel(id string) {
	if cfg.models == nil {
		cfg.models = make(map[string]provider.Model)
	}

	cfg.models[id] = provider.Model{ID: id}
}

func (cfg *Config) Models() []provider.Model {
	var result []provider.Model

	for _, m := range cfg.models {
		result = append(result, m)
	}

	return result
}

func (cfg *Config) RegisterCompleter(id string, p provider.Completer) {
	cfg.RegisterModel(id)

	if cfg.completer == nil {
		cfg.completer = make(map[string]provider.Completer)
	}

	if _, ok := cfg.completer[""]; !ok {
		cfg.completer[""] = p
	}

	cfg.completer[id] = p
}

func (cfg *Config) Completer(id string) (provider.Completer, error) {
	if cfg.completer != nil {
		if c, ok := cfg.completer[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("completer not found: " + id)
}

func (cfg *Config) RegisterRenderer(id string, p provider.Renderer) {
	cfg.RegisterModel(id)

	if cfg.renderer == nil {
		cfg.renderer = make(map[string]provider.Renderer)
	}

	if _, ok := cfg.renderer[""]; !ok {
		cfg.renderer[""] = p
	}

	cfg.renderer[id] = p
}

func (cfg *Config) Renderer(id string) (provider.Renderer, error) {
	if cfg.renderer != nil {
		if r, ok := cfg.renderer[id]; ok {
			return r, nil
		}
	}

	return nil, errors.New("renderer not found: " + id)
}

func (cfg *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	cfg.RegisterModel(id)

	if cfg.synthesizer == nil {
		cfg.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := cfg.synthesizer[""]; !ok {
		cfg.synthesizer[""] = p
	}

	cfg.synthesizer[id] = p
}

func (cfg *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if cfg.synthesizer != nil {
		if s, ok := cfg.synthesizer[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (cfg *Config) registerProviders(f *configFile) error {
	for _, p := range f.Providers {
		limit := createLimiter(p.Limit)

		for id, m := range p.Models {
			model := m.ID

			if model == "" {
				model = id
			}

			switch strings.ToLower(m.Type) {
			case "", "completer":
				completer, err := createCompleter(p, model)

				if err != nil {
					return err
				}

				cfg.RegisterCompleter(id, otel.NewCompleter(p.Type, model, limiter.NewCompleter(limit, completer)))

			case "renderer":
				renderer, err := createRenderer(p, model)

				if err != nil {
					return err
				}

				cfg.RegisterRenderer(id, otel.NewRenderer(p.Type, model, limiter.NewRenderer(limit, renderer)))

			case "synthesizer":
				synthesizer, err := createSynthesizer(p, model, m.Voice)

				if err != nil {
					return err
				}

				cfg.RegisterSynthesizer(id, otel.NewSynthesizer(p.Type, model, limiter.NewSynthesizer(limit, synthesizer)))

			default:
				return errors.New("invalid model type: " + m.Type)
			}
		}
	}

	return nil
}

func createCompleter(cfg providerConfig, model string) (provider.Completer, error) {
	switch strings.ToLower(cfg.Type) {
	case "gemini", "google":
		return google.NewCompleter(model, google.WithToken(cfg.Token))

	case "anthropic":
		return anthropic.NewCompleter(cfg.URL, model, anthropic.WithToken(cfg.Token))

	default:
		return nil, errors.New("invalid completer type: " + cfg.Type)
	}
}

func createRenderer(cfg providerConfig, model string) (provider.Renderer, error) {
	switch strings.ToLower(cfg.Type) {
	case "gemini", "google":
		return google.NewRenderer(model, google.WithToken(cfg.Token))

	default:
		return nil, errors.New("invalid renderer type: " + cfg.Type)
	}
}

func createSynthesizer(cfg providerConfig, model, voice string) (provider.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "gemini", "google":
		options := []google.Option{
			google.WithToken(cfg.Token),
		}

		if voice != "" {
			options = append(options, google.WithVoice(voice))
		}

		return google.NewSynthesizer(model, options...)

	case "openai":
		return openai.NewSynthesizer(cfg.URL, model, openai.WithToken(cfg.Token))

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}
