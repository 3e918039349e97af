package config

import (
	"errors"

	"github.com/citystride/wayfarer/pkg/translate"
)

type translatorConfig struct {
	Model string `yaml:"model"`
}

func (cfg *Config) RegisterTranslator(id string, t *translate.Client) {
	if cfg.translator == nil {
		cfg.translator = make(map[string]*translate.Client)
	}

	if _, ok := cfg.translator[""]; !ok {
		cfg.translator[""] = t
	}

	cfg.translator[id] = t
}

func (cfg *Config) Translator(id string) (*translate.Client, error) {
	if cfg.translator != nil {
		if t, ok := cfg.translator[id]; ok {
			return t, nil
		}
	}

	return nil, errors.New("translator not found: " + id)
}

func (cfg *Config) registerTranslators(f *configFile) error {
	var configs map[string]translatorConfig

	if !f.Translators.IsZero() {
		if err := f.Translators.Decode(&configs); err != nil {
			return err
		}
	}

	for id, t := range configs {
		completer, err := cfg.Completer(t.Model)

		if err != nil {
			return err
		}

		client, err := translate.NewClient(completer)

		if err != nil {
			return err
		}

		cfg.RegisterTranslator(id, client)
	}

	return nil
}
