package config

import (
	"bytes"
	"os"

	"github.com/citystride/wayfarer/pkg/guide"
	"github.com/citystride/wayfarer/pkg/provider"
	"github.com/citystride/wayfarer/pkg/translate"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	models map[string]provider.Model

	completer   map[string]provider.Completer
	renderer    map[string]provider.Renderer
	synthesizer map[string]provider.Synthesizer

	translator map[string]*translate.Client

	guides   map[string]*guide.Orchestrator
	personas map[string]string
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8080",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerProviders(file); err != nil {
		return nil, err
	}

	if err := c.registerTranslators(file); err != nil {
		return nil, err
	}

	if err := c.registerGuides(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Providers []providerConfig `yaml:"providers"`

	Translators yaml.Node `yaml:"translators"`

	Guides yaml.Node `yaml:"guides"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
