package llm

import (
	"fmt"

	"tripwise/internal/config"
	"tripwise/internal/port"
)

// ProviderFactory creates a LanguageModel from the LLM config.
type ProviderFactory func(cfg *config.LLMConfig) (port.LanguageModel, error)

// registry of providers, populated explicitly via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a language model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a LanguageModel from cfg using the registered factory.
func New(cfg *config.LLMConfig) (port.LanguageModel, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
