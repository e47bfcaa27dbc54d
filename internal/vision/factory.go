// Package vision wires vision-model providers behind port.VerseExtractor.
package vision

import (
	"fmt"

	"versepin/internal/config"
	"versepin/internal/port"
)

// ProviderFactory is a function that creates a VerseExtractor from the
// vision config.
type ProviderFactory func(cfg *config.VisionConfig) (port.VerseExtractor, error)

// registry of provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a vision provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a VerseExtractor using the registered factory for
// the configured provider.
func NewExtractor(cfg *config.VisionConfig) (port.VerseExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
