package models

// Model identifiers accepted by the generation backend.
const (
	ModelDefault = "gpt-5.1"
	ModelMini    = "gpt-5-mini"
)

// Default model settings applied to every new session.
const (
	DefaultTemperature      = 0.7
	DefaultWebSearchEnabled = true
)

// ModelSettings controls how the generation backend drives the language
// model. Settings persist across generation calls until explicitly saved
// over.
type ModelSettings struct {
	Model            string  `json:"model"`
	Temperature      float64 `json:"temperature"`
	WebSearchEnabled bool    `json:"web_search_enabled"`
}

// DefaultModelSettings returns the fixed baseline settings.
func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		Model:            ModelDefault,
		Temperature:      DefaultTemperature,
		WebSearchEnabled: DefaultWebSearchEnabled,
	}
}

// KnownModel reports whether id is one of the accepted model identifiers.
func KnownModel(id string) bool {
	switch id {
	case ModelDefault, ModelMini:
		return true
	}
	return false
}

// Bounds for generation options.
const (
	MinPostCount     = 1
	MaxPostCount     = 10
	DefaultPostCount = 3
)

// GenerationOptions selects how many posts to generate and for which
// platforms. Platform order reflects the order the user selected them in.
type GenerationOptions struct {
	Count     int      `json:"count"`
	Platforms []string `json:"platforms"`
}

// DefaultGenerationOptions returns the baseline options with no platform
// selection; the catalog load fills the selection in.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{Count: DefaultPostCount}
}
