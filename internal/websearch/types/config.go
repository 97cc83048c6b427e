package types

type ProviderID string

const (
	ProviderWeb   ProviderID = "web"
	ProviderVideo ProviderID = "video"
)

// ProviderConfig represents search provider configuration
type ProviderConfig struct {
	ID   ProviderID `json:"id" yaml:"id" mapstructure:"id"`
	Name string     `json:"name" yaml:"name" mapstructure:"name"`

	// API settings
	APIHost string `json:"api_host" yaml:"api_host" mapstructure:"api_host"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Web provider engine (SerpAPI "engine" parameter)
	Engine string `json:"engine,omitempty" yaml:"engine,omitempty" mapstructure:"engine"`

	// Optional settings
	Timeout    int `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`             // seconds
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty" mapstructure:"max_results"` // 0 means provider default
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.Name == "" {
		return ErrInvalidProviderName
	}
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}
	if c.MaxResults < 0 {
		return ErrInvalidMaxResults
	}

	// Both supported providers authenticate with an API key
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	return nil
}

// IsConfigured reports whether credentials were supplied for the provider
func (c *ProviderConfig) IsConfigured() bool {
	return c != nil && c.APIKey != ""
}
