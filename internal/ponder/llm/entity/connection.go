package entity

import "time"

// Connection describes how to reach one model behind one provider.
type Connection struct {
	// Provider is the registered provider plugin name.
	Provider string `json:"provider"`
	// Model is the model identifier sent to the endpoint.
	Model string `json:"model"`
	// BaseURL overrides the provider's default endpoint.
	BaseURL string `json:"base_url,omitempty"`
	// APIKey may be a literal or a ${ENV_VAR} reference.
	APIKey string `json:"-"`
	// Headers are extra HTTP headers for providers that honor them.
	Headers map[string]string `json:"headers,omitempty"`

	Timeout time.Duration `json:"timeout,omitempty"`
	Retries int           `json:"retries,omitempty"`

	// ByAzure and APIVersion only apply to the openai provider.
	ByAzure    bool   `json:"by_azure,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
}
