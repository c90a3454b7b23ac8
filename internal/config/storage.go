package config

// AzureBlobStorageConfig describes the blob container that generated bundles
// are uploaded to by the downstream job processor.
type AzureBlobStorageConfig struct {
	AccountURL string         `mapstructure:"account_url" yaml:"accountUrl"`
	Container  string         `mapstructure:"container" yaml:"container"`
	SASToken   string         `mapstructure:"sas_token" yaml:"sasToken,omitempty"`
	Options    map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}
