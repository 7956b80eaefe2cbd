package filestore

// Provider names an object store backend.
type Provider string

const (
	ProviderMinIO Provider = "minio"
)

// Config is the storage section of the run configuration. Artifacts go to
// the object store only when Bucket is set.
type Config struct {
	Provider  Provider `yaml:"provider"`
	Endpoint  string   `yaml:"endpoint"` // host:port, e.g. "localhost:9000"
	AccessKey string   `yaml:"access_key"`
	SecretKey string   `yaml:"secret_key"`
	UseSSL    bool     `yaml:"use_ssl"`
	Region    string   `yaml:"region"` // used when the bucket is created; empty for MinIO

	// Bucket receives the generated artifacts.
	Bucket string `yaml:"bucket"`

	// Prefix is prepended to every object key.
	Prefix string `yaml:"prefix"`
}

// Enabled reports whether artifacts should go to the object store.
func (c *Config) Enabled() bool {
	return c != nil && c.Bucket != ""
}

// DefaultConfig returns a local MinIO config uploading into bucket.
func DefaultConfig(endpoint, accessKey, secretKey, bucket string) *Config {
	return &Config{
		Provider:  ProviderMinIO,
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    bucket,
	}
}
