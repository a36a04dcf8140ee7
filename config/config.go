// Mount options. Options may come from the command line or from a
// YAML file - the file is convenient when the same hive set is
// mounted repeatedly.
package config

import (
	"os"

	"github.com/Velocidex/yaml/v2"
)

type Config struct {
	// Append the registry type to each file name
	// (e.g. DisplayName.REG_SZ). Also available as an extended
	// attribute regardless of this setting.
	AppendExtensions bool `json:"append_extensions"`

	// Append a newline to text file content when appropriate.
	AppendNewline bool `json:"append_newline"`

	// Resolution cache sizing. Zero selects defaults, a negative
	// cache_size disables caching.
	CacheSize       int `json:"cache_size,omitempty"`
	CacheTTLSeconds int `json:"cache_ttl_seconds,omitempty"`

	// Passed through to the FUSE mount. AllowOther requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool   `json:"allow_other"`
	FSName     string `json:"fsname,omitempty"`
}

func GetDefaultConfig() *Config {
	return &Config{
		AppendExtensions: true,
	}
}

func LoadConfig(filename string) (*Config, error) {
	result := GetDefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	err = yaml.UnmarshalStrict(data, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
