package dnscli

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const configEnv = "CAO_CONFIG"

// Config is read from a YAML (or JSON) file. Every field can be overridden
// on the command line.
type Config struct {
	Provider string        `yaml:"provider"`
	Key      string        `yaml:"key"`
	Domain   string        `yaml:"domain"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	Verbose  int           `yaml:"verbose"`
	Resolver string        `yaml:"resolver"`
}

func defaultConfig() Config {
	return Config{
		Provider: "dnspod",
		Resolver: defaultResolver,
	}
}

// Load reads path, falling back to $CAO_CONFIG. A missing path is not an
// error; the defaults are returned.
func (s *Config) Load(path string) (*Config, error) {
	*s = defaultConfig()
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return s, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load config error")
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parse config error")
	}
	return s, nil
}

// Profile applies the endpoint and timeout overrides to the default profile.
func (s *Config) Profile() APIProfile {
	p := DefaultProfile()
	if s.Endpoint != "" {
		p.Endpoint = s.Endpoint
	}
	if s.Timeout > 0 {
		p.Timeout = s.Timeout
	}
	return p
}
