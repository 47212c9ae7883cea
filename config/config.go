// Package config holds the service configuration, loaded once at startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Main is the top level configuration.
type Main struct {
	// ListenAddr is the HTTP listen address of the scoring API.
	ListenAddr string `yaml:"listenAddr"`

	Artifacts Artifacts `yaml:"artifacts"`
}

// Artifacts are the file paths of the read-only state produced at training
// time. Every path must exist at startup; a missing artifact is fatal.
type Artifacts struct {
	Model     string `yaml:"model"`
	Features  string `yaml:"features"`
	Blacklist string `yaml:"blacklist"`
	GeoData   string `yaml:"geoData"`
}

// Default returns the configuration used when no config file is given.
func Default() Main {
	return Main{
		ListenAddr: ":8080",
		Artifacts: Artifacts{
			Model:     "model.json",
			Features:  "features.json",
			Blacklist: "blacklist_ips.csv",
			GeoData:   "geoipcitydata.json",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(fileName string) (cfg Main, err error) {
	cfg = Default()

	buf, err := os.ReadFile(fileName)
	if err != nil {
		err = fmt.Errorf("error while reading config file %v: %w", fileName, err)
		return
	}

	if err = yaml.Unmarshal(buf, &cfg); err != nil {
		err = fmt.Errorf("error while parsing config file %v: %w", fileName, err)
		return
	}

	return
}
