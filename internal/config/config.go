// Package config defines the tidelaunch configuration and its defaults.
package config

import (
	"fmt"

	"github.com/creasty/defaults"
)

const DefaultStation = "9410230"

// Config contains process configuration.
type Config struct {
	// Station is the NOAA CO-OPS station queried for predictions.
	Station string `koanf:"station" default:"9410230" validate:"required,numeric"`

	// FQDNIP is the lidar's address, a host name or IP. It is reported but
	// does not select a tide station.
	FQDNIP string `koanf:"fqdn_ip" validate:"omitempty,hostname_rfc1123|ip"`

	Sampling struct {
		// Time is the default sampling interval in seconds.
		Time int `koanf:"time" default:"300" validate:"gt=0"`
	} `koanf:"sampling"`

	Tides struct {
		BaseURL  string `koanf:"base_url" default:"https://api.tidesandcurrents.noaa.gov/api/prod/datagetter" validate:"required,url"`
		Timezone string `koanf:"timezone"`
	} `koanf:"tides"`

	Launcher struct {
		Executable string `koanf:"executable" default:"/home/cpg/Dev/livox_logger/bin/livox_logger" validate:"required"`
		ConfigDir  string `koanf:"config_dir" default:"conf" validate:"required"`
	} `koanf:"launcher"`

	Log struct {
		Level  string `koanf:"level" default:"info"`
		Format string `koanf:"format" default:"console" validate:"oneof=console json"`
	} `koanf:"log"`

	Metrics struct {
		Textfile string `koanf:"textfile"`
	} `koanf:"metrics"`

	// StationDefaulted is set by Load when a file was read but did not
	// name a station.
	StationDefaulted bool `koanf:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		// Only reachable if a default tag is malformed.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return c
}
