package config

import (
	"time"
)

// EnvPrefix is the prefix of environment variables read into the config.
// Nested keys are separated by a double underscore.
const EnvPrefix = "PATHPIRATE_"

// Config is the effective pathpirate configuration
type Config struct {
	Paths    Paths    `koanf:"paths" toml:"paths"`
	Halshow  Halshow  `koanf:"halshow" toml:"halshow"`
	Encoder  Encoder  `koanf:"encoder" toml:"encoder"`
	Firmware Firmware `koanf:"firmware" toml:"firmware"`
	HAL      HAL      `koanf:"hal" toml:"hal"`

	// Sources lists the files merged over the defaults, in load order
	Sources []string `koanf:"-" toml:"-"`

	raw map[string]interface{}
}

// Paths locates the PathPilot install and the bundled reference files
type Paths struct {
	Home    string `koanf:"home" toml:"home"`
	TmcLink string `koanf:"tmc_link" toml:"tmc_link" validate:"required"`
	Bundle  string `koanf:"bundle" toml:"bundle"`
}

// Halshow configures where the halshow scripts are downloaded from
type Halshow struct {
	BaseURL      string        `koanf:"base_url" toml:"base_url" validate:"required,url"`
	ProbeAddress string        `koanf:"probe_address" toml:"probe_address" validate:"omitempty,hostname_port"`
	Timeout      time.Duration `koanf:"timeout" toml:"timeout" validate:"gt=0"`
	Files        []string      `koanf:"files" toml:"files" validate:"min=1,dive,required"`
}

// Encoder holds the spindle encoder defaults
type Encoder struct {
	Scale int `koanf:"scale" toml:"scale" validate:"ne=0"`
}

// Firmware configures the FPGA flashing tool
type Firmware struct {
	Tool    string        `koanf:"tool" toml:"tool" validate:"required"`
	Device  string        `koanf:"device" toml:"device" validate:"required"`
	Timeout time.Duration `koanf:"timeout" toml:"timeout" validate:"gt=0"`
}

// HAL configures access to the running HAL
type HAL struct {
	Halcmd string   `koanf:"halcmd" toml:"halcmd"`
	Boards []string `koanf:"boards" toml:"boards" validate:"min=1,dive,required"`
}
