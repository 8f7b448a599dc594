package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"

	"archsim/emu/log"
)

type Config struct {
	Memory MemoryConfig `toml:"memory"`
}

type MemoryConfig struct {
	IMemSize      int  `toml:"imem_size"`
	DMemSize      int  `toml:"dmem_size"`
	LogMisaligned bool `toml:"log_misaligned"`
}

// Check validates the configuration.
func (cfg *Config) Check() error {
	if cfg.Memory.IMemSize < 0 {
		return errors.Errorf("invalid instruction memory size %d", cfg.Memory.IMemSize)
	}
	if cfg.Memory.DMemSize < 0 {
		return errors.Errorf("invalid data memory size %d", cfg.Memory.DMemSize)
	}
	return nil
}

const DefaultFileMode = os.FileMode(0755)

var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to get user config directory: %v", err)
	}

	dir := filepath.Join(cfgdir, "archsim")
	if err := os.MkdirAll(dir, DefaultFileMode); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

// DefaultConfig matches the original machine: 1K of instruction memory and
// 1K of data memory.
var DefaultConfig = Config{
	Memory: MemoryConfig{
		IMemSize: 1024,
		DMemSize: 1024,
	},
}

const cfgFilename = "config.toml"

// LoadConfig loads the configuration at path. Missing keys keep their default
// value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if err := cfg.Check(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the archsim config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	cfg, err := LoadConfig(filepath.Join(ConfigDir(), cfgFilename))
	if err != nil {
		log.ModEmu.DebugZ("using default config").Error("err", err).End()
		return DefaultConfig
	}
	return cfg
}

// SaveConfig into archsim config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir(), cfgFilename), buf, 0644)
}
