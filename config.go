package accel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gekko3d/gekko-accel/rt/bvh"
	"gopkg.in/yaml.v3"
)

// Config is the file level configuration of an Accel.
type Config struct {
	BVH       bvh.Config `yaml:"bvh"`
	LogPrefix string     `yaml:"log_prefix"`
	Debug     bool       `yaml:"debug"`
	// Workers used by TraceBatch; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		BVH:       bvh.DefaultConfig(),
		LogPrefix: "accel",
	}
}

func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", bvh.ErrInvalidConfig, c.Workers)
	}
	return c.BVH.Validate()
}

// ParseConfig decodes YAML over the defaults, so omitted keys keep their
// default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Logger builds the DefaultLogger described by the config.
func (c Config) Logger() Logger {
	return NewDefaultLogger(c.LogPrefix, c.Debug)
}
