// Package config loads run settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ughe/tigerpaint/order"
	"github.com/ughe/tigerpaint/palette"
	"github.com/ughe/tigerpaint/repaint"
	"github.com/ughe/tigerpaint/util"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Accuracy is the number of palette colours generated per pixel
	Accuracy       float64        `yaml:"accuracy"`
	Order          order.Strategy `yaml:"order"`
	Seed           int64          `yaml:"seed"`
	RebuildEvery   int            `yaml:"rebuild_every"`
	ReportEvery    int            `yaml:"report_every"`
	ReportInterval time.Duration  `yaml:"report_interval"`
	// Credentials is the directory holding the aws and gcp key files
	Credentials string `yaml:"credentials"`
	Log         Log    `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func Default() Config {
	r := repaint.DefaultConfig()
	return Config{
		Accuracy:       palette.DefaultAccuracy,
		Order:          order.Columns,
		RebuildEvery:   r.RebuildEvery,
		ReportEvery:    r.ReportEvery,
		ReportInterval: r.ReportInterval,
		Log:            Log{Level: "info"},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	buf, err := util.Read(path)
	if err != nil {
		return c, err
	}
	return Parse(buf)
}

// Parse decodes buf over Default and validates the result
func Parse(buf []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Accuracy <= 0 {
		errs = append(errs, fmt.Errorf("accuracy must be positive, got %v", c.Accuracy))
	}
	if !c.Order.Valid() {
		errs = append(errs, fmt.Errorf("order %q not one of %v", c.Order, order.Strategies))
	}
	if c.RebuildEvery < 0 {
		errs = append(errs, fmt.Errorf("rebuild_every must not be negative, got %d", c.RebuildEvery))
	}
	if c.ReportEvery <= 0 {
		errs = append(errs, fmt.Errorf("report_every must be positive, got %d", c.ReportEvery))
	}
	if c.ReportInterval <= 0 {
		errs = append(errs, fmt.Errorf("report_interval must be positive, got %v", c.ReportInterval))
	}
	if _, err := util.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Repaint returns the worker settings
func (c Config) Repaint() repaint.Config {
	return repaint.Config{
		RebuildEvery:   c.RebuildEvery,
		ReportEvery:    c.ReportEvery,
		ReportInterval: c.ReportInterval,
	}
}

// Write saves c as YAML
func (c Config) Write(path string) error {
	buf, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return util.Write(buf, path)
}

// Exists reports whether path names an existing file
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
