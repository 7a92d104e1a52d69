// Copyright 2025 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package colcfg loads the settings that size pages and builders and
// control block transfer encoding.
package colcfg

import (
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/coldata/libraries/coltype"
	"github.com/dolthub/coldata/store/block"
	"github.com/dolthub/coldata/store/page"
)

const (
	DefaultLogLevel       = logrus.InfoLevel
	DefaultCompressBlocks = false
)

func nillableStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nillableIntPtr(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func nillableBoolPtr(b bool) *bool {
	if !b {
		return nil
	}
	return &b
}

// PageYAMLConfig holds page and builder sizing.
type PageYAMLConfig struct {
	// MaxSize is a byte count, optionally with a unit: "1MiB", "64KB".
	MaxSize               *string `yaml:"max_size,omitempty"`
	ExpectedBytesPerEntry *int    `yaml:"expected_bytes_per_entry,omitempty"`
}

// TransferYAMLConfig holds block transfer encoding settings.
type TransferYAMLConfig struct {
	Compress *bool `yaml:"compress,omitempty"`
}

// YAMLConfig is the file form of the settings. Unset fields take the
// package defaults through the accessors.
type YAMLConfig struct {
	LogLevelStr *string             `yaml:"log_level,omitempty"`
	Page        *PageYAMLConfig     `yaml:"page,omitempty"`
	Transfer    *TransferYAMLConfig `yaml:"transfer,omitempty"`

	maxPageSize int
	logLevel    logrus.Level
	logger      *logrus.Logger
}

// DefaultYAMLConfig returns a config holding every default explicitly.
func DefaultYAMLConfig() *YAMLConfig {
	cfg := &YAMLConfig{
		LogLevelStr: nillableStrPtr(DefaultLogLevel.String()),
		Page: &PageYAMLConfig{
			MaxSize:               nillableStrPtr(humanize.IBytes(page.DefaultMaxPageSizeInBytes)),
			ExpectedBytesPerEntry: nillableIntPtr(coltype.ExpectedBytesPerEntry),
		},
		Transfer: &TransferYAMLConfig{
			Compress: nillableBoolPtr(DefaultCompressBlocks),
		},
	}
	if err := cfg.resolve(); err != nil {
		panic(err)
	}
	return cfg
}

// ParseYAMLConfig parses and validates |data|. Unknown keys are errors.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if cfg.LogLevelStr != nil {
		lvl := strings.ToLower(*cfg.LogLevelStr)
		cfg.LogLevelStr = &lvl
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadYAMLConfig reads and parses the config file at |path|.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", path)
	}
	cfg, err := ParseYAMLConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file '%s'", path)
	}
	cfg.Logger().WithFields(logrus.Fields{
		"path":          path,
		"max_page_size": humanize.IBytes(uint64(cfg.MaxPageSizeInBytes())),
	}).Info("loaded config")
	return cfg, nil
}

func (cfg *YAMLConfig) resolve() error {
	cfg.maxPageSize = page.DefaultMaxPageSizeInBytes
	if cfg.Page != nil && cfg.Page.MaxSize != nil {
		n, err := humanize.ParseBytes(*cfg.Page.MaxSize)
		if err != nil {
			return errors.Wrapf(err, "page.max_size %q", *cfg.Page.MaxSize)
		}
		if n == 0 || n > math.MaxInt32 {
			return errors.Errorf("page.max_size %q must be between 1B and %s", *cfg.Page.MaxSize, humanize.IBytes(math.MaxInt32))
		}
		cfg.maxPageSize = int(n)
	}

	if cfg.Page != nil && cfg.Page.ExpectedBytesPerEntry != nil && *cfg.Page.ExpectedBytesPerEntry < 0 {
		return errors.Errorf("page.expected_bytes_per_entry must not be negative, got %d", *cfg.Page.ExpectedBytesPerEntry)
	}

	cfg.logLevel = DefaultLogLevel
	if cfg.LogLevelStr != nil {
		lvl, err := logrus.ParseLevel(*cfg.LogLevelStr)
		if err != nil {
			return errors.Wrap(err, "log_level")
		}
		cfg.logLevel = lvl
	}
	cfg.logger = logrus.New()
	cfg.logger.SetLevel(cfg.logLevel)
	return nil
}

// MaxPageSizeInBytes returns the page budget.
func (cfg *YAMLConfig) MaxPageSizeInBytes() int {
	return cfg.maxPageSize
}

// ExpectedBytesPerEntry returns the builder size hint for variable
// width values.
func (cfg *YAMLConfig) ExpectedBytesPerEntry() int {
	if cfg.Page == nil || cfg.Page.ExpectedBytesPerEntry == nil {
		return coltype.ExpectedBytesPerEntry
	}
	return *cfg.Page.ExpectedBytesPerEntry
}

// CompressBlocks returns whether encoded blocks are compressed.
func (cfg *YAMLConfig) CompressBlocks() bool {
	if cfg.Transfer == nil || cfg.Transfer.Compress == nil {
		return DefaultCompressBlocks
	}
	return *cfg.Transfer.Compress
}

// EncodeOptions returns the block transfer options.
func (cfg *YAMLConfig) EncodeOptions() block.EncodeOptions {
	return block.EncodeOptions{Compress: cfg.CompressBlocks()}
}

// LogLevel returns the configured log level.
func (cfg *YAMLConfig) LogLevel() logrus.Level {
	return cfg.logLevel
}

// Logger returns the logger shared by every component built from
// |cfg|. It writes to stderr at LogLevel.
func (cfg *YAMLConfig) Logger() *logrus.Logger {
	if cfg.logger == nil {
		return logrus.StandardLogger()
	}
	return cfg.logger
}

// NewTracker returns a page tracker with the configured budget that
// logs through Logger. |opts| are applied after the defaults.
func (cfg *YAMLConfig) NewTracker(opts ...page.TrackerOption) *page.Tracker {
	opts = append([]page.TrackerOption{page.WithLogger(cfg.Logger())}, opts...)
	return page.NewTracker(cfg.MaxPageSizeInBytes(), opts...)
}

// NewRegistry returns a registry of the built-in types that logs
// through Logger. |opts| are applied after the defaults.
func (cfg *YAMLConfig) NewRegistry(opts ...coltype.RegistryOption) *coltype.Registry {
	opts = append([]coltype.RegistryOption{coltype.WithLogger(cfg.Logger())}, opts...)
	return coltype.NewDefaultRegistry(opts...)
}

// CreateBuilder sizes a builder for |t| from the configured hints,
// reporting into |status|.
func (cfg *YAMLConfig) CreateBuilder(t coltype.Type, status page.Status, expectedEntries int) block.Builder {
	return t.CreateBuilder(status, expectedEntries, cfg.ExpectedBytesPerEntry())
}

// String returns the YAML form of |cfg|.
func (cfg *YAMLConfig) String() string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "Failed to marshal as yaml: " + err.Error()
	}
	return string(data)
}
