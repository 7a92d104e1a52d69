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

package colcfg

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/coldata/libraries/coltype"
	"github.com/dolthub/coldata/store/block"
	"github.com/dolthub/coldata/store/page"
)

func TestDefaults(t *testing.T) {
	for _, cfg := range []*YAMLConfig{DefaultYAMLConfig(), mustParse(t, "")} {
		assert.Equal(t, page.DefaultMaxPageSizeInBytes, cfg.MaxPageSizeInBytes())
		assert.Equal(t, coltype.ExpectedBytesPerEntry, cfg.ExpectedBytesPerEntry())
		assert.False(t, cfg.CompressBlocks())
		assert.Equal(t, block.EncodeOptions{}, cfg.EncodeOptions())
		assert.Equal(t, logrus.InfoLevel, cfg.LogLevel())
	}
}

func mustParse(t *testing.T, s string) *YAMLConfig {
	cfg, err := ParseYAMLConfig([]byte(s))
	require.NoError(t, err)
	return cfg
}

func TestParseYAMLConfig(t *testing.T) {
	cfg := mustParse(t, `
log_level: DEBUG
page:
  max_size: 64KiB
  expected_bytes_per_entry: 12
transfer:
  compress: true
`)
	assert.Equal(t, 64*1024, cfg.MaxPageSizeInBytes())
	assert.Equal(t, 12, cfg.ExpectedBytesPerEntry())
	assert.True(t, cfg.CompressBlocks())
	assert.Equal(t, block.EncodeOptions{Compress: true}, cfg.EncodeOptions())
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "debug", *cfg.LogLevelStr)
	assert.Equal(t, logrus.DebugLevel, cfg.Logger().GetLevel())

	tr := cfg.NewTracker()
	assert.Equal(t, 64*1024, tr.MaxPageSizeInBytes())
}

func TestMaxSizeUnits(t *testing.T) {
	tests := []struct {
		in       string
		expected int
	}{
		{"1MiB", 1 << 20},
		{"1MB", 1000 * 1000},
		{"512", 512},
		{"2 KiB", 2048},
		{"1GiB", 1 << 30},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			cfg := mustParse(t, "page:\n  max_size: "+test.in+"\n")
			assert.Equal(t, test.expected, cfg.MaxPageSizeInBytes())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "page:\n  max_pages: 1\n"},
		{"bad size", "page:\n  max_size: lots\n"},
		{"zero size", "page:\n  max_size: 0B\n"},
		{"huge size", "page:\n  max_size: 4GiB\n"},
		{"negative hint", "page:\n  expected_bytes_per_entry: -1\n"},
		{"bad level", "log_level: loud\n"},
		{"not yaml", "page: [\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseYAMLConfig([]byte(test.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coldata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page:\n  max_size: 4KiB\n"), 0o644))

	cfg, err := LoadYAMLConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.MaxPageSizeInBytes())

	_, err = LoadYAMLConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestStringRoundTrip(t *testing.T) {
	cfg := mustParse(t, "page:\n  max_size: 8KiB\ntransfer:\n  compress: true\n")
	again := mustParse(t, cfg.String())
	assert.Equal(t, cfg.MaxPageSizeInBytes(), again.MaxPageSizeInBytes())
	assert.Equal(t, cfg.CompressBlocks(), again.CompressBlocks())

	def := mustParse(t, DefaultYAMLConfig().String())
	assert.Equal(t, page.DefaultMaxPageSizeInBytes, def.MaxPageSizeInBytes())
}

func TestCreateBuilder(t *testing.T) {
	cfg := mustParse(t, "page:\n  max_size: 1KiB\n  expected_bytes_per_entry: 8\n")
	tr := cfg.NewTracker()
	bld := cfg.CreateBuilder(coltype.VarbinaryType, tr.NewBlockStatus(), 4)
	coltype.VarbinaryType.WriteSlice(bld, []byte("abc"))
	blk := bld.Build()

	assert.Equal(t, 1, blk.PositionCount())
	assert.Equal(t, int64(3+5), tr.SizeInBytes())
}

func TestComponentsLogAtConfiguredLevel(t *testing.T) {
	cfg := mustParse(t, "log_level: debug\npage:\n  max_size: 16B\n")
	require.Same(t, cfg.Logger(), cfg.Logger())
	cfg.Logger().SetOutput(io.Discard)
	hook := test.NewLocal(cfg.Logger())

	tr := cfg.NewTracker()
	tr.AddBytes(32)
	require.True(t, tr.IsFull())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Contains(t, entry.Message, "page full")

	hook.Reset()
	r := cfg.NewRegistry()
	_, err := r.FromSignature("varbinary")
	require.NoError(t, err)
	require.NotEmpty(t, hook.AllEntries())
	assert.Contains(t, hook.LastEntry().Message, "varbinary")

	quiet := mustParse(t, "page:\n  max_size: 16B\n")
	quiet.Logger().SetOutput(io.Discard)
	quietHook := test.NewLocal(quiet.Logger())
	quiet.NewTracker().AddBytes(32)
	quiet.NewRegistry()
	assert.Empty(t, quietHook.AllEntries())
}
