package site

import (
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(os.DirFS("testdata/plain"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "src", cfg.Dir.Input)
	assert.Equal(t, "src/_data", cfg.DataDir())
	assert.Equal(t, "_includes", cfg.LayoutsDir())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(os.DirFS("testdata/conference"))
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Dir.Input)
	assert.Equal(t, "_data", cfg.Dir.Data, "unset keys keep their defaults")
	assert.Equal(t, "_site", cfg.Dir.Output)
	assert.Equal(t, "njk", cfg.MarkdownTemplateEngine)
	assert.Equal(t, "njk", cfg.HTMLTemplateEngine)
	assert.Equal(t, []string{"**/*.draft.*"}, cfg.Data.Ignore)
	assert.Equal(t, []string{"**/*.{json,toml,yaml,yml}"}, cfg.Data.Patterns)
	assert.Equal(t, int64(1048576), cfg.Cache.Size)
	assert.Equal(t, Duration(10*time.Second), cfg.Cache.Expires)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":         "[dir\ninput = 'src'",
		"duration":       "[cache]\nexpires = 'soon'",
		"escaping":       "[dir]\ninput = '../elsewhere'",
		"absolute":       "[dir]\noutput = '/var/www'",
		"empty input":    "[dir]\ninput = ''",
		"bad pattern":    "[data]\npatterns = ['[a-']",
		"negative":       "[cache]\nsize = -1",
		"output in data": "[dir]\noutput = 'src/_data/out'",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{ConfigFile: &fstest.MapFile{Data: []byte(body)}}
			_, err := LoadConfig(fsys)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Dir.Input = "./site/"
	assert.NoError(t, cfg.Validate())

	cfg.Dir.Input = "."
	assert.NoError(t, cfg.Validate())

	cfg.Dir.Layouts = "../layouts"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Cache.Expires = Duration(-time.Second)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, Duration(90*time.Second), d)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))
	assert.Error(t, d.UnmarshalText([]byte("later")))
	assert.Equal(t, Duration(90*time.Second), d, "failed parse leaves the value alone")
	assert.Equal(t, "1m30s", d.String())

	out, err := toml.Marshal(CacheConfig{Size: 10, Expires: Duration(10 * time.Second)})
	require.NoError(t, err)
	var back CacheConfig
	require.NoError(t, toml.Unmarshal(out, &back))
	assert.Equal(t, Duration(10*time.Second), back.Expires)
	assert.Contains(t, string(out), "10s")
}
