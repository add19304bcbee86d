// Package config loads the runtime settings, style presets and named logos
// of the qrdx binaries.
package config

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Mictilt/qrdx"
	"github.com/Mictilt/qrdx/style"
	"github.com/Mictilt/qrdx/writer/standard"
)

//go:embed presets.yaml
var builtinPresets []byte

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrUnknownLogo   = errors.New("unknown logo")
)

type Config struct {
	Server Server
	Log    Log
	// Defaults lies under every preset and request style.
	Defaults style.Config
	Presets  map[string]Preset
	// Logos maps logo names to files or data URIs.
	Logos map[string]string
}

type Server struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MaxSize caps the pixel side the server renders.
	MaxSize int
}

type Log struct {
	Debug     bool
	LogToFile bool
	LogsDir   string
}

type Preset struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Style       style.Config `yaml:"style"`
}

// file holds the parts of a config file viper cannot decode by yaml tags.
type file struct {
	Defaults style.Config      `yaml:"defaults"`
	Presets  map[string]Preset `yaml:"presets"`
	Logos    map[string]string `yaml:"logos"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.maxSize", 2000)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.logToFile", false)
	v.SetDefault("log.logsDir", "logs")
}

// Load reads the YAML file at path over the built-in presets. An empty path
// loads the built-ins only. QRDX_ADDR and QRDX_DEBUG override the file.
func Load(path string) (*Config, error) {
	presets, err := parsePresets(builtinPresets)
	if err != nil {
		return nil, errors.Wrap(err, "built-in presets")
	}
	cfg := &Config{Presets: presets, Logos: map[string]string{}}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	_ = v.BindEnv("server.addr", "QRDX_ADDR")
	_ = v.BindEnv("log.debug", "QRDX_DEBUG")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err = v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}

		var f file
		if err = yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
		cfg.Defaults = f.Defaults
		for id, p := range f.Presets {
			cfg.Presets[normalizeID(id)] = p
		}
		dir := filepath.Dir(path)
		for name, ref := range f.Logos {
			// file logos are relative to the config file
			if !strings.HasPrefix(ref, "data:") && !filepath.IsAbs(ref) {
				ref = filepath.Join(dir, ref)
			}
			cfg.Logos[normalizeID(name)] = ref
		}
	}

	cfg.Server = Server{
		Addr:         v.GetString("server.addr"),
		ReadTimeout:  v.GetDuration("server.readTimeout"),
		WriteTimeout: v.GetDuration("server.writeTimeout"),
		MaxSize:      v.GetInt("server.maxSize"),
	}
	if cfg.Server.MaxSize < standard.MinSide || cfg.Server.MaxSize > standard.MaxSide {
		cfg.Server.MaxSize = standard.MaxSide
	}
	cfg.Log = Log{
		Debug:     v.GetBool("log.debug"),
		LogToFile: v.GetBool("log.logToFile"),
		LogsDir:   v.GetString("log.logsDir"),
	}
	return cfg, nil
}

func parsePresets(data []byte) (map[string]Preset, error) {
	var raw map[string]Preset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	presets := make(map[string]Preset, len(raw))
	for id, p := range raw {
		presets[normalizeID(id)] = p
	}
	return presets, nil
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// PresetIDs returns the preset ids in order, "default" first.
func (c *Config) PresetIDs() []string {
	ids := make([]string, 0, len(c.Presets))
	for id := range c.Presets {
		if id != "default" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if _, ok := c.Presets["default"]; ok {
		ids = append([]string{"default"}, ids...)
	}
	return ids
}

// Style layers the defaults, the preset and overlay, in that order. An empty
// preset id skips the preset.
func (c *Config) Style(preset string, overlay style.Config) (style.Config, error) {
	base := c.Defaults
	if id := normalizeID(preset); id != "" {
		p, ok := c.Presets[id]
		if !ok {
			return style.Config{}, errors.Wrapf(ErrUnknownPreset, "%q", preset)
		}
		base = base.Merge(p.Style)
	}
	return base.Merge(overlay), nil
}

// LogoLoader resolves named logos first, then data URIs. Other references
// are files, read only with allowFiles.
func (c *Config) LogoLoader(allowFiles bool) qrdx.LogoLoader {
	return func(ref string) ([]byte, error) {
		if named, ok := c.Logos[normalizeID(ref)]; ok {
			return qrdx.DefaultLogoLoader(named)
		}
		if !allowFiles && !strings.HasPrefix(ref, "data:") {
			return nil, errors.Wrapf(ErrUnknownLogo, "%q", ref)
		}
		return qrdx.DefaultLogoLoader(ref)
	}
}
