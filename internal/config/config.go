package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/starui-dev/star/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "starui.yaml"

	// ProjectMarker marks a project root when no config file exists.
	ProjectMarker = "pyproject.toml"

	// DefaultCSSOutput is the default compiled stylesheet path.
	DefaultCSSOutput = "static/css/starui.css"

	// DefaultComponentDir is the default component directory.
	DefaultComponentDir = "components/ui"

	// LegacyComponentDir is used when it exists and no directory is configured.
	LegacyComponentDir = "ui"

	// InputCSSName is the stylesheet compiled by the CSS builder. It lives
	// next to the compiled output.
	InputCSSName = "input.css"

	envPrefix = "STARUI"
)

// Config is the resolved configuration of one project. Absolute paths are
// derived from Root on every call and never stored.
type Config struct {
	// CSSOutput is the compiled stylesheet, relative to Root.
	CSSOutput string `yaml:"css_output" mapstructure:"css_output"`

	// ComponentDir is where component sources are written, relative to Root.
	ComponentDir string `yaml:"component_dir" mapstructure:"component_dir"`

	// InputCSS is the stylesheet compiled by the CSS builder, relative to
	// Root. Empty means input.css next to CSSOutput.
	InputCSS string `yaml:"input_css,omitempty" mapstructure:"input_css"`

	// Registry overrides the component registry location.
	Registry string `yaml:"registry,omitempty" mapstructure:"registry"`

	// Tailwind configures the CSS compiler.
	Tailwind TailwindConfig `yaml:"tailwind,omitempty" mapstructure:"tailwind"`

	root string
}

// TailwindConfig configures the Tailwind standalone binary.
type TailwindConfig struct {
	// Version pins the binary release, e.g. "v4.1.4".
	Version string `yaml:"version,omitempty" mapstructure:"version"`

	// Binary is an explicit path to the compiler.
	Binary string `yaml:"binary,omitempty" mapstructure:"binary"`
}

// New returns a configuration with default values rooted at root.
func New(root string) *Config {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	cfg := &Config{
		CSSOutput: DefaultCSSOutput,
		root:      abs,
	}
	cfg.ComponentDir = defaultComponentDir(abs)
	return cfg
}

// Load reads the configuration of the project at root. A missing config
// file is not an error; defaults and environment overrides still apply.
func Load(root string) (*Config, error) {
	cfg := New(root)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"css_output", "component_dir", "input_css", "registry", "tailwind.version", "tailwind.binary"} {
		_ = v.BindEnv(key)
	}

	path := filepath.Join(cfg.root, ConfigFileName)
	if fileExists(path) {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New("E220").
				WithDetail(err.Error()).
				WithSuggestion("Fix the YAML syntax in " + ConfigFileName).
				Wrap(err)
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, errors.New("E220").WithDetail(err.Error()).Wrap(err)
	}
	if loaded.CSSOutput != "" {
		cfg.CSSOutput = loaded.CSSOutput
	}
	if loaded.ComponentDir != "" {
		cfg.ComponentDir = loaded.ComponentDir
	}
	cfg.InputCSS = loaded.InputCSS
	cfg.Registry = loaded.Registry
	cfg.Tailwind = loaded.Tailwind

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to starui.yaml at the project root.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigPath(), data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.CSSOutput, ".css") {
		return errors.New("E221").
			WithDetailf("css_output %q must end in .css", c.CSSOutput).
			WithSuggestion("Set css_output to a path like " + DefaultCSSOutput)
	}
	if strings.TrimSpace(c.ComponentDir) == "" {
		return errors.New("E220").WithDetail("component_dir must not be empty")
	}
	return nil
}

// Root returns the absolute project root.
func (c *Config) Root() string {
	return c.root
}

// ConfigPath returns the absolute path of starui.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.root, ConfigFileName)
}

// ComponentDirPath returns the absolute path to the component directory.
func (c *Config) ComponentDirPath() string {
	return c.abs(c.ComponentDir)
}

// CSSOutputPath returns the absolute path to the compiled stylesheet.
func (c *Config) CSSOutputPath() string {
	return c.abs(c.CSSOutput)
}

// CSSDir returns the absolute directory of the compiled stylesheet.
func (c *Config) CSSDir() string {
	return filepath.Dir(c.CSSOutputPath())
}

// InputCSSPath returns the absolute path to the input stylesheet.
func (c *Config) InputCSSPath() string {
	if c.InputCSS != "" {
		return c.abs(c.InputCSS)
	}
	return filepath.Join(c.CSSDir(), InputCSSName)
}

// ComponentPath returns the absolute path of one component source file.
func (c *Config) ComponentPath(name string) string {
	return filepath.Join(c.ComponentDirPath(), name+".py")
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.root, path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	return fileExists(filepath.Join(dir, ConfigFileName))
}

// FindProjectRoot walks up from startDir to the first directory holding
// starui.yaml or pyproject.toml. It returns the absolute startDir when no
// marker is found.
func FindProjectRoot(startDir string) (string, error) {
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.New("E222").WithDetail(err.Error()).Wrap(err)
	}

	dir := start
	for {
		if Exists(dir) || fileExists(filepath.Join(dir, ProjectMarker)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// LoadFromDir loads configuration for the project containing dir. An empty
// dir means the current working directory.
func LoadFromDir(dir string) (*Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.New("E222").WithDetail(err.Error()).Wrap(err)
		}
		dir = wd
	}

	root, err := FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

func defaultComponentDir(root string) string {
	if !dirExists(filepath.Join(root, DefaultComponentDir)) && dirExists(filepath.Join(root, LegacyComponentDir)) {
		return LegacyComponentDir
	}
	return DefaultComponentDir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
