package logging

// Config controls the global logger: a console handler, optional rotating
// file handlers, or both.
type Config struct {
	Dir     string         `yaml:"dir"`
	Console ConsoleConfig  `yaml:"console"`
	File    FileConfig     `yaml:"file"`
	Rotation RotationConfig `yaml:"rotation"`
}

// ConsoleConfig controls the stdout handler.
type ConsoleConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // "text" or "json"
}

// FileConfig controls the file handlers.
type FileConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// RotationConfig controls log file rotation.
type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"` // megabytes
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"` // days
	Compress   bool `yaml:"compress"`
}

// DefaultConfig returns console-only text logging at info level.
func DefaultConfig() Config {
	return Config{
		Dir: "logs",
		Console: ConsoleConfig{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		File: FileConfig{
			Enabled: false,
			Level:   "info",
			Format:  "json",
		},
		Rotation: RotationConfig{
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.Dir == "" {
		c.Dir = defaults.Dir
	}
	if c.Console.Level == "" {
		c.Console.Level = defaults.Console.Level
	}
	if c.Console.Format == "" {
		c.Console.Format = defaults.Console.Format
	}
	if c.File.Level == "" {
		c.File.Level = defaults.File.Level
	}
	if c.File.Format == "" {
		c.File.Format = defaults.File.Format
	}
	if c.Rotation.MaxSize == 0 {
		c.Rotation.MaxSize = defaults.Rotation.MaxSize
	}
	if c.Rotation.MaxBackups == 0 {
		c.Rotation.MaxBackups = defaults.Rotation.MaxBackups
	}
	if c.Rotation.MaxAge == 0 {
		c.Rotation.MaxAge = defaults.Rotation.MaxAge
	}
}
