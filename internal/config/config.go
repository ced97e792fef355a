package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Sim     SimConfig     `toml:"sim"`
	Data    DataConfig    `toml:"data"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`
	Output  OutputConfig  `toml:"output"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SimConfig struct {
	FrameRate int           `toml:"frame_rate"` // presentation frames per second
	FixedStep time.Duration `toml:"fixed_step"` // physics step
	Seed      int64         `toml:"seed"`       // 0 = time based
	Duration  time.Duration `toml:"duration"`   // encounter time limit
	Realtime  bool          `toml:"realtime"`   // pace frames on a wall clock ticker
	Batch     int           `toml:"batch"`      // encounters to run, 1 = single
	Workers   int           `toml:"workers"`    // parallel encounters in batch mode
}

// Frame is the variable frame delta the driver feeds the runner.
func (s SimConfig) Frame() time.Duration {
	if s.FrameRate <= 0 {
		return 16 * time.Millisecond
	}
	return time.Second / time.Duration(s.FrameRate)
}

type DataConfig struct {
	Boss   string `toml:"boss"`
	Player string `toml:"player"`
	Scene  string `toml:"scene"`
	Watch  bool   `toml:"watch"` // hot-reload tuning and scripts in realtime mode
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
	Bot bool   `toml:"bot"` // drive the player with scripts/bot instead of the built-in brain
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type OutputConfig struct {
	Path string `toml:"path"` // "" or "-" = stdout
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg := defaults()
	cfg.Server.StartTime = time.Now().Unix()
	return cfg
}

func (c *Config) Validate() error {
	var errs []error
	if c.Sim.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.frame_rate must be positive, got %d", c.Sim.FrameRate))
	}
	if c.Sim.FixedStep <= 0 {
		errs = append(errs, fmt.Errorf("sim.fixed_step must be positive, got %s", c.Sim.FixedStep))
	}
	if c.Sim.Duration <= 0 {
		errs = append(errs, fmt.Errorf("sim.duration must be positive, got %s", c.Sim.Duration))
	}
	if c.Sim.Batch < 1 {
		errs = append(errs, fmt.Errorf("sim.batch must be at least 1, got %d", c.Sim.Batch))
	}
	if c.Sim.Workers < 1 {
		errs = append(errs, fmt.Errorf("sim.workers must be at least 1, got %d", c.Sim.Workers))
	}
	if c.Sim.Realtime && c.Sim.Batch > 1 {
		errs = append(errs, errors.New("sim.realtime and sim.batch > 1 are exclusive"))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "PetStore Boss Arena",
		},
		Sim: SimConfig{
			FrameRate: 60,
			FixedStep: 20 * time.Millisecond,
			Seed:      0,
			Duration:  3 * time.Minute,
			Realtime:  false,
			Batch:     1,
			Workers:   4,
		},
		Data: DataConfig{
			Boss:   "data/boss.yaml",
			Player: "data/player.yaml",
			Scene:  "data/scene.yaml",
			Watch:  true,
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
			Bot: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Path: "",
		},
	}
}
