package lightlab

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	FOV      float64    `toml:"fov"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
}

type ControlsConfig struct {
	Damping       bool    `toml:"damping"`
	DampingFactor float64 `toml:"damping_factor"`
}

// Config holds startup settings. Nothing here is written back.
type Config struct {
	Window        WindowConfig   `toml:"window"`
	Camera        CameraConfig   `toml:"camera"`
	Controls      ControlsConfig `toml:"controls"`
	Roughness     float64        `toml:"roughness"`
	MaxPixelRatio float64        `toml:"max_pixel_ratio"`
	AxesSize      float64        `toml:"axes_size"`
	Debug         bool           `toml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Lights"},
		Camera: CameraConfig{
			FOV:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float64{1, 1, 2},
		},
		Controls:      ControlsConfig{Damping: true, DampingFactor: 0.05},
		Roughness:     0.4,
		MaxPixelRatio: DefaultMaxPixelRatio,
		AxesSize:      2,
	}
}

// LoadConfig overlays the TOML file at path on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML into cfg, keeping fields the document omits.
func ParseConfig(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config: %v: %w", err, ErrInvalidConfig)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalidConfig)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera fov %g: %w", c.Camera.FOV, ErrInvalidConfig)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip %g..%g: %w", c.Camera.Near, c.Camera.Far, ErrInvalidConfig)
	case c.Controls.DampingFactor < 0 || c.Controls.DampingFactor > 1:
		return fmt.Errorf("damping factor %g: %w", c.Controls.DampingFactor, ErrInvalidConfig)
	case c.Roughness < 0 || c.Roughness > 1:
		return fmt.Errorf("roughness %g: %w", c.Roughness, ErrInvalidConfig)
	case c.MaxPixelRatio <= 0:
		return fmt.Errorf("max pixel ratio %g: %w", c.MaxPixelRatio, ErrInvalidConfig)
	case c.AxesSize < 0:
		return fmt.Errorf("axes size %g: %w", c.AxesSize, ErrInvalidConfig)
	}
	return nil
}

func (c CameraConfig) position() mgl64.Vec3 {
	return mgl64.Vec3(c.Position)
}
