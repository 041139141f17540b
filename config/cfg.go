package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"divina/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	LoadingConfig struct {
		Mode          common.QueueMode   `yaml:"queue_mode"`
		Unit          common.LoadingUnit `yaml:"unit"`
		MaxPagesAfter int                `yaml:"max_pages_after" validate:"min=0"`
		// negative value means "derive from MaxPagesAfter and BeforeRatio"
		MaxPagesBefore int     `yaml:"max_pages_before" validate:"min=-1"`
		BeforeRatio    float64 `yaml:"before_ratio" validate:"gte=0.0,lte=1.0"`
		// zero means "MaxPagesAfter / MaxPagesBefore"
		PriorityFactor float64 `yaml:"priority_factor" validate:"gte=0.0"`
	}

	NavigationConfig struct {
		ReadingMode            common.ReadingMode      `yaml:"reading_mode"`
		Direction              common.ReadingDirection `yaml:"direction"`
		Overflow               common.Overflow         `yaml:"overflow"`
		PaginationSticky       bool                    `yaml:"pagination_sticky"`
		StickyThreshold        float64                 `yaml:"sticky_threshold" validate:"gt=0.0,lte=1.0"`
		ShouldCancelTransition bool                    `yaml:"cancel_transition"`
		TransitionDuration     time.Duration           `yaml:"transition_duration" validate:"gte=0"`
		FPS                    int                     `yaml:"fps" validate:"min=1,max=240"`
	}

	CameraConfig struct {
		AllowsZoom             bool          `yaml:"allows_zoom"`
		MaxZoom                float64       `yaml:"max_zoom" validate:"gte=1.0"`
		ZoomSensitivity        float64       `yaml:"zoom_sensitivity" validate:"gt=0.0"`
		SnapSpeed              float64       `yaml:"snap_speed" validate:"gt=0.0"`
		KineticTimeConstant    time.Duration `yaml:"kinetic_time_constant" validate:"gt=0"`
		KineticAmplitude       float64       `yaml:"kinetic_amplitude" validate:"gte=0.0"`
		KineticMinDisplacement float64       `yaml:"kinetic_min_displacement" validate:"gt=0.0"`
	}

	ImagesConfig struct {
		MaxTextureSize int `yaml:"max_texture_size" validate:"min=0"`
		SVGSize        int `yaml:"svg_size" validate:"min=0"`
		Workers        int `yaml:"workers" validate:"min=1"`
	}

	ReaderConfig struct {
		Loading    LoadingConfig     `yaml:"loading"`
		Navigation NavigationConfig  `yaml:"navigation"`
		Camera     CameraConfig      `yaml:"camera"`
		Images     ImagesConfig      `yaml:"images"`
		Tags       map[string]string `yaml:"tags"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Reader    ReaderConfig   `yaml:"reader"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// PagesBefore returns size of the part of load window preceding current page.
func (c *LoadingConfig) PagesBefore() int {
	if c.MaxPagesBefore >= 0 {
		return c.MaxPagesBefore
	}
	return int(math.Ceil(float64(c.MaxPagesAfter) * c.BeforeRatio))
}

// BeforeFactor returns multiplier applied to priorities of pages preceding
// target page, so that window of resident pages is wider after reading
// position than before it.
func (c *LoadingConfig) BeforeFactor() float64 {
	if c.PriorityFactor > 0 {
		return c.PriorityFactor
	}
	before := c.PagesBefore()
	if before == 0 || c.MaxPagesAfter == 0 {
		return 1
	}
	return float64(c.MaxPagesAfter) / float64(before)
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
