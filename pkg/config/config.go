// Package config loads layout configuration files.
//
// A configuration file is TOML or YAML, chosen by extension (.toml,
// .yaml, .yml). Every field is optional; missing fields take the engine
// defaults from [layout.DefaultConfig]:
//
//	version = 1
//	uniform = false
//	thick_stroke_width = 4
//
//	[canvas]
//	width = 600
//	height = 600
//
//	[spacing]
//	horizontal = 150
//	vertical = 100
//
//	[sizes.event]
//	width = 40
//	height = 40
//
// Values are checked with go-playground/validator after defaults are
// applied. Failures carry code INVALID_CONFIG.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
)

// CurrentVersion is the only configuration file version understood.
const CurrentVersion = 1

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", bperrors.New(bperrors.ErrCodeInvalidFormat,
			"unsupported config extension %q (use .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `toml:"width" yaml:"width" validate:"gt=0"`
	Height float64 `toml:"height" yaml:"height" validate:"gt=0"`
}

// File mirrors the on-disk configuration.
type File struct {
	Version          int     `toml:"version" yaml:"version" validate:"omitempty,eq=1"`
	Uniform          bool    `toml:"uniform" yaml:"uniform"`
	ThickStrokeWidth float64 `toml:"thick_stroke_width" yaml:"thick_stroke_width" validate:"gte=0"`

	Canvas struct {
		Width  float64 `toml:"width" yaml:"width" validate:"gt=0"`
		Height float64 `toml:"height" yaml:"height" validate:"gt=0"`
	} `toml:"canvas" yaml:"canvas"`

	Spacing struct {
		Horizontal float64 `toml:"horizontal" yaml:"horizontal" validate:"gt=0"`
		Vertical   float64 `toml:"vertical" yaml:"vertical" validate:"gt=0"`
	} `toml:"spacing" yaml:"spacing"`

	Sizes struct {
		Event   Size `toml:"event" yaml:"event"`
		Gateway Size `toml:"gateway" yaml:"gateway"`
		Task    Size `toml:"task" yaml:"task"`
	} `toml:"sizes" yaml:"sizes"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads the configuration file at path. The format follows the
// extension.
func Load(path string) (layout.Config, error) {
	if err := bperrors.ValidateFilePath(path); err != nil {
		return layout.Config{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return layout.Config{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return layout.Config{}, bperrors.Wrap(bperrors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err != nil {
		return layout.Config{}, bperrors.Wrap(bperrors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data, format)
}

// Parse decodes configuration data, applies defaults for missing fields
// and validates the result.
func Parse(data []byte, format Format) (layout.Config, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return layout.Config{}, bperrors.Wrap(bperrors.ErrCodeInvalidConfig, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return layout.Config{}, bperrors.Wrap(bperrors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return layout.Config{}, bperrors.New(bperrors.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
	return f.Config()
}

// Config applies defaults, validates and converts to a layout
// configuration.
func (f File) Config() (layout.Config, error) {
	cfg := f.layoutConfig().WithDefaults()
	filled := fromLayout(cfg)
	filled.Version = f.Version
	if err := validate.Struct(filled); err != nil {
		return layout.Config{}, formatValidationError(err)
	}
	return cfg, nil
}

func (f File) layoutConfig() layout.Config {
	return layout.Config{
		Canvas:            layout.Canvas{Width: f.Canvas.Width, Height: f.Canvas.Height},
		HorizontalSpacing: f.Spacing.Horizontal,
		VerticalSpacing:   f.Spacing.Vertical,
		Sizes: layout.Sizes{
			Event:   layout.Size(f.Sizes.Event),
			Gateway: layout.Size(f.Sizes.Gateway),
			Task:    layout.Size(f.Sizes.Task),
		},
		Uniform:          f.Uniform,
		ThickStrokeWidth: f.ThickStrokeWidth,
	}
}

func fromLayout(cfg layout.Config) File {
	var f File
	f.Version = CurrentVersion
	f.Uniform = cfg.Uniform
	f.ThickStrokeWidth = cfg.ThickStrokeWidth
	f.Canvas.Width, f.Canvas.Height = cfg.Canvas.Width, cfg.Canvas.Height
	f.Spacing.Horizontal, f.Spacing.Vertical = cfg.HorizontalSpacing, cfg.VerticalSpacing
	f.Sizes.Event = Size(cfg.Sizes.Event)
	f.Sizes.Gateway = Size(cfg.Sizes.Gateway)
	f.Sizes.Task = Size(cfg.Sizes.Task)
	return f
}

// Marshal encodes cfg as a complete configuration file.
func Marshal(cfg layout.Config, format Format) ([]byte, error) {
	f := fromLayout(cfg)
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, bperrors.Wrap(bperrors.ErrCodeInternal, err, "encode toml")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, bperrors.Wrap(bperrors.ErrCodeInternal, err, "encode yaml")
		}
		return data, nil
	default:
		return nil, bperrors.New(bperrors.ErrCodeInvalidFormat, "unknown config format %q", format)
	}
}

// Save writes cfg to path in the format given by its extension.
func Save(cfg layout.Config, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return bperrors.Wrap(bperrors.ErrCodeInvalidPath, err, "write config %s", path)
	}
	return nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return bperrors.Wrap(bperrors.ErrCodeInvalidConfig, err, "validate config")
	}

	e := verrs[0]
	field := e.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch e.Tag() {
	case "gt":
		return bperrors.New(bperrors.ErrCodeInvalidConfig, "%s: must be greater than %s, got %v", field, e.Param(), e.Value())
	case "gte":
		return bperrors.New(bperrors.ErrCodeInvalidConfig, "%s: must be at least %s, got %v", field, e.Param(), e.Value())
	case "eq":
		return bperrors.New(bperrors.ErrCodeInvalidConfig, "%s: unsupported value %v (want %s)", field, e.Value(), e.Param())
	default:
		return bperrors.New(bperrors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}
