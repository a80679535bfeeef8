package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile reads a theme file and layers it over a built-in theme. The file
// may name its base with a "base" key; otherwise baseName is used. Keys not
// present in the file keep the base theme's value.
func LoadFile(path, baseName string) (Theme, error) {
	parser, err := parserFor(path)
	if err != nil {
		return Theme{}, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Theme{}, fmt.Errorf("loading theme file %s: %w", path, err)
	}

	if b := k.String("base"); b != "" {
		baseName = b
	}
	if baseName == "" {
		baseName = DefaultName
	}
	t, err := Builtin(baseName)
	if err != nil {
		return Theme{}, err
	}

	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Theme{}, fmt.Errorf("decoding theme file %s: %w", path, err)
	}
	if !k.Exists("name") {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := Validate(t); err != nil {
		return Theme{}, fmt.Errorf("theme file %s: %w", path, err)
	}
	return t, nil
}

// Resolve returns the theme to render with: the theme file layered over the
// named built-in when path is set, the named built-in otherwise.
func Resolve(name, path string) (Theme, error) {
	if path != "" {
		return LoadFile(path, name)
	}
	if name == "" {
		return Default(), nil
	}
	return Builtin(name)
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported theme file format %q", filepath.Ext(path))
	}
}
