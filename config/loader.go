package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

// LoadWithEnv reads <name>.yaml from the first directory that has it, then
// overlays environment variables. AUTH_SIGNINGSECRET overrides auth.signingSecret:
// env segments are matched against the YAML keys ignoring case and separators.
func LoadWithEnv[T any](name string, dirs ...string) (*T, error) {
	path, err := findConfigFile(name, dirs)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	keys := newKeyIndex(k.Raw())
	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return keys.resolve(key), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(T)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			MatchName:        strings.EqualFold,
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

// findConfigFile searches the working directory first, then each dir relative to it.
func findConfigFile(name string, dirs []string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "os.Getwd")
	}

	candidates := []string{name + ".yaml"}
	for _, dir := range dirs {
		candidates = append(candidates, filepath.Join(wd, dir, name+".yaml"))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", errors.Errorf("config file %s.yaml not found in any search path", name)
}

// keyIndex maps normalized key segments to the spelling used in the YAML.
type keyIndex struct {
	key      string
	children map[string]*keyIndex
}

func newKeyIndex(raw map[string]any) *keyIndex {
	idx := &keyIndex{children: make(map[string]*keyIndex, len(raw))}
	for key, value := range raw {
		child := &keyIndex{key: key}
		if nested, ok := value.(map[string]any); ok {
			child.children = newKeyIndex(nested).children
		}
		idx.children[normalizeToken(key)] = child
	}

	return idx
}

// resolve turns POSTGRES_SSLMODE into postgres.sslMode. Segments without a
// YAML counterpart stay lowercase, as does everything below them.
func (idx *keyIndex) resolve(envKey string) string {
	var path []string
	node := idx

	for _, segment := range strings.Split(strings.ToLower(envKey), "_") {
		if segment == "" {
			continue
		}

		var next *keyIndex
		if node != nil {
			next = node.children[normalizeToken(segment)]
		}
		if next == nil {
			path = append(path, segment)
			node = nil

			continue
		}

		path = append(path, next.key)
		node = next
	}

	return strings.Join(path, ".")
}

func normalizeToken(s string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

// replicasFromEnv reads POSTGRES_REPLICAS_<n>_{HOST,PORT,USERNAME,PASSWORD}
// for n = 0, 1, ... until a replica lacks a host or port.
func replicasFromEnv(lookup func(string) (string, bool)) []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		get := func(field string) string {
			v, _ := lookup(fmt.Sprintf("POSTGRES_REPLICAS_%d_%s", i, field))

			return v
		}

		host, port := get("HOST"), get("PORT")
		if host == "" || port == "" {
			return replicas
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: get("USERNAME"),
			Password: get("PASSWORD"),
		})
	}
}
