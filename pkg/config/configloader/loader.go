// Package configloader loads a service configuration from config.yaml, .env and the environment.
package configloader

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// Load builds a T from, in increasing priority: config.yaml, .env and process environment.
// Environment keys are prefixed with <SERVICENAME>_ and map "_" to nesting,
// so CATALOG_DATABASE_URL sets database.url. T is usually a pointer to a struct.
func Load[T Validator](serviceName string) (T, error) {
	cfg, target := newTarget[T]()
	k := koanf.New(".")

	configFile := "config.yaml"
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))

	// 1. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", configFile, err)
		}
	}

	// 2. Load environment variables from .env file
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if envFileMap, err := godotenv.Read(".env"); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(key, envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 4. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", target); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if reflect.TypeFor[T]().Kind() == reflect.Pointer {
		cfg = target.(T)
	} else {
		cfg = *target.(*T)
	}

	// 5. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// newTarget returns the zero T and a pointer koanf can unmarshal into.
// For pointer types the pointer is allocated so the result is never nil.
func newTarget[T any]() (T, any) {
	var zero T
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		return zero, reflect.New(t.Elem()).Interface()
	}
	return zero, &zero
}
