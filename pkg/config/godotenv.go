package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
)

type EnvLoader struct {
	logger logger
}

type logger interface {
	Infof(format string, a ...any)
	Debugf(format string, a ...any)
	Fatalf(format string, a ...any)
}

// NewEnvFile loads <folder>/.env, then <folder>/.local.env, then <folder>/.<APP_ENV>.env into the process
// environment. Later files override earlier ones; variables already set in the environment win over all files.
func NewEnvFile(folder string, logger logger) Config {
	conf := &EnvLoader{logger: logger}
	conf.read(folder)

	return conf
}

func (e *EnvLoader) read(folder string) {
	initialEnv := make(map[string]bool)

	for _, envVar := range os.Environ() {
		key, _, _ := strings.Cut(envVar, "=")
		initialEnv[key] = true
	}

	envMap := make(map[string]string)

	e.loadFile(folder+defaultFileName, envMap, true)
	e.loadFile(folder+defaultOverrideFileName, envMap, false)

	if appEnv := os.Getenv("APP_ENV"); appEnv != "" {
		e.loadFile(fmt.Sprintf("%s/.%s.env", folder, appEnv), envMap, true)
	}

	for key, value := range envMap {
		if !initialEnv[key] {
			_ = os.Setenv(key, value)
		}
	}
}

// loadFile merges a single env file into envMap. A missing file is skipped; any other read failure
// is fatal when strict is set.
func (e *EnvLoader) loadFile(path string, envMap map[string]string, strict bool) {
	content, err := godotenv.Read(path)
	if err != nil {
		if strict && !errors.Is(err, fs.ErrNotExist) {
			e.logger.Fatalf("Failed to load config from file: %v, Err: %v", path, err)
		}

		return
	}

	for k, v := range content {
		envMap[k] = v
	}

	e.logger.Infof("Loaded config from file: %v", path)
}

func (*EnvLoader) Get(key string) string {
	return os.Getenv(key)
}

func (*EnvLoader) GetOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}
