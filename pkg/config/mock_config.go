package config

// MapConfig is a Config backed by a fixed map. Tests use it in place of the environment.
type MapConfig map[string]string

// NewMockConfig returns a Config that answers from values only. A nil map is an empty config.
func NewMockConfig(values map[string]string) Config {
	return MapConfig(values)
}

func (m MapConfig) Get(key string) string {
	return m[key]
}

// GetOrDefault returns def only when key is absent, so a key set to "" stays empty.
func (m MapConfig) GetOrDefault(key, def string) string {
	if v, ok := m[key]; ok {
		return v
	}

	return def
}
