// Package config reads service configuration from the environment, seeded from .env files.
package config

type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
