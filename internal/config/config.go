package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CompareAll is the meta-selector that expands to every concrete method.
// It is not a method itself and never appears in the catalog.
const CompareAll = "compare_all"

type Config struct {
	API     APIConfig
	Web     WebConfig
	Session SessionConfig
	Catalog CatalogConfig
}

type APIConfig struct {
	URL string // base URL of the comparison backend (e.g., http://localhost:5000)
}

type WebConfig struct {
	Host string
	Port int
}

type SessionConfig struct {
	File string // override for the session-identity file path (optional)
}

type CatalogConfig struct {
	Categories []Category `yaml:"categories"`
	Methods    []Method   `yaml:"methods"`
}

// Category is one of the fixed reference categories (countries, US states, ...).
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Method is one concrete shape-similarity method executed by the backend.
type Method struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// MethodIDs returns the concrete method ids in canonical order.
func (c *CatalogConfig) MethodIDs() []string {
	ids := make([]string, len(c.Methods))
	for i, m := range c.Methods {
		ids[i] = m.ID
	}
	return ids
}

// Category looks up a category by id. Returns nil for unknown ids.
func (c *CatalogConfig) Category(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// ValidMethod reports whether id is a concrete method or the compare_all selector.
func (c *CatalogConfig) ValidMethod(id string) bool {
	if id == CompareAll {
		return true
	}
	for _, m := range c.Methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var catalog CatalogConfig
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		// Embedded file, so this can only happen if the build is broken.
		panic("failed to unmarshal embedded catalog.yaml: " + err.Error())
	}

	return &Config{
		API: APIConfig{
			URL: envString("SHAPERANK_API_URL", "http://localhost:5000"),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
		Session: SessionConfig{
			File: os.Getenv("SHAPERANK_SESSION_FILE"),
		},
		Catalog: catalog,
	}
}
