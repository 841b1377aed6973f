package config

import (
	"fmt"
	"strings"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// StorageConfig selects the product store backing the service.
type StorageConfig struct {
	Kind string `koanf:"kind"`
}

// String returns a string representation of the StorageConfig.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  kind: %s\n", c.Kind))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Kind {
	case StoragePostgres, StorageMemory:
		return nil
	default:
		return fmt.Errorf("unknown storage kind %q, expected %q or %q", c.Kind, StoragePostgres, StorageMemory)
	}
}
