package app

import _ "embed"

//go:embed config_schemas.json
var configSchemasData []byte

// ConfigSchema describes one settings entry seeded into sys_config.
type ConfigSchema struct {
	Key         string `json:"key"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

type ConfigSchemasJSON struct {
	Schemas []ConfigSchema `json:"schemas"`
}
