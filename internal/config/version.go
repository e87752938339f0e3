package config

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 2

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// 0 -> 1: add version field, no structural changes
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			data["version"] = 1
			return data, nil
		},
	},
	// 1 -> 2: popup.zIndex became popup.baseStackOrder and the top-level
	// fade flag moved under popup
	{
		FromVersion: 1,
		ToVersion:   2,
		Migrate: func(data map[string]any) (map[string]any, error) {
			popup, _ := data["popup"].(map[string]any)
			if popup == nil {
				popup = map[string]any{}
			}
			if old, ok := popup["zIndex"]; ok {
				if _, set := popup["baseStackOrder"]; !set {
					popup["baseStackOrder"] = old
				}
				delete(popup, "zIndex")
			}
			if fade, ok := data["fade"]; ok {
				if _, isBool := fade.(bool); !isBool {
					return nil, fmt.Errorf("fade must be a boolean, got %T", fade)
				}
				if _, set := popup["fade"]; !set {
					popup["fade"] = fade
				}
				delete(data, "fade")
			}
			data["popup"] = popup
			data["version"] = 2
			return data, nil
		},
	},
}

// ParseVersionedConfig parses config data with version migration support.
// Comments and trailing commas are allowed. Fields absent from data keep
// their default values.
func ParseVersionedConfig(data []byte) (*Config, error) {
	var rawConfig map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// 0 if not present = legacy config
	version := 0
	if v, ok := rawConfig["version"].(float64); ok {
		version = int(v)
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	// nested form: {"version": 2, "config": {...}}
	if nested, ok := rawConfig["config"]; ok {
		nestedData, err := json.Marshal(nested)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal nested config: %w", err)
		}
		migratedData = nestedData
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(migratedData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config as a flat object with a
// version field
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	var cfgMap map[string]any
	if err := json.Unmarshal(cfgData, &cfgMap); err != nil {
		return nil, err
	}
	cfgMap["version"] = CurrentVersion

	return json.MarshalIndent(cfgMap, "", "  ")
}
