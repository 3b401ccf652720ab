package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config controls the layout of the task list export. All fields have
// defaults, so the YAML file only needs to override what it cares about.
type Config struct {
	Sheet   string         `yaml:"sheet"`
	Title   string         `yaml:"title"`
	Columns []ColumnConfig `yaml:"columns"`
}

type ColumnConfig struct {
	Field  string  `yaml:"field"`
	Header string  `yaml:"header"`
	Width  float64 `yaml:"width"`
}

// Exportable list fields the config can reference.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCount       = "count"
	FieldProgress    = "progress"
	FieldCreated     = "created"
	FieldUpdated     = "updated"
)

// DefaultConfig is the layout used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Sheet: "Task Lists",
		Title: "Task List Overview",
		Columns: []ColumnConfig{
			{Field: FieldTitle, Header: "Title", Width: 30},
			{Field: FieldDescription, Header: "Description", Width: 40},
			{Field: FieldCount, Header: "Tasks", Width: 10},
			{Field: FieldProgress, Header: "Completion %", Width: 14},
			{Field: FieldCreated, Header: "Created", Width: 20},
			{Field: FieldUpdated, Header: "Updated", Width: 20},
		},
	}
}

// LoadConfig reads a layout config from a YAML file, filling unset fields
// from the defaults and rejecting unknown column fields.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read report config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse report config: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.Sheet == "" {
		cfg.Sheet = defaults.Sheet
	}
	if cfg.Title == "" {
		cfg.Title = defaults.Title
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = defaults.Columns
	}

	valid := map[string]bool{
		FieldTitle: true, FieldDescription: true, FieldCount: true,
		FieldProgress: true, FieldCreated: true, FieldUpdated: true,
	}
	for i, col := range cfg.Columns {
		if !valid[col.Field] {
			return Config{}, fmt.Errorf("unknown report column field %q", col.Field)
		}
		if col.Header == "" {
			cfg.Columns[i].Header = col.Field
		}
		if col.Width <= 0 {
			cfg.Columns[i].Width = 15
		}
	}
	return cfg, nil
}
