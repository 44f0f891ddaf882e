package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a timeline seed file. Files may
// be written in YAML or JSON; both decode through the YAML parser.
type ImportSchema struct {
	Groups   []GroupImport   `yaml:"groups" json:"groups"`
	Items    []ItemImport    `yaml:"items" json:"items"`
	Holidays []HolidayImport `yaml:"holidays,omitempty" json:"holidays,omitempty"`
}

// GroupImport defines one group (project) in the seed file.
type GroupImport struct {
	Ref     string `yaml:"ref" json:"ref"`
	ShortID string `yaml:"short_id,omitempty" json:"short_id,omitempty"`
	Name    string `yaml:"name" json:"name"`
	Status  string `yaml:"status,omitempty" json:"status,omitempty"`
	Order   int    `yaml:"order,omitempty" json:"order,omitempty"`
}

// ItemImport defines a task, stage or milestone. End may be omitted for
// milestones.
type ItemImport struct {
	Ref       string   `yaml:"ref" json:"ref"`
	GroupRef  string   `yaml:"group_ref" json:"group_ref"`
	ParentRef *string  `yaml:"parent_ref,omitempty" json:"parent_ref,omitempty"`
	Kind      string   `yaml:"kind" json:"kind"`
	Name      string   `yaml:"name" json:"name"`
	Start     string   `yaml:"start" json:"start"`
	End       string   `yaml:"end,omitempty" json:"end,omitempty"`
	Progress  *float64 `yaml:"progress,omitempty" json:"progress,omitempty"`
	Status    string   `yaml:"status,omitempty" json:"status,omitempty"`
	Assignee  string   `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Order     int      `yaml:"order,omitempty" json:"order,omitempty"`
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
}

// HolidayImport defines a non-working day.
type HolidayImport struct {
	Day  string `yaml:"day" json:"day"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// LoadImportSchema reads and parses a seed file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema decodes YAML or JSON seed content.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
