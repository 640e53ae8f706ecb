package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/classboard/classboard/pkg/types"
)

// DefaultSeed is the classroom set used when no seed file is configured
var DefaultSeed = []types.Classroom{
	{Name: "5VR", Capacity: 35},
	{Name: "2GK", Capacity: 38},
}

// LoadSeedFile reads a YAML classroom list, e.g.:
//
//	- name: 5VR
//	  capacity: 35
//	- name: 2GK
//	  capacity: 38
func LoadSeedFile(path string) ([]types.Classroom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classroom seed file %s: %w", path, err)
	}

	var rooms []types.Classroom
	if err := yaml.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to parse classroom seed file %s: %w", path, err)
	}
	return rooms, nil
}
