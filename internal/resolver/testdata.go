package resolver

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/qa-infra/sessionctl/utils/common"
)

// FileTestData is a TestDataProvider backed by a flat YAML document, e.g.
//
//	username: qa-admin@example.com
//	password: hunter2
//	sessionKind: admin
//
// Suites that scope credentials per test point each test at its own file.
type FileTestData struct {
	values map[string]string
}

func LoadTestData(fs common.FileSystemInterface, path string) (*FileTestData, error) {
	exists, err := fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check test data file %s: %w", path, err)
	}
	if !exists {
		// Absent file is a valid configuration: every Get returns empty
		// and the resolver falls through to the environment.
		return &FileTestData{values: map[string]string{}}, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file %s: %w", path, err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse test data file %s: %w", path, err)
	}
	return &FileTestData{values: values}, nil
}

func (d *FileTestData) Get(field string) string {
	return d.values[field]
}
