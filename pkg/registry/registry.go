// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"hiring-pipeline/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode registry %s: %w", path, err)
	}
	return &reg, nil
}

func SaveRegistry(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Find returns the activity registered for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TaskTypes lists every registered task type in registry order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*validation.Schema{}
)

// ValidateVariables checks raw job variables against the activity's input
// schema. Compiled schemas are cached per task type.
func (a *Activity) ValidateVariables(raw []byte) (*validation.ValidationResult, error) {
	schemaMu.Lock()
	s, ok := schemaCache[a.TaskType]
	if !ok {
		var err error
		s, err = validation.Compile(a.InputSchema)
		if err != nil {
			schemaMu.Unlock()
			return nil, fmt.Errorf("%s: %w", a.TaskType, err)
		}
		schemaCache[a.TaskType] = s
	}
	schemaMu.Unlock()
	return s.ValidateJSON(raw)
}
