// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"hiring-pipeline/pkg/registry"
)

const defaultPath = "configs/activity-registry.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dump":
		err = runDump(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "help":
		help()
	default:
		help()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads path, or returns the built-in registry when path is empty.
func load(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return reg, nil
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	path := fs.String("path", defaultPath, "Where to write the built-in registry")
	fs.Parse(args)

	reg := registry.Default()
	if err := os.MkdirAll(filepath.Dir(*path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := registry.SaveRegistry(reg, *path); err != nil {
		return err
	}
	fmt.Printf("Wrote %d activities to %s\n", len(reg.Activities), *path)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", "", "Registry file (built-in registry when empty)")
	stage := fs.String("stage", "", "Only list activities of this stage")
	fs.Parse(args)

	reg, err := load(*path)
	if err != nil {
		return err
	}
	for _, a := range reg.Activities {
		if *stage != "" && a.Stage != *stage {
			continue
		}
		fmt.Printf("%-44s %-12s %-10s %s\n", a.TaskType, a.Stage, a.ImplementationStatus, a.DisplayName)
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", "", "Registry file (built-in registry when empty)")
	fs.Parse(args)

	reg, err := load(*path)
	if err != nil {
		return err
	}
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for i := range reg.Activities {
		a := &reg.Activities[i]
		switch {
		case a.ID == "":
			return fmt.Errorf("activity missing required field: ID")
		case ids[a.ID]:
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		case a.TaskType == "":
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		case taskTypes[a.TaskType]:
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		case a.DisplayName == "":
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		case a.Stage == "":
			return fmt.Errorf("activity %s missing required field: Stage", a.ID)
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = true

		if _, err := time.ParseDuration(a.Timeout); a.Timeout != "" && err != nil {
			return fmt.Errorf("activity %s has invalid timeout %q", a.ID, a.Timeout)
		}
		if _, err := a.ValidateVariables([]byte("{}")); err != nil {
			return fmt.Errorf("activity %s has an invalid input schema: %w", a.ID, err)
		}
	}

	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

// runCheck validates a variables document against one activity's schema.
func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("path", "", "Registry file (built-in registry when empty)")
	taskType := fs.String("taskType", "", "Task type to check against")
	file := fs.String("file", "", "JSON file holding the job variables")
	fs.Parse(args)

	if *taskType == "" || *file == "" {
		fs.Usage()
		return fmt.Errorf("taskType and file are required for check")
	}
	reg, err := load(*path)
	if err != nil {
		return err
	}
	activity, ok := reg.Find(*taskType)
	if !ok {
		return fmt.Errorf("task type %s is not registered", *taskType)
	}
	raw, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read variables: %w", err)
	}
	res, err := activity.ValidateVariables(raw)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("variables rejected: %s", res.Summary())
	}
	fmt.Printf("Variables are valid for %s.\n", *taskType)
	return nil
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	path := fs.String("path", defaultPath, "Registry file to modify")
	id := fs.String("id", "", "Activity ID to update")
	field := fs.String("field", "", "Field to update (status, version, displayName, description, timeout, retries)")
	value := fs.String("value", "", "New value for the field")
	fs.Parse(args)

	if *id == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("id, field, and value are required for update")
	}

	reg, err := load(*path)
	if err != nil {
		return err
	}

	var target *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *id {
			target = &reg.Activities[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("activity with ID %s not found", *id)
	}

	switch *field {
	case "status":
		target.ImplementationStatus = *value
	case "version":
		target.Version = *value
	case "displayName":
		target.DisplayName = *value
	case "description":
		target.Description = *value
	case "timeout":
		if _, err := time.ParseDuration(*value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		target.Timeout = *value
	case "retries":
		retries, err := strconv.Atoi(*value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		target.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", *field)
	}

	reg.LastUpdated = time.Now().Format(time.RFC3339)
	if err := registry.SaveRegistry(reg, *path); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  dump      Write the built-in activity registry to a JSON file
  list      List registered activities
  validate  Validate a registry file (or the built-in registry)
  check     Validate a job variables file against an activity's input schema
  update    Update an existing activity's field
  help      Show this help message

Examples:
  registry-updater dump -path configs/activity-registry.json
  registry-updater list -stage offer
  registry-updater check -taskType offer-generate -file vars.json
  registry-updater update -path configs/activity-registry.json -id offer-generate -field timeout -value 20s

Use 'registry-updater <command> -h' for more information about a command.
` + "\n")
}
