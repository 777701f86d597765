// cmd/tools/worker-generator/main.go
//
// worker-generator scaffolds the input model and handler method of a
// registered task type from its JSON input schema.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"hiring-pipeline/pkg/registry"
)

type field struct {
	Name    string
	Type    string
	JSON    string
	Comment string
}

type workerData struct {
	PackageName string
	TaskType    string
	TaskConst   string
	Method      string
	DisplayName string
	Description string
	Stage       string
	Fields      []field
	Outputs     []string
	ErrorCodes  []string
}

// goType maps a JSON schema property to the Go type used in worker models.
// Dates stay strings and are parsed with workers.ParseDate in the handler.
func goType(prop map[string]interface{}) string {
	switch prop["type"] {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		if items, ok := prop["items"].(map[string]interface{}); ok {
			return "[]" + goType(items)
		}
		return "[]interface{}"
	case "object":
		return "map[string]interface{}"
	}
	return "interface{}"
}

var initialisms = map[string]string{"Id": "ID", "Ids": "IDs", "Url": "URL", "Ctc": "CTC", "Hr": "HR"}

// exportName turns a camelCase JSON key into an exported Go identifier.
func exportName(key string) string {
	if key == "" {
		return key
	}
	var words []string
	start := 0
	for i := 1; i < len(key); i++ {
		if key[i] >= 'A' && key[i] <= 'Z' {
			words = append(words, key[start:i])
			start = i
		}
	}
	words = append(words, key[start:])

	var b strings.Builder
	for _, w := range words {
		w = strings.ToUpper(w[:1]) + w[1:]
		if repl, ok := initialisms[w]; ok {
			w = repl
		}
		b.WriteString(w)
	}
	return b.String()
}

// camel turns a kebab-case task type into camelCase.
func camel(taskType string) string {
	parts := strings.Split(taskType, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func buildFields(schema map[string]interface{}) []field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	switch req := schema["required"].(type) {
	case []string:
		for _, r := range req {
			required[r] = true
		}
	case []interface{}:
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]field, 0, len(keys))
	for _, k := range keys {
		prop, _ := props[k].(map[string]interface{})
		f := field{Name: exportName(k), Type: goType(prop), JSON: k}
		if !required[k] {
			f.JSON += ",omitempty"
		}
		if pattern, ok := prop["pattern"].(string); ok && strings.HasPrefix(pattern, `^\d{4}`) {
			f.Comment = "// 2006-01-02 or RFC3339"
		}
		if enum, ok := prop["enum"].([]interface{}); ok {
			vals := make([]string, 0, len(enum))
			for _, v := range enum {
				vals = append(vals, fmt.Sprint(v))
			}
			f.Comment = "// one of " + strings.Join(vals, ", ")
		}
		fields = append(fields, f)
	}
	return fields
}

const modelsTemplate = `package {{ .PackageName }}

// {{ .Method }}Input is the variable set of the {{ .TaskType }} task.
type {{ .Method }}Input struct {
{{- range .Fields }}
	{{ .Name }} {{ .Type }} ` + "`json:\"{{ .JSON }}\"`" + `{{ if .Comment }} {{ .Comment }}{{ end }}
{{- end }}
}

type {{ .Method }}Output struct {
{{- range .Outputs }}
	{{ exportName . }} interface{} ` + "`json:\"{{ . }}\"`" + `
{{- end }}
}
`

const handlerTemplate = `package {{ .PackageName }}

import "context"

// {{ .TaskConst }} is registered under the {{ .Stage }} stage: {{ .DisplayName }}.
const {{ .TaskConst }} = "{{ .TaskType }}"

// {{ .Method }} {{ lowerFirst .Description }}
//
// Add to Jobs(): {{ .TaskConst }}: camunda.Bind(h.{{ .Method }}),
{{- if .ErrorCodes }}
// Error codes: {{ join .ErrorCodes ", " }}.
{{- end }}
func (h *Handler) {{ .Method }}(ctx context.Context, in {{ .Method }}Input) (*{{ .Method }}Output, error) {
	panic("{{ .TaskType }} is not implemented")
}
`

func render(name, text string, data *workerData) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"exportName": exportName,
		"join":       strings.Join,
		"lowerFirst": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToLower(s[:1]) + s[1:]
		},
	}).Parse(text)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return out, nil
}

func newWorkerData(a *registry.Activity, pkg string) *workerData {
	method := exportName(camel(a.TaskType))
	return &workerData{
		PackageName: pkg,
		TaskType:    a.TaskType,
		TaskConst:   "Task" + method,
		Method:      method,
		DisplayName: a.DisplayName,
		Description: a.Description,
		Stage:       a.Stage,
		Fields:      buildFields(a.InputSchema),
		Outputs:     a.OutputFields,
		ErrorCodes:  a.ErrorCodes,
	}
}

func main() {
	path := flag.String("registry", "", "Registry file (built-in registry when empty)")
	taskType := flag.String("taskType", "", "Registered task type to scaffold")
	pkg := flag.String("package", "", "Go package name of the generated files")
	out := flag.String("out", "", "Directory to write models and handler files into (stdout when empty)")
	flag.Parse()

	if *taskType == "" || *pkg == "" {
		flag.Usage()
		os.Exit(1)
	}

	reg := registry.Default()
	if *path != "" {
		loaded, err := registry.LoadRegistry(*path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
			os.Exit(1)
		}
		reg = loaded
	}

	activity, ok := reg.Find(*taskType)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: task type %s is not registered\n", *taskType)
		os.Exit(1)
	}
	data := newWorkerData(activity, *pkg)

	files := []struct {
		name, tmpl string
	}{
		{strings.ReplaceAll(*taskType, "-", "_") + "_models.go", modelsTemplate},
		{strings.ReplaceAll(*taskType, "-", "_") + ".go", handlerTemplate},
	}
	for _, f := range files {
		src, err := render(f.name, f.tmpl, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", f.name, err)
			os.Exit(1)
		}
		if *out == "" {
			fmt.Printf("// %s\n%s\n", f.name, src)
			continue
		}
		if err := os.MkdirAll(*out, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *out, err)
			os.Exit(1)
		}
		target := filepath.Join(*out, f.name)
		if _, err := os.Stat(target); err == nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: file exists\n", target)
			continue
		}
		if err := os.WriteFile(target, src, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", target, err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", target)
	}
}
