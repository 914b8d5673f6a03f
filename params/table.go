package params

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownMethod is returned by Rules for a method without formatted fields.
var ErrUnknownMethod = errors.New("unknown method")

//go:embed methods.yaml
var methodsYAML []byte

// Rule describes one formatted field of a method.
type Rule struct {
	// At is the dotted path from the parameters to the object holding Text
	// and Entities. Empty means the parameters themselves. A "[]" suffix
	// on a segment visits every element of an array.
	At string `yaml:"at,omitempty"`
	// Text is the field that may hold a Formattable.
	Text string `yaml:"text"`
	// Entities is the field that receives the entities.
	Entities string `yaml:"entities"`
}

type segment struct {
	name  string
	array bool
}

func (r Rule) path() []segment {
	if r.At == "" {
		return nil
	}
	parts := strings.Split(r.At, ".")
	out := make([]segment, 0, len(parts))
	for _, p := range parts {
		name, array := strings.CutSuffix(p, "[]")
		out = append(out, segment{name: name, array: array})
	}
	return out
}

type table struct {
	Methods map[string][]Rule `yaml:"methods"`
}

var (
	methodTable     map[string][]Rule
	methodTableErr  error
	methodTableOnce sync.Once
)

func loadTable() (map[string][]Rule, error) {
	methodTableOnce.Do(func() {
		methodTable, methodTableErr = parseTable(methodsYAML)
	})
	return methodTable, methodTableErr
}

func parseTable(data []byte) (map[string][]Rule, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse method table: %w", err)
	}
	for method, rules := range t.Methods {
		for i, r := range rules {
			if r.Text == "" || r.Entities == "" {
				return nil, fmt.Errorf("method %s rule %d: text and entities are required", method, i)
			}
		}
	}
	return t.Methods, nil
}

// mustTable returns the embedded table. The table ships with the package,
// so a parse failure is a build defect.
func mustTable() map[string][]Rule {
	t, err := loadTable()
	if err != nil {
		panic(err)
	}
	return t
}

// Methods lists every method with formatted fields, sorted by name.
func Methods() []string {
	t := mustTable()
	out := make([]string, 0, len(t))
	for m := range t {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Rules returns the formatted fields of method.
func Rules(method string) ([]Rule, error) {
	rules, ok := mustTable()[method]
	if !ok {
		return nil, fmt.Errorf("%s: %w", method, ErrUnknownMethod)
	}
	return append([]Rule(nil), rules...), nil
}
