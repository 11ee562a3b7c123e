package resourceagent

import (
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgdnvk/pcmkctl/internal/command"
)

// ErrUnsupportedSchema is returned by validators asked to validate an OCF
// version they have no schema for.
var ErrUnsupportedSchema = errors.New("unsupported OCF schema version")

// SchemaValidator checks raw metadata against the schema of its OCF version.
type SchemaValidator interface {
	Validate(ctx context.Context, ocfVersion string, raw string) error
}

var relaxNGSchemaFiles = map[string]string{
	OcfVersion10: "ocf-1.0.rng",
	OcfVersion11: "ocf-1.1.rng",
}

//go:embed schemas/ocf-1.0.rng schemas/ocf-1.1.rng
var embeddedSchemas embed.FS

// EmbeddedSchema returns the built-in RelaxNG schema of an OCF version.
func EmbeddedSchema(ocfVersion string) ([]byte, error) {
	file, ok := relaxNGSchemaFiles[ocfVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSchema, ocfVersion)
	}
	return embeddedSchemas.ReadFile("schemas/" + file)
}

// RelaxNGValidator validates metadata with xmllint against the OCF RelaxNG
// schemas. Schemas missing from SchemaDir are replaced by the built-in ones,
// written to a cache directory on first use.
type RelaxNGValidator struct {
	runner    command.Runner
	xmllint   string
	schemaDir string
	cacheDir  string
}

// NewRelaxNGValidator creates a validator running the xmllint binary.
func NewRelaxNGValidator(runner command.Runner, xmllint, schemaDir string) *RelaxNGValidator {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return &RelaxNGValidator{
		runner:    runner,
		xmllint:   xmllint,
		schemaDir: schemaDir,
		cacheDir:  filepath.Join(cacheDir, "pcmkctl", "schemas"),
	}
}

// Validate implements SchemaValidator.
func (v *RelaxNGValidator) Validate(ctx context.Context, ocfVersion string, raw string) error {
	schema, err := v.schemaPath(ocfVersion)
	if err != nil {
		return err
	}
	result, err := v.runner.Run(ctx, raw, v.xmllint, "--noout", "--relaxng", schema, "-")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return errors.New(command.JoinOutput(result))
	}
	return nil
}

// schemaPath returns the schema file of ocfVersion in the schema directory,
// or the path of the built-in copy when the directory has none.
func (v *RelaxNGValidator) schemaPath(ocfVersion string) (string, error) {
	file, ok := relaxNGSchemaFiles[ocfVersion]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSchema, ocfVersion)
	}
	if v.schemaDir != "" {
		installed := filepath.Join(v.schemaDir, file)
		if _, err := os.Stat(installed); err == nil {
			return installed, nil
		}
	}

	data, err := EmbeddedSchema(ocfVersion)
	if err != nil {
		return "", err
	}
	cached := filepath.Join(v.cacheDir, file)
	if current, err := os.ReadFile(cached); err == nil && bytes.Equal(current, data) {
		return cached, nil
	}
	if err := os.MkdirAll(v.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create schema cache: %w", err)
	}
	if err := os.WriteFile(cached, data, 0o644); err != nil {
		return "", fmt.Errorf("write schema %s: %w", file, err)
	}
	return cached, nil
}

// StructuralValidator enforces the parts of the OCF schemas the metadata
// pipeline depends on without any external tool.
type StructuralValidator struct{}

// NewStructuralValidator creates the built-in validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{}
}

// Validate implements SchemaValidator.
func (StructuralValidator) Validate(_ context.Context, ocfVersion string, raw string) error {
	if _, ok := relaxNGSchemaFiles[ocfVersion]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedSchema, ocfVersion)
	}

	decoder := newXMLDecoder(raw)
	var stack []string
	// child element counts of each open element
	var counts []map[string]int
	rootSeen := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) == 0 {
				if rootSeen {
					return fmt.Errorf("extra content at the end of the document: element %s", name)
				}
				rootSeen = true
				if name != "resource-agent" {
					return fmt.Errorf("expecting element resource-agent, got %s", name)
				}
			} else {
				parent = stack[len(stack)-1]
				counts[len(counts)-1][name]++
				if err := checkStructure(ocfVersion, stack, parent, name, counts[len(counts)-1][name]); err != nil {
					return err
				}
			}
			if requiresName(ocfVersion, parent, name) && !hasAttr(t, "name") {
				return fmt.Errorf("element %s is missing the required attribute name", name)
			}
			stack = append(stack, name)
			counts = append(counts, map[string]int{})
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			counts = counts[:len(counts)-1]
		case xml.CharData:
			if len(stack) == 0 && strings.TrimSpace(string(t)) != "" {
				return errors.New("text outside of the resource-agent element")
			}
		}
	}
	if !rootSeen {
		return errors.New("document is empty")
	}
	return nil
}

// requiresName tells whether the schema of ocfVersion requires the name
// attribute on element name within parent.
func requiresName(ocfVersion, parent, name string) bool {
	switch {
	case parent == "" && name == "resource-agent":
		return true
	case parent == "parameters" && name == "parameter":
		return true
	case parent == "actions" && name == "action":
		return true
	case ocfVersion == OcfVersion11 && parent == "deprecated" && name == "replaced-with":
		return true
	}
	return false
}

func hasAttr(el xml.StartElement, name string) bool {
	for _, attr := range el.Attr {
		if attr.Name.Space == "" && attr.Name.Local == name {
			return true
		}
	}
	return false
}

func checkStructure(ocfVersion string, stack []string, parent, name string, seen int) error {
	once := func() error {
		if seen > 1 {
			return fmt.Errorf("element %s may appear only once in %s", name, parent)
		}
		return nil
	}

	switch parent {
	case "resource-agent":
		if len(stack) == 1 && (name == "version" || name == "parameters" || name == "actions") {
			return once()
		}
	case "parameters":
		if name != "parameter" {
			return fmt.Errorf("element parameters has extra content: %s", name)
		}
	case "actions":
		if name != "action" {
			return fmt.Errorf("element actions has extra content: %s", name)
		}
	case "parameter":
		switch name {
		case "content":
			return once()
		case "deprecated":
			if ocfVersion == OcfVersion11 {
				return once()
			}
		}
	case "deprecated":
		if ocfVersion == OcfVersion11 && name != "replaced-with" && name != "desc" {
			return fmt.Errorf("element deprecated has extra content: %s", name)
		}
	}
	return nil
}
