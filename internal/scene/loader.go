package scene

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/tweakboard/internal/host"
)

// objectDoc mirrors one entry of the scene document.
type objectDoc struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Active *bool          `yaml:"active,omitempty"`
	Prefab string         `yaml:"prefab,omitempty"`
	Fields map[string]any `yaml:"fields"`
}

type sceneDoc struct {
	Objects []objectDoc `yaml:"objects"`
}

// Load reads a scene document from disk.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a YAML scene document. Objects appear in document order;
// prefab entries name another object in the same document that becomes
// the canonical source.
func Parse(data []byte) (*Scene, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("scene document is empty")
	}
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	sc := New()
	byName := make(map[string]*Object, len(doc.Objects))
	for idx, entry := range doc.Objects {
		if entry.Name == "" {
			return nil, fmt.Errorf("objects[%d]: name is required", idx)
		}
		if entry.Type == "" {
			return nil, fmt.Errorf("object %s: type is required", entry.Name)
		}
		if _, dup := byName[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate object name %s", entry.Name)
		}
		fields := make(map[string]host.Value, len(entry.Fields))
		for name, raw := range entry.Fields {
			v, err := toValue(raw)
			if err != nil {
				return nil, fmt.Errorf("object %s field %s: %w", entry.Name, name, err)
			}
			fields[name] = v
		}
		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		obj := sc.Add(entry.Name, entry.Type, active, fields)
		byName[entry.Name] = obj
	}
	// Second pass: prefab links may point forward in the document.
	for _, entry := range doc.Objects {
		if entry.Prefab == "" {
			continue
		}
		src, ok := byName[entry.Prefab]
		if !ok {
			return nil, fmt.Errorf("object %s: unknown prefab %s", entry.Name, entry.Prefab)
		}
		if src.typeID != byName[entry.Name].typeID {
			return nil, fmt.Errorf("object %s: prefab %s has type %s, want %s", entry.Name, entry.Prefab, src.typeID, byName[entry.Name].typeID)
		}
		byName[entry.Name].source = src
	}
	return sc, nil
}

// toValue converts decoded YAML into the host value shapes: bool, int64,
// float64, string, and nested []host.Value.
func toValue(raw any) (host.Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool, float64, string:
		return v, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case []any:
		out := make([]host.Value, len(v))
		for i, elem := range v {
			converted, err := toValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}
