package plugins

import (
	"fmt"

	"github.com/kingrea/tweakboard/internal/config"
	"github.com/kingrea/tweakboard/internal/tweak"
)

// RegisterTweakableTypes discovers YAML and Go type definitions under
// .tweakboard/types and registers them into the catalog.
func RegisterTweakableTypes(cat *tweak.Catalog, cfg *config.Config) error {
	if cat == nil || cfg == nil {
		return nil
	}
	defs, err := loadAllDefinitionFiles(cfg.TypesDir())
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}
	seen := make(map[string]string)
	for _, file := range defs {
		spec := file.Spec
		if existing, ok := seen[spec.ID]; ok {
			return fmt.Errorf("plugin: duplicate type id %s (%s and %s)", spec.ID, existing, file.Path)
		}
		seen[spec.ID] = file.Path
		if err := cat.Register(spec); err != nil {
			return fmt.Errorf("plugin: register %s from %s: %w", spec.ID, file.Path, err)
		}
	}
	return nil
}

func loadAllDefinitionFiles(dir string) ([]DefinitionFile, error) {
	yamlDefs, err := LoadDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	goDefs, err := LoadGoDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	return append(yamlDefs, goDefs...), nil
}
