package overrides

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// FragmentPolicy is the expected fragment flag of a drop.
type FragmentPolicy string

const (
	FragmentWhole    FragmentPolicy = "whole"
	FragmentOnly     FragmentPolicy = "fragment"
	FragmentAny      FragmentPolicy = "any"
	DailyScope                      = "Daily"
	currentVersion                  = 1
)

// Set is a set of strings decoded from a YAML sequence.
type Set map[string]struct{}

// Has reports whether s contains v.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var values []string
	if err := node.Decode(&values); err != nil {
		return err
	}
	out := make(Set, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	*s = out
	return nil
}

// Overrides holds the data quirks used by the importers and the merger.
type Overrides struct {
	Version               int                       `yaml:"version"`
	MinItemID             int                       `yaml:"min_item_id"`
	KnownDuplicateNames   Set                       `yaml:"known_duplicate_names"`
	PlantIngredientIDs    map[string]int            `yaml:"plant_ingredient_ids"`
	SourceAllowList       Set                       `yaml:"source_allow_list"`
	Denylist              Set                       `yaml:"denylist"`
	NameCorrections       map[string]string         `yaml:"name_corrections"`
	JourneyRecipeWholeIDs []int                     `yaml:"journey_recipe_whole_ids"`
	TaskChestFragments    map[string]FragmentPolicy `yaml:"task_chest_fragments"`
}

// Default returns the built-in overrides.
func Default() *Overrides {
	ov, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in overrides: %v", err))
	}
	return ov
}

// Load reads overrides from path on fs. An empty path yields the defaults.
func Load(fs afero.Fs, path string) (*Overrides, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("overrides file %s not found", path)
		}
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates overrides YAML.
func Parse(data []byte) (*Overrides, error) {
	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parsing overrides YAML: %w", err)
	}
	if ov.Version != currentVersion {
		return nil, fmt.Errorf("unsupported overrides version %d", ov.Version)
	}
	for scope, p := range ov.TaskChestFragments {
		switch p {
		case FragmentWhole, FragmentOnly, FragmentAny:
		default:
			return nil, fmt.Errorf("unknown fragment policy %q for %s", p, scope)
		}
	}
	ov.fill()
	return &ov, nil
}

func (o *Overrides) fill() {
	if o.KnownDuplicateNames == nil {
		o.KnownDuplicateNames = Set{}
	}
	if o.PlantIngredientIDs == nil {
		o.PlantIngredientIDs = map[string]int{}
	}
	if o.SourceAllowList == nil {
		o.SourceAllowList = Set{}
	}
	if o.Denylist == nil {
		o.Denylist = Set{}
	}
	if o.NameCorrections == nil {
		o.NameCorrections = map[string]string{}
	}
	if o.TaskChestFragments == nil {
		o.TaskChestFragments = map[string]FragmentPolicy{}
	}
}

// IsKnownDuplicate reports whether more than one item carries name.
func (o *Overrides) IsKnownDuplicate(name string) bool {
	return o.KnownDuplicateNames.Has(name)
}

// IsDenied reports whether data for name must not be imported.
func (o *Overrides) IsDenied(name string) bool {
	return o.Denylist.Has(name)
}

// Correct maps a sheet spelling to the catalog name.
func (o *Overrides) Correct(name string) string {
	if fixed, ok := o.NameCorrections[name]; ok {
		return fixed
	}
	return name
}

// JourneyRecipeWhole reports whether journey recipe drops of id are expected
// to be whole recipes.
func (o *Overrides) JourneyRecipeWhole(id int) bool {
	for _, v := range o.JourneyRecipeWholeIDs {
		if v == id {
			return true
		}
	}
	return false
}

// TaskChestPolicy returns the fragment policy for a task chest scope.
// Scopes without an entry accept anything.
func (o *Overrides) TaskChestPolicy(scope string) FragmentPolicy {
	if p, ok := o.TaskChestFragments[scope]; ok {
		return p
	}
	return FragmentAny
}
