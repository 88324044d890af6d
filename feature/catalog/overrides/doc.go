// Package overrides loads the versioned YAML dataset of real-world data
// quirks: names shared by several items, ids reused by plant ingredients,
// the source provenance allow-list, the denylist, sheet typo corrections and
// the fragment expectations checked by the validator.
//
// The built-in dataset is embedded from defaults.yaml. A deployment can point
// data.overrides_path at its own copy.
package overrides
