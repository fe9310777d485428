package model

// MergeConfig is the resolved configuration for one merge run, filled
// field by field in cmd/dommerge from the viper-bound CLI flags and
// MODMERGE_*-prefixed environment variables.
type MergeConfig struct {
	// Mods is the ordered list of input mod file paths. Order is
	// significant: it is the tie-break order the allocator uses
	// (spec §4.4 step 2).
	Mods []string `mapstructure:"mods"`

	// GroupsFile optionally points at a YAML file declaring mod groups
	// (co-dependent mods processed as one concatenated virtual mod).
	GroupsFile string `mapstructure:"groups"`

	// OutputName is the merged file's name; ".dm" is appended if
	// missing.
	OutputName string `mapstructure:"output"`

	// OutputPath is the directory the merged file and copied resources
	// are written to.
	OutputPath string `mapstructure:"output_path"`

	// Clean empties OutputPath before writing.
	Clean bool `mapstructure:"clean"`

	// DryRun runs parsing and allocation and produces a MergeReport
	// without writing the merged file or copying resources.
	DryRun bool `mapstructure:"dry_run"`

	// ModName, Description, and IconPath seed the fresh output header
	// (spec §9: the output header is always written fresh from
	// configuration, never taken from an input mod).
	ModName     string `mapstructure:"mod_name"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`
	IconPath    string `mapstructure:"icon_path"`
}
