package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/domtools/dommerge/gamedata"
	"github.com/domtools/dommerge/internal/model"
	"github.com/domtools/dommerge/internal/writer"
)

// addMergeCommand registers the single "merge" subcommand and binds its
// flags through viper, mirroring the donor's addGlobalFlags
// (nanostore/cmd/viper_cli.go) so every flag is also settable as a
// MODMERGE_-prefixed environment variable.
func (cli *dommergeCLI) addMergeCommand() {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge one or more mod files into a single conflict-free mod",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.runMerge(cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringSlice("mods", nil, "mod file paths to merge (repeatable)")
	flags.String("output", "merged_mod", "output mod file name")
	flags.String("output-path", "", "directory the merged mod and resources are written to (default: cwd)")
	flags.Bool("clean", false, "empty the output directory before writing")
	flags.String("groups", "", "path to a YAML file declaring mod groups")
	flags.Bool("dry-run", false, "compute the merge and report without writing output")
	flags.String("report-format", "table", "report output format: table|json|yaml")
	flags.String("mod-name", "Merged Mod", "#modname written into the output header")
	flags.String("description", "", "#description written into the output header")
	flags.String("version", "", "#version written into the output header")
	flags.String("icon-path", "", "#icon written into the output header")
	flags.String("game-data", "", "directory containing spells.csv/effects_spells.csv/monsters.csv")
	flags.Bool("verbose", false, "mirror structured logs to stderr")

	for _, name := range []string{
		"mods", "output", "output-path", "clean", "groups", "dry-run",
		"report-format", "mod-name", "description", "version", "icon-path",
		"game-data", "verbose",
	} {
		_ = cli.viperInst.BindPFlag(name, flags.Lookup(name))
	}

	cli.rootCmd.AddCommand(cmd)
}

func (cli *dommergeCLI) runMerge(cmd *cobra.Command) error {
	v := cli.viperInst

	modPaths := v.GetStringSlice("mods")
	if len(modPaths) == 0 {
		return newConfigError("merge", "no input mods given", "pass --mods at least once, or set MODMERGE_MODS")
	}

	cfg := &model.MergeConfig{
		Mods:        modPaths,
		GroupsFile:  v.GetString("groups"),
		OutputName:  v.GetString("output"),
		OutputPath:  v.GetString("output-path"),
		Clean:       v.GetBool("clean"),
		DryRun:      v.GetBool("dry-run"),
		ModName:     v.GetString("mod-name"),
		Description: v.GetString("description"),
		Version:     v.GetString("version"),
		IconPath:    v.GetString("icon-path"),
	}

	logger, err := initLogging(v.GetBool("verbose"))
	if err != nil {
		return newRunError("initialize logging", err)
	}

	groups, err := loadGroups(cfg.GroupsFile)
	if err != nil {
		return err
	}
	mods := loadMods(cfg.Mods)

	var lookup *gamedata.Store
	if dir := v.GetString("game-data"); dir != "" {
		lookup, err = gamedata.Load(dir)
		if err != nil {
			return newRunError("load game data", err)
		}
	}

	report, err := writer.Run(context.Background(), cfg, mods, groups, lookup, logger)
	if err != nil {
		return newRunError("merge mods", err)
	}

	if err := renderReport(os.Stdout, report, v.GetString("report-format")); err != nil {
		return newRunError("render report", err)
	}

	if len(report.Collisions) > 0 {
		fmt.Fprintf(os.Stderr, "resolved %d id collision(s) across %d mod(s)\n", len(report.Collisions), len(report.Mods))
	}
	return nil
}
