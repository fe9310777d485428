package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dommergeCLI mirrors the donor's ViperCLI (nanostore/cmd/viper_cli.go):
// one cobra root plus one viper instance, so every flag doubles as a
// MODMERGE_-prefixed environment variable and an optional config file
// entry.
type dommergeCLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
}

func newDommergeCLI() *dommergeCLI {
	cli := &dommergeCLI{viperInst: viper.New()}
	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addMergeCommand()
	return cli
}

// setupViperConfig wires environment variables and config-file
// discovery, directly mirroring setupViperConfig in
// nanostore/cmd/viper_cli.go but under the MODMERGE_ prefix and this
// tool's own config file name.
func (cli *dommergeCLI) setupViperConfig() {
	if configFile := os.Getenv("MODMERGE_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("dommerge")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.dommerge")
		cli.viperInst.AddConfigPath("/etc/dommerge")
	}

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("MODMERGE")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	_ = cli.viperInst.ReadInConfig()
}

func (cli *dommergeCLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "dommerge",
		Short: "dommerge merges turn-based strategy game mods into one conflict-free file",
		Long: `dommerge merges multiple mod files into a single mod, detecting
entity-ID collisions in the modding range and relocating the losing
side's IDs (and every cross-reference to them) to fresh values.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (MODMERGE_*)
3. Configuration file (MODMERGE_CONFIG, or ./dommerge.yaml)

Examples:
  dommerge merge --mods a.dm --mods b.dm --output-path ./out
  MODMERGE_CLEAN=true dommerge merge --mods a.dm --mods b.dm --output merged`,
	}
}

func (cli *dommergeCLI) Execute() error {
	return cli.rootCmd.Execute()
}
