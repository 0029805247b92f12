package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/shapedrop/internal/config"
)

var (
	flagConfigPath  string
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write or print the configuration",
	Long: `Manage the ShapeDrop configuration file.

The config is looked up in this order: --config, ~/.shapedrop/configs/shapedrop.yaml,
./configs/shapedrop.yaml, then the built-in defaults. A file only needs the keys
it overrides.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the built-in defaults to a YAML file for editing.

Examples:
  shapedrop config init
  shapedrop config init --path ./configs/shapedrop.yaml --force`,
	Args: cobra.NoArgs,
	Run:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run:   runConfigShow,
}

func init() {
	configInitCmd.Flags().StringVar(&flagConfigPath, "path", "", "Destination (default: ~/.shapedrop/configs/shapedrop.yaml)")
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path := flagConfigPath
	if path == "" {
		path = config.UserConfigPath()
	}
	if path == "" {
		fail("cannot determine home directory, use --path")
	}
	if err := config.WriteDefault(path, flagConfigForce); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
