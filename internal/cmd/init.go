package cmd

import (
	"fmt"
	"os"

	"github.com/MeKo-Tech/frostdune/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default project and the built-in palettes",
	Long: `Write the built-in frost project to a JSON file, along with the
shipped palettes, as a starting point for editing.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("project-out", "project.json", "Path for the project file")
	initCmd.Flags().String("palettes-out", "palettes.json", "Path for the palettes file")
	initCmd.Flags().Bool("force", false, "Overwrite existing files")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, initCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("init.project_out", "project-out")
	mustBind("init.palettes_out", "palettes-out")
	mustBind("init.force", "force")
}

func runInit(cmd *cobra.Command, args []string) error {
	projectOut := viper.GetString("init.project_out")
	palettesOut := viper.GetString("init.palettes_out")
	force := viper.GetBool("init.force")

	if logger == nil {
		initLogging()
	}

	if !force {
		for _, path := range []string{projectOut, palettesOut} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	if err := config.DefaultProject().Save(projectOut); err != nil {
		return err
	}
	if err := config.SavePalettes(config.BuiltinPalettes(), palettesOut); err != nil {
		return err
	}

	logger.Info("Project scaffold written", "project", projectOut, "palettes", palettesOut)
	return nil
}
