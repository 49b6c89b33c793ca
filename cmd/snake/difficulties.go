package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var difficultiesCmd = &cobra.Command{
	Use:     "difficulties",
	Aliases: []string{"list"},
	Short:   "List difficulty profiles",
	Long: `Shows the speed curve of every difficulty in the loaded configuration.

With --defaults the built-in configuration is printed as YAML instead, ready
to be saved as ~/.snake/configs/snake.yaml and edited.`,
	Args: cobra.NoArgs,
	RunE: runDifficulties,
}

var flagPrintDefaults bool

func init() {
	difficultiesCmd.Flags().BoolVar(&flagPrintDefaults, "defaults", false, "Print the built-in configuration as YAML")
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	if flagPrintDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}

	fmt.Printf("Board: %dx%d\n", cfg.Grid.Size, cfg.Grid.Size)
	fmt.Println()

	fmt.Printf("  %-8s  %-9s  %-9s  %-9s\n", "Name", "Start", "Per food", "Fastest")
	fmt.Printf("  %-8s  %-9s  %-9s  %-9s\n", "----", "-----", "--------", "-------")

	for _, d := range config.Difficulties() {
		p := cfg.Difficulty.Profiles[d]
		name := string(d)
		if d == cfg.Difficulty.Default {
			name += "*"
		}
		fmt.Printf("  %-8s  %-9v  %-9s  %-9v\n",
			name,
			p.InitialInterval(),
			fmt.Sprintf("-%dms", p.SpeedDecreasePerFood),
			p.MinInterval(),
		)
	}

	fmt.Println()
	fmt.Println("* default. Run 'snake play --difficulty <name>' to pick one.")
	return nil
}
