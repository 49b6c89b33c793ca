// snake is a terminal snake game.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake scores [level]     - Show high scores and best runs
//	snake difficulties       - List the difficulty profiles
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>        - Game config YAML (grid size, difficulty profiles)
//	--db <path>            - Scores database (default: ~/.snake/scores.db)
//	--scores-file <path>   - Keep high scores in a JSON file instead of the database
//	--log-level <level>    - debug, info, warn, error
//	--log-file <path>      - Write logs to a file (the game screen hides stderr)
//
// A .env file in the working directory is loaded first; SNAKE_DB,
// SNAKE_LOG_LEVEL and SNAKE_DIFFICULTY provide defaults for the matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagScoresFile string
	flagLogLevel   string
	flagLogFile    string
)

// envFlags maps environment variables to the flags they default.
var envFlags = map[string]string{
	"SNAKE_DB":         "db",
	"SNAKE_LOG_LEVEL":  "log-level",
	"SNAKE_DIFFICULTY": "difficulty",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake is the classic grid game: steer the snake to the food, grow,
and avoid the walls and your own tail. Every food is worth 10 points and
makes the snake a little faster, down to the difficulty's top speed.

Available commands:
  play          - Play in this terminal
  scores        - View high scores and best runs
  difficulties  - List difficulty profiles
  serve         - Start SSH server for remote play

Examples:
  snake play
  snake play --difficulty hard
  snake scores medium
  snake serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		applyEnv(cmd)
	},
}

// applyEnv loads .env and fills flags the user did not set from the environment.
func applyEnv(cmd *cobra.Command) {
	_ = godotenv.Load()

	flags := cmd.Flags()
	for env, name := range envFlags {
		v := os.Getenv(env)
		if v == "" || flags.Lookup(name) == nil || flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring %s=%q: %v\n", env, v, err)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagScoresFile, "scores-file", "", "Keep high scores in this JSON file instead of the database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(difficultiesCmd)
	rootCmd.AddCommand(serveCmd)
}
