package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/pumpflow/config"
	"github.com/kilianp07/pumpflow/core/schedule"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and report the model size without solving",
	RunE:  validate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sc := cfg.Scenario
	m, _ := schedule.BuildModel(sc)
	fmt.Printf("scenario: %d pumps, %d slots\n", sc.NumPumps(), sc.NumSlots())
	fmt.Printf("model: %d variables (%d decision, %d slack)\n",
		m.NumVariables(), sc.NumPumps()*sc.NumSlots(), m.NumVariables()-sc.NumPumps()*sc.NumSlots())
	fmt.Printf("solver backend: %s\n", cfg.Solver.Backend)
	return nil
}
