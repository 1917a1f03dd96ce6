package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoflows/avaflow/config"
	"github.com/geoflows/avaflow/driver"
	"github.com/geoflows/avaflow/logging"
	"github.com/geoflows/avaflow/solver"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a mass-flow simulation to its time or step cap",
	Long: `Run advances a built-in test bed under the configured rheology
until the time cap, step cap, or a divergence is reached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioName, _ := cmd.Flags().GetString("scenario")
		cfgFile, _ := cmd.Flags().GetString("params")

		sc, err := lookupScenario(scenarioName)
		if err != nil {
			return err
		}

		rc := config.Default()
		if cfgFile != "" {
			data, err := readFile(cfgFile)
			if err != nil {
				return err
			}
			if err := rc.Parse(data); err != nil {
				return fmt.Errorf("run: parsing %s: %w", cfgFile, err)
			}
		}
		if err := rc.Validate(); err != nil {
			return err
		}

		log := logging.Default()
		rc.Print()

		bed, h0 := sc.build()
		s, err := solver.New(bed, h0, rc.Dx, rc.Dy, rc.SolverParams())
		if err != nil {
			return err
		}

		hist := &driver.History{}
		steps, t, err := driver.Run(context.Background(), s, rc.DriverConfig(), hist)
		if err != nil {
			log.Warnf("run stopped early after %d steps at t=%.4f: %v", steps, t, err)
			return err
		}
		log.Infof("scenario %q: %d steps, t=%.4f, mass=%.6f, recorded %d snapshots",
			sc.name, steps, t, s.H.Sum()*rc.Dx*rc.Dy, len(hist.Snapshots))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("scenario", "s", "flat", "built-in scenario to run (flat, incline, bowl)")
	runCmd.Flags().StringP("params", "p", "", "YAML file of run parameters overriding the defaults")
}
