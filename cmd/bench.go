package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/geoflows/avaflow/config"
	"github.com/geoflows/avaflow/driver"
	"github.com/geoflows/avaflow/solver"
)

// benchCmd runs every built-in scenario back to back and reports
// steps-per-second, the way the reference stack's model Run methods print
// a final timing line after Solve returns.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run every built-in scenario and report throughput",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cpuprofile, _ := cmd.Flags().GetBool("cpuprofile"); cpuprofile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		rc := config.Default()
		rc.MaxTime = 5
		rc.OutputEvery = 0

		for name, sc := range scenarios {
			bed, h0 := sc.build()
			s, err := solver.New(bed, h0, rc.Dx, rc.Dy, rc.SolverParams())
			if err != nil {
				return err
			}
			start := time.Now()
			steps, t, err := driver.Run(context.Background(), s, rc.DriverConfig(), nil)
			elapsed := time.Since(start)
			if err != nil {
				return fmt.Errorf("bench: scenario %q: %w", name, err)
			}
			rate := float64(steps) / elapsed.Seconds()
			fmt.Printf("%-10s steps=%-6d t=%-8.4f elapsed=%-10s rate=%.1f steps/s\n",
				name, steps, t, elapsed, rate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Bool("cpuprofile", false, "write a CPU profile of the benchmark run")
}
