package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghogue02/leora-admin-portal-sub016/config"
	"github.com/ghogue02/leora-admin-portal-sub016/service/fulfillment"
)

var sweepLimit int

var sweepCmd = &cobra.Command{
	Use:   "orders:sweep",
	Short: "Expire overdue inventory reservations and release their holds",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		engine := fulfillment.NewEngine(db, fulfillment.NewSinkFromEnv(), fulfillment.Options{
			ClampOverRelease: config.GetEnv("RELEASE_CLAMP", "") == "legacy",
		})
		swept, err := engine.SweepExpiredReservations(sweepLimit)
		if err != nil {
			fmt.Printf("Sweep stopped after %d reservations: %v\n", swept, err)
			return
		}
		fmt.Printf("Swept %d expired reservations\n", swept)
	},
}

func init() {
	sweepCmd.Flags().IntVarP(&sweepLimit, "limit", "l", 100, "Maximum reservations to sweep in one run")
	rootCmd.AddCommand(sweepCmd)
}
