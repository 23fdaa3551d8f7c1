package discover

import (
	"github.com/spf13/cobra"

	"github.com/jsys/marstip/hlog"
	"github.com/jsys/marstip/marstipctl/options"
)

var Cmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan the local network for Marstek batteries",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := hlog.GetLogger("discover")
		ctx := options.CommandLineContext(log, 0)
		m := options.Manager(log)
		devices, err := m.Discover(ctx)
		if err != nil {
			log.Error(err, "Discovery failed")
			return err
		}
		return options.PrintResult(devices)
	},
}
