package dashboard

import (
	"github.com/spf13/cobra"

	"github.com/jsys/marstip/hlog"
	"github.com/jsys/marstip/marstipctl/options"
)

var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Query the selected battery and print a full status snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := hlog.GetLogger("dashboard")
		ctx := options.CommandLineContext(log, 0)
		m := options.Manager(log)
		snapshot, err := m.Dashboard(ctx)
		if err != nil {
			log.Error(err, "Unable to get dashboard")
			return err
		}
		return options.PrintResult(snapshot)
	},
}
