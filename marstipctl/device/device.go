package device

import (
	"github.com/spf13/cobra"

	"github.com/jsys/marstip/hlog"
	"github.com/jsys/marstip/marstipctl/options"
)

var Cmd = &cobra.Command{
	Use:   "device",
	Short: "Show the currently selected battery target",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := options.Manager(hlog.GetLogger("device"))
		return options.PrintResult(m.CurrentDevice())
	},
}
