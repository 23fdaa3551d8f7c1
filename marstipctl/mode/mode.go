package mode

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsys/marstip/hlog"
	"github.com/jsys/marstip/marstipctl/options"
	"github.com/jsys/marstip/pkg/marstek/es"
)

var Cmd = &cobra.Command{
	Use:   "mode",
	Short: "Read or change the battery operating mode",
}

var configFlag string

func init() {
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
	setCmd.Flags().StringVarP(&configFlag, "config", "c", "", "mode config as JSON, or @file (required for Manual and Passive)")
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active operating mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := hlog.GetLogger("mode")
		ctx := options.CommandLineContext(log, 0)
		m := options.Manager(log)
		status, err := m.GetMode(ctx)
		if err != nil {
			log.Error(err, "Unable to get mode")
			return err
		}
		return options.PrintResult(status)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <Auto|AI|Manual|Passive>",
	Short: "Switch the battery to the given operating mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := hlog.GetLogger("mode")

		cfg, err := loadConfig(configFlag)
		if err != nil {
			log.Error(err, "Invalid mode config", "config", configFlag)
			return err
		}

		ctx := options.CommandLineContext(log, 0)
		m := options.Manager(log)
		ok, err := m.SetMode(ctx, es.Mode(args[0]), cfg)
		if err != nil {
			log.Error(err, "Unable to set mode", "mode", args[0])
			return err
		}
		return options.PrintResult(map[string]bool{"set_result": ok})
	},
}

func loadConfig(flag string) (*es.ModeConfig, error) {
	if flag == "" {
		return nil, nil
	}
	raw := []byte(flag)
	if strings.HasPrefix(flag, "@") {
		var err error
		raw, err = os.ReadFile(strings.TrimPrefix(flag, "@"))
		if err != nil {
			return nil, err
		}
	}
	var cfg es.ModeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
