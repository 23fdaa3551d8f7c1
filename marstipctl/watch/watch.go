package watch

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsys/marstip/hlog"
	"github.com/jsys/marstip/internal/global"
	"github.com/jsys/marstip/marstipctl/options"
	"github.com/jsys/marstip/mymqtt"
)

var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the dashboard periodically, printing it or publishing it over MQTT",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := hlog.GetLogger("watch")
		ctx := options.CommandLineContext(log, 0)
		m := options.Manager(log)
		log.V(1).Info("Watching", "version", global.Version(ctx), "interval", options.Flags.Interval)

		var mc *mymqtt.Client
		if options.Flags.Broker != "" {
			var err error
			mc, err = mymqtt.NewClientE(log, options.Flags.Broker)
			if err != nil {
				return err
			}
			defer mc.Close()
		}

		topic := options.Flags.Topic
		if topic == "" {
			topic = "marstip/dashboard"
		}

		ticker := time.NewTicker(options.Flags.Interval)
		defer ticker.Stop()

		for {
			snapshot, err := m.Dashboard(ctx)
			if err != nil {
				hlog.ErrorIfNotCanceled(log, err, "Unable to get dashboard")
			} else if mc != nil {
				msg, err := json.Marshal(snapshot)
				if err == nil {
					err = mc.Publish(topic, msg)
				}
				hlog.ErrorIfNotCanceled(log, err, "Unable to publish dashboard", "topic", topic)
			} else {
				if err := options.PrintResult(snapshot); err != nil {
					return err
				}
			}

			select {
			case <-ctx.Done():
				log.V(1).Info("Watch stopped")
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	Cmd.Flags().DurationVarP(&options.Flags.Interval, "interval", "i", 10*time.Second, "polling interval")
	Cmd.Flags().StringVarP(&options.Flags.Broker, "broker", "b", "", "MQTT broker (host or host:port) to publish snapshots to")
	Cmd.Flags().StringVarP(&options.Flags.Topic, "topic", "t", "", "MQTT topic for snapshots (default marstip/dashboard)")
}
