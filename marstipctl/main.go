package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsys/marstip/hlog"
	"github.com/jsys/marstip/marstipctl/dashboard"
	"github.com/jsys/marstip/marstipctl/device"
	"github.com/jsys/marstip/marstipctl/discover"
	"github.com/jsys/marstip/marstipctl/mode"
	"github.com/jsys/marstip/marstipctl/options"
	"github.com/jsys/marstip/marstipctl/watch"
	"github.com/jsys/marstip/pkg/marstek"
)

var Commit string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marstipctl",
	Short: "Control Marstek Venus batteries over the local network",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		options.Version = Commit
		hlog.InitWithDebug(options.Flags.Verbose, options.Flags.Debug)
		options.Load(hlog.Logger)
		marstek.Init(hlog.Logger, options.Flags.CommandTimeout)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&options.Flags.Debug, "debug", false, "debug output")
	rootCmd.PersistentFlags().BoolVarP(&options.Flags.Json, "json", "j", false, "JSON output instead of YAML")
	rootCmd.PersistentFlags().StringVarP(&options.Flags.Device, "device", "d", "", "IP or hostname of the battery to talk to")
	rootCmd.PersistentFlags().IntVarP(&options.Flags.Port, "port", "p", 0, "UDP port of the battery (default 30000)")
	rootCmd.PersistentFlags().DurationVar(&options.Flags.CommandTimeout, "timeout", marstek.CommandTimeout, "per-command receive timeout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(discover.Cmd)
	rootCmd.AddCommand(dashboard.Cmd)
	rootCmd.AddCommand(mode.Cmd)
	rootCmd.AddCommand(device.Cmd)
	rootCmd.AddCommand(watch.Cmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Commit)
	},
}
