package options

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/jsys/marstip/internal/global"
	"github.com/jsys/marstip/pkg/marstek"
)

// Version is the build identifier stamped by the linker, stashed in
// every command context under global.VersionKey.
var Version string

var Flags struct {
	Verbose        bool
	Debug          bool
	Json           bool
	Device         string
	Port           int
	Broker         string
	Topic          string
	Interval       time.Duration
	CommandTimeout time.Duration
}

// Load fills in flags the user did not set from MARSTIP_* environment
// variables and an optional ~/.marstipctl.yaml.
func Load(log logr.Logger) {
	v := viper.New()
	v.SetEnvPrefix("MARSTIP")
	v.AutomaticEnv()
	v.SetConfigName(".marstipctl")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err == nil {
		log.V(1).Info("Loaded configuration", "file", v.ConfigFileUsed())
	}

	if Flags.Device == "" {
		Flags.Device = v.GetString("device")
	}
	if Flags.Port == 0 {
		Flags.Port = v.GetInt("port")
	}
	if Flags.Broker == "" {
		Flags.Broker = v.GetString("broker")
	}
	if Flags.Topic == "" {
		Flags.Topic = v.GetString("topic")
	}
}

// Manager builds the device manager for one command invocation, with
// the target selected from flags/environment when one was given.
func Manager(log logr.Logger) *marstek.Manager {
	m := marstek.NewManager(log)
	if Flags.Device != "" {
		m.SelectDevice(Flags.Device, Flags.Port)
	}
	return m
}

func CommandLineContext(log logr.Logger, timeout time.Duration) context.Context {
	ctx := logr.NewContext(context.Background(), log)
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	ctx = context.WithValue(ctx, global.CancelKey, cancel)
	ctx = context.WithValue(ctx, global.VersionKey, Version)
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		signal.Notify(signals, syscall.SIGTERM)
		<-signals
		log.Info("Received signal")
		cancel()
	}()
	return ctx
}

func PrintResult(out any) error {
	if Flags.Json {
		s, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(s))
	} else {
		s, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(s))
	}
	return nil
}
