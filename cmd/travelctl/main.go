// travelctl works on the local TravelPro data from a terminal: backups,
// reports and the deadline views.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/Domenick1991/travelpro/config"
	"github.com/Domenick1991/travelpro/internal/bootstrap"
	"github.com/Domenick1991/travelpro/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type env struct {
	ctx   context.Context
	cfg   *config.Config
	store *store.Store
	out   io.Writer
	now   func() time.Time
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"export":   {"write a full JSON backup", runExport},
	"import":   {"restore a JSON backup", runImport},
	"report":   {"export the booking report", runReport},
	"urgent":   {"list bookings whose ticketing deadline is close", runUrgent},
	"calendar": {"list upcoming travel dates and deadlines", runCalendar},
	"summary":  {"print the dashboard counters", runSummary},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	var cfgPath string
	flagSet := pflag.NewFlagSet("travelctl", pflag.ContinueOnError)
	flagSet.StringVarP(&cfgPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	flagSet.SetInterspersed(false)
	flagSet.Usage = func() { printHelp(flagSet) }
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(flagSet)
		return nil
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeStorage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	st, err := store.Open(ctx, kv)
	if err != nil {
		return err
	}

	return cmd.run(&env{ctx: ctx, cfg: cfg, store: st, out: os.Stdout, now: time.Now}, rest[1:])
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: travelctl [--config file] <command> [flags]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n%s", flagSet.FlagUsages())
}
