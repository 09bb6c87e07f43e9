package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	proctop "github.com/jondoveston/proctop/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "proctop",
	Short: "Real-time terminal view of the busiest processes",
	Long: `proctop samples the local process table every interval, ranks processes
by CPU usage and shows the top N as a table, a bar chart and a donut chart.

Examples:
  proctop
  proctop --interval 2s --limit 8
  proctop --once
  PROCTOP_LIMIT=10 proctop`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	// Define flags
	rootCmd.Flags().Duration("interval", proctop.UpdateDuration(), "time between samples")
	rootCmd.Flags().Int("limit", proctop.TOP_N, "number of processes to show")
	rootCmd.Flags().Bool("once", false, "print a single sample and exit")
	rootCmd.Flags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.Flags().Bool("metrics", false, "log sampler metrics in Prometheus text format on exit")
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")

	// Bind flags to Viper keys (dashes in flags become underscores in viper)
	viper.BindPFlag("interval", rootCmd.Flags().Lookup("interval"))
	viper.BindPFlag("limit", rootCmd.Flags().Lookup("limit"))
	viper.BindPFlag("once", rootCmd.Flags().Lookup("once"))
	viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log-file"))
	viper.BindPFlag("metrics", rootCmd.Flags().Lookup("metrics"))

	// Configure Viper for environment variables
	viper.SetEnvPrefix("proctop")
	viper.AutomaticEnv()

	proctop.SetDefaults(viper.GetViper())
}

func configDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "proctop"))
	}
	return dirs
}

func run(cmd *cobra.Command, args []string) error {
	// Handle --version flag first
	versionFlag, _ := cmd.Flags().GetBool("version")
	if versionFlag {
		fmt.Printf("proctop version %s\n", version)
		return nil
	}

	if err := proctop.ReadConfigFile(viper.GetViper(), configDirs()...); err != nil {
		return err
	}
	cfg, err := proctop.LoadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	// Set up logging
	log.SetOutput(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}
	log.Printf("Starting proctop %s (interval %s, limit %d)", version, cfg.Interval, cfg.Limit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := proctop.NewMetrics()
	sampler := proctop.NewSampler(proctop.NewPsutilSource(), metrics)
	if cfg.Metrics {
		defer func() {
			if err := metrics.WriteText(log.Writer()); err != nil {
				log.Printf("Failed to write metrics: %v", err)
			}
		}()
	}

	// Without a terminal there is nothing to draw on, print one sample instead
	if cfg.Once || !term.IsTerminal(int(os.Stdout.Fd())) {
		// CPU usage is measured between two reads, the first one only primes it
		if _, err := sampler.TopProcesses(ctx, cfg.Limit); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(cfg.Interval):
		}
		samples, err := sampler.TopProcesses(ctx, cfg.Limit)
		if err != nil {
			return err
		}
		return proctop.NewSnapshot().Write(os.Stdout, samples)
	}

	// termui owns the screen from here, stderr output would corrupt it
	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
	}

	renderer := proctop.NewRenderer(cfg.Limit)
	monitor := proctop.NewMonitor(sampler, renderer, metrics, cfg.Limit)
	err = proctop.Dashboard(ctx, cfg.Interval, monitor)

	if cfg.LogFile == "" {
		log.SetOutput(os.Stderr)
	}
	return err
}
