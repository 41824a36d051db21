package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:     "ordsched",
		Short:   "Order-preserving parallel job scheduler demos",
		Long:    `ordsched is a CLI for exploring the QueueScheduler: a bounded, order-preserving parallel job scheduler with a reusable worker pool.`,
		Version: version,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(schemaCmd)
}
