package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowbase/ordsched"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print a QueueScheduler's schema as JSON",
	Long:  `Builds a small QueueScheduler, attaches a few workers, and prints its Schema() as indented JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sched := ordsched.New[int, int](ordsched.NewIdentity("schema-demo", "scheduler used to illustrate Schema()"))
		defer sched.Close()

		factory := ordsched.NewWorkerFactory(func(id int) (ordsched.Worker[int, int], error) {
			return doublingWorker{}, nil
		})
		if err := sched.AddWorkers(context.Background(), factory, 3); err != nil {
			return err
		}

		out, err := json.MarshalIndent(sched.Schema(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
