package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/flowbase/ordsched"
)

var (
	demoScenario string

	demoCmd = &cobra.Command{
		Use:   "demo [scenario]",
		Short: "Run QueueScheduler demonstrations",
		Long: `Run demonstrations of the QueueScheduler against a couple of small,
illustrative sessions.

Available scenarios:
  doubling    1 worker doubling a short list of integers
  stringify   3 workers stringifying a counted stream of integers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := demoScenario
			if len(args) > 0 {
				scenario = args[0]
			}
			switch scenario {
			case "", "doubling":
				return runDoublingDemo()
			case "stringify":
				return runStringifyDemo()
			default:
				return fmt.Errorf("unknown scenario %q", scenario)
			}
		},
	}
)

func init() {
	demoCmd.Flags().StringVar(&demoScenario, "scenario", "", "scenario to run (doubling, stringify)")
}

func runDoublingDemo() error {
	ctx := context.Background()
	sched := ordsched.New[int, int](ordsched.NewIdentity("doubling-demo", "doubles a short stream of integers"))
	defer sched.Close()

	factory := ordsched.NewWorkerFactory(func(id int) (ordsched.Worker[int, int], error) {
		return doublingWorker{}, nil
	})
	if err := sched.AddWorkers(ctx, factory, 1); err != nil {
		return err
	}

	inputs := []int{0, 1, 2, 3, 4, 5}
	i := 0
	gen := func(context.Context) (int, error) {
		if i >= len(inputs) {
			return 0, ordsched.ErrGeneratorExhausted
		}
		v := inputs[i]
		i++
		return v, nil
	}

	if err := sched.Launch(ctx, gen); err != nil {
		return err
	}

	fmt.Println("doubling demo: 1 worker, inputs 0..5")
	for {
		v, err, ok := sched.Pop(ctx)
		if !ok {
			fmt.Println("-- session drained --")
			return err
		}
		if err != nil {
			fmt.Printf("item failed: %v\n", err)
			continue
		}
		fmt.Printf("  -> %d\n", v)
	}
}

type doublingWorker struct{}

func (doublingWorker) Process(_ context.Context, in int) (int, error) {
	return in * 2, nil
}

func runStringifyDemo() error {
	ctx := context.Background()
	sched := ordsched.New[int, string](ordsched.NewIdentity("stringify-demo", "stringifies a counted stream of integers"))
	defer sched.Close()

	factory := ordsched.NewWorkerFactory(func(id int) (ordsched.Worker[int, string], error) {
		return stringifyWorker{}, nil
	})
	if err := sched.AddWorkers(ctx, factory, 3); err != nil {
		return err
	}

	const n = 30
	next := 0
	gen := func(context.Context) (int, error) {
		if next >= n {
			return 0, ordsched.ErrGeneratorExhausted
		}
		v := next
		next++
		return v, nil
	}

	if err := sched.Launch(ctx, gen); err != nil {
		return err
	}

	fmt.Printf("stringify demo: 3 workers, inputs 0..%d\n", n-1)
	for {
		v, err, ok := sched.Pop(ctx)
		if !ok {
			fmt.Println("-- session drained --")
			return err
		}
		if err != nil {
			fmt.Printf("item failed: %v\n", err)
			continue
		}
		fmt.Printf("  -> %s\n", v)
	}
}

type stringifyWorker struct{}

func (stringifyWorker) Process(_ context.Context, in int) (string, error) {
	return strconv.Itoa(in), nil
}
