package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStepCmd создаёт группу команд для управления шагами.
func NewStepCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Manage workflow steps",
	}

	cmd.AddCommand(
		newStepListCmd(clientFn, outputFn),
		newStepAddCmd(clientFn, outputFn),
	)

	return cmd
}

func newStepListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list <workflow>",
		Short: "List workflow steps in creation order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			steps, err := client.ListSteps(args[0])
			if err != nil {
				return err
			}

			headers := []string{"SLUG", "DESCRIPTION", "CREATED"}
			rows := make([][]string, len(steps))
			for i, s := range steps {
				rows[i] = []string{s.Slug, s.Description, s.CreatedAt}
			}

			out.Print(headers, rows, steps)
			return nil
		},
	}
}

func newStepAddCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <workflow> <slug>",
		Short: "Add a step to a workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			step, err := client.AddStep(args[0], args[1], description)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Step added: %s", step.Slug))
			out.Print(
				[]string{"SLUG", "DESCRIPTION", "CREATED"},
				[][]string{{step.Slug, step.Description, step.CreatedAt}},
				step,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Step description")

	return cmd
}
