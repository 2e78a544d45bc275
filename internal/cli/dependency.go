package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDepCmd создаёт группу команд для управления зависимостями.
func NewDepCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage step dependencies",
	}

	cmd.AddCommand(newDepAddCmd(clientFn, outputFn))

	return cmd
}

func newDepAddCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "add <workflow> <step> <prerequisite>",
		Short: "Require a step to run after its prerequisite",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			dep, err := client.AddDependency(args[0], args[1], args[2])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Dependency added: %s -> %s", dep.Prerequisite, dep.Step))
			out.Print(
				[]string{"STEP", "PREREQUISITE"},
				[][]string{{dep.Step, dep.Prerequisite}},
				dep,
			)
			return nil
		},
	}
}
