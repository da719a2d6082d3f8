// Command students-api runs the student records server and offers a small
// command-line client for it.
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api serve --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api serve
//
// TALKING TO A RUNNING SERVER:
//
//	go run ./cmd/students-api student list
//	go run ./cmd/students-api student add --name Carol --email carol@example.com
//	go run ./cmd/students-api student edit 3 --email carol@school.edu
//	go run ./cmd/students-api student delete 3
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "students-api",
		Short:         "Student records server and client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newStudentCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "students-api %s\n", version)
		},
	}
}
