package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/student-records/internal/client"
	"github.com/aanand-mishra/student-records/internal/types"
)

const defaultServer = "http://localhost:8082/api"

func newStudentCommand() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage students on a running server",
	}
	cmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "API base URL (including the API prefix)")

	session := func() *client.Session {
		return client.NewSession(client.New(serverURL))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session()
			if err := s.Refresh(cmd.Context()); err != nil {
				return err
			}
			return printStudents(cmd.OutOrStdout(), s.Students())
		},
	})

	var name, email string

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session()
			s.Add()
			if err := s.Submit(cmd.Context(), client.Form{Name: name, Email: email}); err != nil {
				return err
			}
			printNotice(cmd.OutOrStdout(), s)
			return printStudents(cmd.OutOrStdout(), s.Students())
		},
	}
	add.Flags().StringVar(&name, "name", "", "Full name")
	add.Flags().StringVar(&email, "email", "", "Email address")

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a student; flags not given keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: must be an integer", args[0])
			}

			var patch types.StudentPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}

			updated, err := client.New(serverURL).Patch(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return printStudents(cmd.OutOrStdout(), []types.Student{updated})
		},
	}
	edit.Flags().StringVar(&name, "name", "", "Full name")
	edit.Flags().StringVar(&email, "email", "", "Email address")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: must be an integer", args[0])
			}
			msg, err := client.New(serverURL).Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.AddCommand(add, edit, del)
	return cmd
}

func printStudents(w io.Writer, students []types.Student) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.Name, s.Email)
	}
	return tw.Flush()
}

func printNotice(w io.Writer, s *client.Session) {
	if n, ok := s.LastNotice(); ok {
		fmt.Fprintln(w, n.Text)
	}
}
