package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"projectdash/internal/render"
	"projectdash/pkg/domain"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the project registry",
	}
	cmd.AddCommand(newProjectsListCmd(a), newProjectsAddCmd(a), newProjectsRemoveCmd(a))
	return cmd
}

func newProjectsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			projects, err := svc.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return render.NewPrinter(out, a.color(out)).Projects(projects)
		},
	}
}

func newProjectsAddCmd(a *app) *cobra.Command {
	var (
		folder string
		views  []string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register or update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			p := domain.Project{Name: args[0], Folder: folder}
			for _, v := range views {
				p.Views = append(p.Views, domain.View(v))
			}
			saved, err := svc.SaveProject(cmd.Context(), p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %s (tables in %s)\n", saved.Name, saved.Location().Prefix)
			return err
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "table folder (defaults to the project name)")
	cmd.Flags().StringSliceVar(&views, "view", nil, "dashboard view to enable (repeatable, defaults to all)")
	return cmd
}

func newProjectsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a project from the registry, keeping its tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			ok, err := svc.DeleteProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return err
		},
	}
}

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage project tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "upload <project> <dataset> <file>",
		Short: "Replace a project's TestStrategy or TestFacilities table with a CSV file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[2])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			info, err := svc.UploadTable(cmd.Context(), args[0], args[1], f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d bytes)\n", info.Key, info.Size)
			return err
		},
	})
	return cmd
}
