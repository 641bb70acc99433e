package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"projectdash/internal/render"
	"projectdash/pkg/domain"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		prefix string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "check [project]",
		Short: "Check a project's tables and print the issue report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (prefix == "") {
				return fmt.Errorf("give either a project name or --prefix")
			}
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var report domain.Report
			if prefix != "" {
				report, err = svc.CheckLocation(cmd.Context(), domain.TableLocation{Prefix: prefix})
			} else {
				report, err = svc.CheckProject(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return render.NewPrinter(out, a.color(out)).Report(report)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "check the tables under a folder instead of a registered project")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newFacilitiesCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "facilities <project>",
		Short: "List test facilities and their equipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			inv, err := svc.Facilities(cmd.Context(), args[0])
			out := cmd.OutOrStdout()
			if errors.Is(err, domain.ErrMissingData) {
				if asJSON {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), render.MissingFacilitiesHint)
					_, err = fmt.Fprintln(out, "[]")
					return err
				}
				return render.NewPrinter(out, a.color(out)).MissingFacilities()
			}
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(inv)
			}
			return render.NewPrinter(out, a.color(out)).Facilities(inv)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the inventory as JSON")
	return cmd
}
