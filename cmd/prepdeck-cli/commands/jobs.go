package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func jobsCmd(a *app) *cobra.Command {
	cmd := signedInGroup(a, "jobs", "Manage tracked job postings")
	cmd.AddCommand(jobsListCmd(a), jobsGetCmd(a), jobsCreateCmd(a), jobsDeleteCmd(a))
	return cmd
}

func jobsListCmd(a *app) *cobra.Command {
	var opts model.JobListOptions
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Status = model.JobStatus(strings.TrimSpace(status))
			jobs, err := a.svc.Jobs.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), jobs, func(w io.Writer) error {
				if len(jobs) == 0 {
					return writeln(w, "No jobs yet.")
				}
				tw := newTable(w)
				_ = writeln(tw, "ID\tTITLE\tCOMPANY\tSTATUS\tADDED")
				for _, j := range jobs {
					created := j.CreatedAt
					_ = writef(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, orDash(j.Company), j.Status, formatDate(&created))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum jobs to list")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "jobs to skip")
	return cmd
}

func jobsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := a.svc.Jobs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), j, func(w io.Writer) error {
				if err := writef(w, "%s at %s\nstatus:   %s\nlocation: %s\nurl:      %s\n",
					j.Title, orDash(j.Company), j.Status, orDash(j.Location), orDash(j.URL)); err != nil {
					return err
				}
				for _, r := range j.Requirements {
					if err := writef(w, "  - %s\n", r); err != nil {
						return err
					}
				}
				if j.Description != "" {
					return writef(w, "\n%s\n", j.Description)
				}
				return nil
			})
		},
	}
}

func jobsCreateCmd(a *app) *cobra.Command {
	var req model.CreateJobRequest
	var status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Track a new job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Status = model.JobStatus(strings.TrimSpace(status))
			j, err := a.svc.Jobs.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), j, func(w io.Writer) error {
				return writef(w, "Created job %s\n", j.ID)
			})
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "job title")
	cmd.Flags().StringVar(&req.Company, "company", "", "company")
	cmd.Flags().StringVar(&req.Location, "location", "", "location")
	cmd.Flags().StringVar(&req.URL, "url", "", "posting URL")
	cmd.Flags().StringVar(&req.Description, "description", "", "posting text")
	cmd.Flags().StringSliceVar(&req.Requirements, "requirement", nil, "requirement (repeatable)")
	cmd.Flags().StringVar(&status, "status", "", "initial status")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func jobsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Jobs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writef(printer(cmd), "Deleted job %s\n", args[0])
		},
	}
}
