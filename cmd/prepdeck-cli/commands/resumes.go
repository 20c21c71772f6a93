package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/service"
)

func resumesCmd(a *app) *cobra.Command {
	cmd := signedInGroup(a, "resumes", "Manage uploaded resumes")
	cmd.AddCommand(resumesListCmd(a), resumesUploadCmd(a), resumesDeleteCmd(a), resumesPrimaryCmd(a))
	return cmd
}

func resumesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resumes, err := a.svc.Resumes.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), resumes, func(w io.Writer) error {
				if len(resumes) == 0 {
					return writeln(w, "No resumes yet.")
				}
				tw := newTable(w)
				_ = writeln(tw, "ID\tFILE\tPARSE\tPRIMARY\tUPLOADED")
				for _, r := range resumes {
					primary := ""
					if r.IsPrimary {
						primary = "yes"
					}
					created := r.CreatedAt
					_ = writef(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.FileName, orDash(string(r.ParseStatus)), primary, formatDate(&created))
				}
				return tw.Flush()
			})
		},
	}
}

func resumesUploadCmd(a *app) *cobra.Command {
	var contentType string
	var primary bool
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a PDF, Word or text resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}
			if limit := a.cfg.Backend.MaxUploadBytes; limit > 0 && info.Size() > limit {
				return fmt.Errorf("%s is %d bytes; the limit is %d", filepath.Base(args[0]), info.Size(), limit)
			}

			r, err := a.svc.Resumes.Upload(cmd.Context(), service.ResumeFile{
				FileName:    filepath.Base(args[0]),
				ContentType: contentType,
				Content:     f,
			})
			if err != nil {
				return err
			}
			if primary && !r.IsPrimary {
				if r, err = a.svc.Resumes.SetPrimary(cmd.Context(), r.ID); err != nil {
					return err
				}
			}
			return a.emit(printer(cmd), r, func(w io.Writer) error {
				return writef(w, "Uploaded %s as %s\n", r.FileName, r.ID)
			})
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")
	cmd.Flags().BoolVar(&primary, "primary", false, "make it the primary resume")
	return cmd
}

func resumesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Resumes.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writef(printer(cmd), "Deleted resume %s\n", args[0])
		},
	}
}

func resumesPrimaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "primary <id>",
		Short: "Make a resume the default for new interviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.svc.Resumes.SetPrimary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), r, func(w io.Writer) error {
				return writef(w, "%s is now your primary resume\n", r.FileName)
			})
		},
	}
}
