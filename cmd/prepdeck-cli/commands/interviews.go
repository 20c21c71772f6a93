package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func interviewsCmd(a *app) *cobra.Command {
	cmd := signedInGroup(a, "interviews", "Manage practice interviews")
	cmd.AddCommand(interviewsListCmd(a), interviewsCreateCmd(a), interviewTransitionCmd(a, "start", "Begin an interview"), interviewTransitionCmd(a, "complete", "Finish an interview"))
	return cmd
}

func interviewsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List interviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.svc.Interviews.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), list, func(w io.Writer) error {
				if len(list) == 0 {
					return writeln(w, "No interviews yet.")
				}
				tw := newTable(w)
				_ = writeln(tw, "ID\tTITLE\tTYPE\tSTATUS\tPROGRESS")
				for _, iv := range list {
					_ = writef(tw, "%s\t%s\t%s\t%s\t%d/%d\n", iv.ID, orDash(iv.Title), iv.Type, iv.Status, iv.CurrentQuestion, iv.QuestionCount)
				}
				return tw.Flush()
			})
		},
	}
}

func interviewsCreateCmd(a *app) *cobra.Command {
	var req model.CreateInterviewRequest
	var kind, difficulty string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Set up a practice interview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Type = model.InterviewType(kind)
			req.Difficulty = model.Difficulty(difficulty)
			iv, err := a.svc.Interviews.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), iv, func(w io.Writer) error {
				return writef(w, "Created interview %s (%d questions)\n", iv.ID, iv.QuestionCount)
			})
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "title")
	cmd.Flags().StringVar(&req.JobID, "job", "", "job id to tailor questions to")
	cmd.Flags().StringVar(&req.ResumeID, "resume", "", "resume id")
	cmd.Flags().StringVar(&kind, "type", string(model.InterviewMixed), "behavioral, technical or mixed")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(model.DifficultyMedium), "easy, medium or hard")
	cmd.Flags().IntVar(&req.QuestionCount, "questions", 5, "number of questions")
	return cmd
}

func interviewTransitionCmd(a *app, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transition := a.svc.Interviews.Start
			if verb == "complete" {
				transition = a.svc.Interviews.Complete
			}
			iv, err := transition(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), iv, func(w io.Writer) error {
				return writef(w, "Interview %s is %s\n", iv.ID, iv.Status)
			})
		},
	}
}
