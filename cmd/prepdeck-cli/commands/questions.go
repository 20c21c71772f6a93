package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func questionsCmd(a *app) *cobra.Command {
	cmd := signedInGroup(a, "questions", "Generate and browse interview questions")
	cmd.AddCommand(questionsGenerateCmd(a), questionsListCmd(a), questionsBankCmd(a))
	return cmd
}

func writeQuestions(w io.Writer, qs []model.Question) error {
	if len(qs) == 0 {
		return writeln(w, "No questions.")
	}
	for i, q := range qs {
		n := q.Order
		if n == 0 {
			n = i + 1
		}
		if err := writef(w, "%2d. %s\n", n, q.Text); err != nil {
			return err
		}
		if q.Category != "" || q.Difficulty != "" {
			if err := writef(w, "    [%s %s]\n", orDash(q.Category), orDash(string(q.Difficulty))); err != nil {
				return err
			}
		}
	}
	return nil
}

func questionsGenerateCmd(a *app) *cobra.Command {
	var req model.GenerateQuestionsRequest
	var kind, difficulty string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions for an interview, job or resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Type = model.InterviewType(kind)
			req.Difficulty = model.Difficulty(difficulty)
			qs, err := a.svc.Questions.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), qs, func(w io.Writer) error { return writeQuestions(w, qs) })
		},
	}
	cmd.Flags().StringVar(&req.InterviewID, "interview", "", "interview id")
	cmd.Flags().StringVar(&req.JobID, "job", "", "job id")
	cmd.Flags().StringVar(&req.ResumeID, "resume", "", "resume id")
	cmd.Flags().StringVar(&kind, "type", "", "behavioral, technical or mixed")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard")
	cmd.Flags().IntVar(&req.Count, "count", 5, "number of questions")
	return cmd
}

func questionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <interview-id>",
		Short: "List an interview's questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := a.svc.Questions.ListForInterview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), qs, func(w io.Writer) error { return writeQuestions(w, qs) })
		},
	}
}

func questionsBankCmd(a *app) *cobra.Command {
	var category string
	var limit int
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Browse the shared question bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qs, err := a.svc.Questions.Bank(cmd.Context(), category, limit)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), qs, func(w io.Writer) error { return writeQuestions(w, qs) })
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum questions")
	return cmd
}
