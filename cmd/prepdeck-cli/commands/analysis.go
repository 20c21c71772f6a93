package commands

import (
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func analysisCmd(a *app) *cobra.Command {
	cmd := signedInGroup(a, "analysis", "Score interviews and match resumes")
	cmd.AddCommand(analysisRunCmd(a), analysisGetCmd(a), analysisFeedbackCmd(a), analysisMatchCmd(a))
	return cmd
}

func writeAnalysis(w io.Writer, res *model.AnalysisResult) error {
	if err := writef(w, "overall: %.1f\n", res.OverallScore); err != nil {
		return err
	}
	keys := make([]string, 0, len(res.Scores))
	for k := range res.Scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writef(w, "  %-16s %.1f\n", k, res.Scores[k]); err != nil {
			return err
		}
	}
	if res.Summary != "" {
		if err := writef(w, "\n%s\n", res.Summary); err != nil {
			return err
		}
	}
	if err := writeList(w, "Strengths", res.Strengths); err != nil {
		return err
	}
	return writeList(w, "To improve", res.Improvements)
}

func writeList(w io.Writer, title string, items []string) error {
	if len(items) == 0 {
		return nil
	}
	if err := writef(w, "\n%s:\n", title); err != nil {
		return err
	}
	for _, it := range items {
		if err := writef(w, "  - %s\n", it); err != nil {
			return err
		}
	}
	return nil
}

func analysisRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <interview-id>",
		Short: "Analyze a completed interview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Analysis.AnalyzeInterview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), res, func(w io.Writer) error { return writeAnalysis(w, res) })
		},
	}
}

func analysisGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <interview-id>",
		Short: "Show an existing analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.svc.Analysis.GetInterviewAnalysis(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), res, func(w io.Writer) error { return writeAnalysis(w, res) })
		},
	}
}

func analysisFeedbackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback <answer-id>",
		Short: "Show feedback for one answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := a.svc.Analysis.GetAnswerFeedback(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), fb, func(w io.Writer) error {
				if err := writef(w, "score: %.1f\n%s\n", fb.Score, fb.Feedback); err != nil {
					return err
				}
				return writeList(w, "Suggestions", fb.Suggestions)
			})
		},
	}
}

func analysisMatchCmd(a *app) *cobra.Command {
	var req model.ResumeMatchRequest
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a resume against a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.svc.Analysis.MatchResume(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), m, func(w io.Writer) error {
				if err := writef(w, "match score: %.1f\n", m.Score); err != nil {
					return err
				}
				if m.Summary != "" {
					if err := writef(w, "\n%s\n", m.Summary); err != nil {
						return err
					}
				}
				if err := writeList(w, "Matched skills", m.MatchedSkills); err != nil {
					return err
				}
				return writeList(w, "Missing skills", m.MissingSkills)
			})
		},
	}
	cmd.Flags().StringVar(&req.JobID, "job", "", "job id")
	cmd.Flags().StringVar(&req.ResumeID, "resume", "", "resume id")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
