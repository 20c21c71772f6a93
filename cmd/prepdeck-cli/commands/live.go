package commands

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/bootstrap"
	domainrt "github.com/prepdeck/prepdeck-web/internal/domain/realtime"
	"github.com/prepdeck/prepdeck-web/internal/realtime"
)

type liveOptions struct {
	answer     string
	language   string
	transcribe bool
}

func liveCmd(a *app) *cobra.Command {
	var opts liveOptions
	cmd := &cobra.Command{
		Use:   "live <session-id>",
		Short: "Join a live interview session",
		Long: "Join a live interview session. Each line typed is submitted as the answer to the\n" +
			"current question; /next asks for the next question and /quit leaves.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runLive(ctx, cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.answer, "answer", "", "answer the first question with this text, then leave")
	cmd.Flags().BoolVar(&opts.transcribe, "transcribe", false, "request live transcription")
	cmd.Flags().StringVar(&opts.language, "language", "en", "transcription language")
	return cmd
}

// liveSession tracks the question being answered. Listener callbacks run on
// the socket's read goroutine.
type liveSession struct {
	id  string
	out io.Writer

	mu        sync.Mutex
	question  string
	shownAt   time.Time
	answered  bool
	joinedYet bool

	done     chan struct{}
	doneOnce sync.Once
	err      error
}

func (s *liveSession) finish(err error) {
	s.doneOnce.Do(func() {
		s.err = err
		close(s.done)
	})
}

func (a *app) runLive(ctx context.Context, cmd *cobra.Command, sessionID string, opts liveOptions) error {
	out := printer(cmd)
	ls := &liveSession{id: sessionID, out: out, done: make(chan struct{})}

	var client *realtime.InterviewClient
	client = bootstrap.NewInterviewClient(a.cfg.Realtime, a.obs, func(st realtime.State) {
		switch st {
		case realtime.StateReconnecting:
			_ = writeln(cmd.ErrOrStderr(), "connection lost; reconnecting...")
		case realtime.StateConnected:
			ls.mu.Lock()
			rejoin := ls.joinedYet
			ls.mu.Unlock()
			if rejoin {
				client.JoinSession(sessionID)
			}
		case realtime.StateFailed:
			ls.finish(errors.New("lost connection to the interview server"))
		}
	}, a.logger)

	registerLiveHandlers(client, ls, opts)

	if err := client.Connect(ctx, a.session.AccessToken(ctx)); err != nil {
		return err
	}
	defer func() {
		if opts.transcribe {
			client.StopTranscription(sessionID)
		}
		client.LeaveSession(sessionID)
		_ = client.Close()
	}()

	if !client.JoinSession(sessionID) {
		return errors.New("could not join the session")
	}
	ls.mu.Lock()
	ls.joinedYet = true
	ls.mu.Unlock()
	if opts.transcribe {
		client.StartTranscription(sessionID, opts.language)
	}
	if opts.answer == "" {
		go readAnswers(cmd.InOrStdin(), client, ls)
	}

	select {
	case <-ctx.Done():
		return nil
	case <-ls.done:
		return ls.err
	}
}

func registerLiveHandlers(client *realtime.InterviewClient, ls *liveSession, opts liveOptions) {
	out := ls.out
	client.OnSessionJoined(func(p domainrt.SessionJoined) {
		_ = writef(out, "Joined session %s\n", p.SessionID)
	})
	client.OnSessionUpdate(func(p domainrt.SessionUpdate) {
		_ = writef(out, "[%s] question %d of %d\n", p.Status, p.CurrentQuestion, p.QuestionCount)
		if p.Status == "completed" {
			ls.finish(nil)
		}
	})
	client.OnQuestion(func(q domainrt.QuestionPayload) {
		ls.mu.Lock()
		ls.question = q.QuestionID
		ls.shownAt = time.Now()
		first := !ls.answered
		ls.mu.Unlock()

		_ = writef(out, "\nQ%d/%d: %s\n", q.Order, q.Total, q.Text)
		for _, h := range q.Hints {
			_ = writef(out, "  hint: %s\n", h)
		}
		if opts.answer != "" && first {
			ls.mu.Lock()
			ls.answered = true
			ls.mu.Unlock()
			submitAnswer(client, ls, opts.answer)
		}
	})
	client.OnAnswerAck(func(ack domainrt.AnswerAck) {
		_ = writef(out, "Answer recorded (%s)\n", ack.AnswerID)
		if ack.Feedback != "" {
			_ = writef(out, "score %.1f: %s\n", ack.Score, ack.Feedback)
		}
		if opts.answer != "" {
			ls.finish(nil)
		}
	})
	client.OnTranscription(func(tr domainrt.TranscriptionResult) {
		if tr.Final {
			_ = writef(out, "> %s\n", tr.Text)
		}
	})
	client.OnError(func(e domainrt.ErrorPayload) {
		_ = writef(out, "server error: %s\n", e.Message)
	})
}

func submitAnswer(client *realtime.InterviewClient, ls *liveSession, text string) bool {
	ls.mu.Lock()
	qid := ls.question
	elapsed := time.Since(ls.shownAt)
	ls.mu.Unlock()
	if qid == "" {
		_ = writeln(ls.out, "No question yet; wait for one or type /next.")
		return false
	}
	return client.SubmitAnswer(domainrt.AnswerSubmission{
		SessionID:       ls.id,
		QuestionID:      qid,
		Answer:          text,
		DurationSeconds: int(elapsed.Seconds()),
	})
}

func readAnswers(in io.Reader, client *realtime.InterviewClient, ls *liveSession) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit":
			ls.finish(nil)
			return
		case "/next":
			client.RequestNextQuestion(ls.id)
		default:
			submitAnswer(client, ls, line)
		}
	}
}
