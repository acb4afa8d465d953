package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/app"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/quiz"
)

// NewPlayCmd runs a quiz session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var ids string
	cmd := &cobra.Command{
		Use:   "play <chapter>",
		Short: "Take a chapter quiz in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer svc.Close()
			return play(cmd.Context(), svc.quiz, args[0], quiz.ParseIDs(ids), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&ids, "ids", "", "only these question ids, comma separated")
	return cmd
}

// play drives one session over a line-oriented terminal: a letter (A-E)
// selects an option, an empty line moves on, "q" abandons. After the
// result, "r" retries the wrong questions.
func play(ctx context.Context, service *app.QuizService, chapter string, ids []int, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		view, err := service.Start(ctx, chapter, ids)
		if errors.Is(err, domain.ErrEmptySelection) {
			fmt.Fprintf(out, "No questions for chapter %q.\n", chapter)
			return nil
		}
		if err != nil {
			return err
		}

		sub, err := playSession(ctx, service, view, scanner, out)
		if err != nil || sub == nil {
			return err
		}
		printSubmission(out, sub)
		if !sub.CanRetry {
			return nil
		}

		fmt.Fprint(out, "Retry wrong answers? [r/N] ")
		if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "r") {
			return nil
		}
		chapter = sub.Result.Chapter
		ids = quiz.ParseIDs(sub.RetryIDs)
	}
}

func playSession(ctx context.Context, service *app.QuizService, view app.SessionView, scanner *bufio.Scanner, out io.Writer) (*app.Submission, error) {
	printView(out, view)
	for scanner.Scan() {
		line := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		switch {
		case line == "Q":
			service.Abandon(ctx, view.SessionID)
			return nil, nil
		case line == "":
			step, err := service.Next(ctx, view.SessionID)
			if errors.Is(err, domain.ErrNoSelection) {
				fmt.Fprintln(out, "Choose an option first.")
				continue
			}
			if err != nil {
				return nil, err
			}
			if step.Submission != nil {
				return step.Submission, nil
			}
			view = *step.View
			printView(out, view)
		case len(line) == 1 && line[0] >= 'A' && line[0] <= 'E':
			next, err := service.Select(ctx, view.SessionID, int(line[0]-'A'))
			if err != nil {
				return nil, err
			}
			view = next
			fmt.Fprintf(out, "Selected %s. Press Enter to continue.\n", line)
		default:
			fmt.Fprintln(out, "Type A-E to answer, Enter to continue, q to quit.")
		}
	}
	service.Abandon(ctx, view.SessionID)
	return nil, scanner.Err()
}

func printView(out io.Writer, view app.SessionView) {
	fmt.Fprintf(out, "\n%s  %d/%d\n%s\n", view.Chapter, view.Position+1, view.Total, view.Question.Text)
	for i, opt := range view.Question.Options {
		fmt.Fprintf(out, "  %s\n", domain.LabelOption(i, opt))
	}
}

func printSubmission(out io.Writer, sub *app.Submission) {
	r := sub.Result
	fmt.Fprintf(out, "\nResults - %s\nScore: %d/%d\nPercent: %d%%\nAnswered: %d · Wrong: %d\n",
		r.Chapter, r.Correct, r.Total, r.Percent, r.Total, r.Wrong)
	if len(r.WrongItems) == 0 {
		fmt.Fprintln(out, "No wrong answers.")
	}
	for _, item := range r.WrongItems {
		fmt.Fprintf(out, "\n%s\n  Your answer: %s\n  Correct: %s\n", item.QuestionText, item.YourAnswer, item.CorrectAnswer)
	}
	p := sub.Progress
	fmt.Fprintf(out, "\nBest %d%% · Attempts %d · Last %d%% (%s)\n", p.BestPercent, p.Attempts, p.LastPercent, p.LastAttemptAt)
}
