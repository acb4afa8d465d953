package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/domain"
)

// NewChaptersCmd prints the chapter dashboard.
func NewChaptersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List chapters with question counts and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadServices(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			dash, err := svc.quiz.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), dash)
			return nil
		},
	}
}

func printDashboard(w io.Writer, dash domain.Dashboard) {
	fmt.Fprintf(w, "Questions loaded: %d · Chapters: %d\n", dash.QuestionCount, len(dash.Chapters))
	for _, c := range dash.Chapters {
		fmt.Fprintf(w, "  %s\n    %s\n", c.Name, c.Subtitle())
	}
}
