package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arga1212/smartnote/internal/llm"
	"github.com/arga1212/smartnote/internal/quiz"
	"github.com/arga1212/smartnote/internal/quizgen"
	"github.com/arga1212/smartnote/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate and inspect quizzes",
}

var quizNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a quiz from source material and issue a share code",
	RunE: func(cmd *cobra.Command, args []string) error {
		materialFile, _ := cmd.Flags().GetString("material")
		difficultyStr, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")

		difficulty, err := quizgen.ParseDifficulty(difficultyStr)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(materialFile)
		if err != nil {
			return fmt.Errorf("read material file: %w", err)
		}

		svc, s, err := buildQuizService(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Generating %d %s questions...\n", count, difficulty)
		rec, err := svc.Generate(cmd.Context(), string(raw), difficulty, count)
		if err != nil {
			var schemaErr *quizgen.SchemaError
			if errors.As(err, &schemaErr) {
				return fmt.Errorf("the generated quiz was invalid (%s), try again", schemaErr.Reason)
			}
			return err
		}

		fmt.Printf("\nQuiz code: %s\n\n", rec.Code)
		printQuestions(rec)
		return nil
	},
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := buildQuizService(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No quizzes issued yet.")
			return nil
		}

		fmt.Printf("%-10s  %-19s  %-8s  %s\n", "Code", "Created", "Level", "Questions")
		fmt.Println(strings.Repeat("─", 52))
		for _, rec := range recs {
			fmt.Printf("%-10s  %-19s  %-8s  %d\n",
				rec.Code,
				rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				rec.Difficulty,
				len(rec.Quiz.Questions),
			)
		}
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show <code>",
	Short: "Show a quiz with its answer key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, s, err := buildQuizService(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Quiz %s (%s, %d questions)\n\n", rec.Code, rec.Difficulty, len(rec.Quiz.Questions))
		printQuestions(rec)
		return nil
	},
}

func init() {
	quizNewCmd.Flags().StringP("material", "m", "", "Path to a text file with the source material")
	quizNewCmd.Flags().StringP("difficulty", "d", "Medium", "Difficulty: Easy, Medium or Hard")
	quizNewCmd.Flags().IntP("count", "n", 5, "Number of questions")
	_ = quizNewCmd.MarkFlagRequired("material")

	quizCmd.AddCommand(quizNewCmd)
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizShowCmd)
}

// buildQuizService opens the store and wires the lifecycle service over
// the configured LLM provider.
func buildQuizService(cmd *cobra.Command) (*quiz.Service, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), s.EventRepo())
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	svc := quiz.NewService(
		quizgen.New(provider, quizgen.DefaultConfig()),
		quiz.NewSQLStore(s.QuizRepo()),
	)
	return svc, s, nil
}

func printQuestions(rec *quiz.Record) {
	for i, q := range rec.Quiz.Questions {
		fmt.Printf("%d. %s\n", i+1, q.Text)
		for _, key := range quizgen.OptionKeys {
			marker := " "
			if key == q.CorrectAnswer {
				marker = "*"
			}
			fmt.Printf("  %s %s) %s\n", marker, key, q.Options[key])
		}
		fmt.Printf("     %s\n\n", q.Explanation)
	}
}
