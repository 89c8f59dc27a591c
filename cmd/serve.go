package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arga1212/smartnote/internal/llm"
	"github.com/arga1212/smartnote/internal/material"
	"github.com/arga1212/smartnote/internal/quiz"
	"github.com/arga1212/smartnote/internal/quizgen"
	"github.com/arga1212/smartnote/internal/server"
	"github.com/arga1212/smartnote/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.SetEnvPrefix("SMARTNOTE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		viper.SetDefault("server.port", ":8080")
		viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("read config file: %w", err)
			}
			log.Println("no config.yaml found, using environment variables and defaults")
		}

		dbPath := viper.GetString("database.path")
		if dbPath == "" {
			var err error
			dbPath, err = resolveDBPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), s.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		quizSvc := quiz.NewService(
			quizgen.New(provider, quizgen.DefaultConfig()),
			quiz.NewSQLStore(s.QuizRepo()),
		)
		materialSvc := material.NewService(provider, material.DefaultConfig())

		r := server.SetupRouter(
			server.NewQuizHandler(quizSvc),
			server.NewMaterialHandler(materialSvc),
			viper.GetStringSlice("cors.allowed_origins"),
		)

		port := viper.GetString("server.port")
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		fmt.Printf("smartnote API listening on http://localhost%s (model: %s)\n", port, provider.ModelID())
		return r.Run(port)
	},
}
