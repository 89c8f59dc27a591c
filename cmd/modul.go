package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arga1212/smartnote/internal/document"
	"github.com/arga1212/smartnote/internal/llm"
	"github.com/arga1212/smartnote/internal/material"
	"github.com/arga1212/smartnote/internal/store"
)

var modulCmd = &cobra.Command{
	Use:   "modul <audio-file>",
	Short: "Turn a lecture recording into a study module PDF or summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaryOnly, _ := cmd.Flags().GetBool("summary")
		outPath, _ := cmd.Flags().GetString("out")

		audio, err := readAudio(args[0])
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
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
		svc := material.NewService(provider, material.DefaultConfig())

		if summaryOnly {
			fmt.Println("Summarizing lecture...")
			summary, err := svc.Summarize(cmd.Context(), audio)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Println(summary)
			return nil
		}

		fmt.Println("Building module from lecture, this can take a few minutes...")
		text, err := svc.BuildModule(cmd.Context(), audio)
		if err != nil {
			return err
		}

		pdf, err := document.RenderModulePDF(text)
		if err != nil {
			return fmt.Errorf("render PDF: %w", err)
		}

		if outPath == "" {
			base := filepath.Base(args[0])
			outPath = base[:len(base)-len(filepath.Ext(base))] + ".pdf"
		}
		if err := os.WriteFile(outPath, pdf, 0644); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}
		fmt.Printf("Module written to %s\n", outPath)
		return nil
	},
}

func init() {
	modulCmd.Flags().Bool("summary", false, "Print a summary instead of building the full module")
	modulCmd.Flags().StringP("out", "o", "", "Output PDF path (defaults to the audio file name)")
}

// readAudio loads a lecture recording and infers its MIME type from the
// file extension.
func readAudio(path string) (llm.Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return llm.Media{}, fmt.Errorf("read audio file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}
	return llm.Media{MIMEType: mimeType, Data: data}, nil
}
