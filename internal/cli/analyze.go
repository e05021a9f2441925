package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/agromarket/agromarket-go/internal/api"
	"github.com/agromarket/agromarket-go/internal/diagnose"

	"github.com/spf13/cobra"
)

func newAnalyzeCommand() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Detect plant diseases from a leaf photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "analyzing image", func(ctx context.Context, a *app) ([]string, error) {
				if a.inference == nil {
					return nil, fmt.Errorf("AGROMARKET_INFERENCE_URL is not configured")
				}
				sess, err := a.client.Sessions().Get(ctx)
				if err != nil {
					return nil, err
				}

				file, err := os.Open(args[0])
				if err != nil {
					return nil, fmt.Errorf("open image: %w", err)
				}
				defer func() { _ = file.Close() }()

				result, err := a.inference.Analyze(ctx, args[0], file)
				if err != nil {
					return nil, err
				}
				disease := diagnose.Lookup(result.Prediction)
				plant, _ := diagnose.SplitLabel(result.Prediction)

				lines := []string{
					fmt.Sprintf("plant: %s", plant),
					fmt.Sprintf("condition: %s (%s)", disease.Name, disease.Severity),
					disease.Description,
					"treatment: " + strings.Join(disease.Treatment, "; "),
				}

				if save {
					entry, err := a.history.Append(ctx, sess.User.UserType, diagnose.FeaturePlantAnalysis, diagnose.HistoryEntry{
						Condition: disease.Name,
						Severity:  disease.Severity,
						Treatment: disease.Treatment,
						Image:     result.AnnotatedImage,
					})
					if err != nil {
						return lines, err
					}
					lines = append(lines, "saved locally as "+entry.ID)

					// Server copy is best effort; the local record already exists.
					if _, err := a.client.SavePlantAnalysis(ctx, api.PlantAnalysisRecord{
						Date:      entry.Date.Format("2006-01-02"),
						Condition: disease.Name,
						Severity:  disease.Severity,
						Treatment: disease.Treatment,
						Image:     result.AnnotatedImage,
					}); err != nil {
						lines = append(lines, "server sync failed: "+err.Error())
					}
				}
				return lines, nil
			})
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "save the result to your analysis history")
	return cmd
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "history", Short: "Browse your saved plant analyses"}

	var showImage bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "loading history", func(ctx context.Context, a *app) ([]string, error) {
				sess, err := a.client.Sessions().Get(ctx)
				if err != nil {
					return nil, err
				}
				entries, err := a.history.List(ctx, sess.User.UserType, diagnose.FeaturePlantAnalysis)
				if err != nil {
					return nil, err
				}
				lines := make([]string, 0, len(entries))
				for _, e := range entries {
					lines = append(lines, fmt.Sprintf("%s  %s  %-24s %s", e.ID, e.Date.Format("2006-01-02"), e.Condition, e.Severity))
					if showImage && e.Image != "" {
						lines = append(lines, fmt.Sprintf("  image: %d bytes (base64)", base64.StdEncoding.DecodedLen(len(e.Image))))
					}
				}
				if len(lines) == 0 {
					lines = []string{"no saved analyses"}
				}
				return lines, nil
			})
		},
	}
	list.Flags().BoolVar(&showImage, "images", false, "show annotated image sizes")

	remove := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "deleting entry", func(ctx context.Context, a *app) ([]string, error) {
				sess, err := a.client.Sessions().Get(ctx)
				if err != nil {
					return nil, err
				}
				if err := a.history.Delete(ctx, sess.User.UserType, diagnose.FeaturePlantAnalysis, args[0]); err != nil {
					return nil, err
				}
				return []string{"entry deleted"}, nil
			})
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved analyses for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "clearing history", func(ctx context.Context, a *app) ([]string, error) {
				sess, err := a.client.Sessions().Get(ctx)
				if err != nil {
					return nil, err
				}
				if err := a.history.Clear(ctx, sess.User.UserType, diagnose.FeaturePlantAnalysis); err != nil {
					return nil, err
				}
				return []string{"history cleared"}, nil
			})
		},
	}

	cmd.AddCommand(list, remove, clear)
	return cmd
}
