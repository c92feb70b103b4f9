package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/bookrec/internal/formatter"
	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
	"github.com/yildizm/bookrec/internal/ui"
)

var (
	recUser   string
	recModel  string
	recBooks  string
	recK      int
	recOutput string
)

func newRecommendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations",
		Long: `Print recommendations for a user, a list of seed books, or both.

Without --user and --books the popular list is printed. Seed books are added
to the user's own history before ranking.`,
		Example: `  bookrec recommend --user 3
  bookrec recommend --books 1,5 --model item_similarity -k 5
  bookrec recommend --user 3 -o json`,
		Args: cobra.NoArgs,
		RunE: runRecommend,
	}

	cmd.Flags().StringVarP(&recUser, "user", "u", "", "user id")
	cmd.Flags().StringVarP(&recModel, "model", "m", "", "recommendation model (default from config)")
	cmd.Flags().StringVarP(&recBooks, "books", "b", "", "comma separated seed book ids")
	cmd.Flags().IntVarP(&recK, "k", "k", 0, "number of recommendations (default from config)")
	cmd.Flags().StringVarP(&recOutput, "output", "o", "", fmt.Sprintf("output format %v (default from config)", formatter.Formats))

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger("recommend")

	req, err := buildRequest(recUser, recModel, recBooks, recK)
	if err != nil {
		return err
	}
	if req.Model == "" {
		req.Model = recommender.ModelType(cfg.Recommend.Model)
	}
	if req.K == 0 {
		req.K = cfg.Recommend.K
	}

	format := recOutput
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	f, err := formatter.New(format, !ui.IsColorDisabled())
	if err != nil {
		return err
	}

	svc, _, err := newService(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Recommend.Timeout)
	defer cancel()

	result, err := svc.Recommend(ctx, req)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	out, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// buildRequest turns flag values into a request. Unlike the browser, a user
// flag that is not a positive integer is an error here.
func buildRequest(user, model, books string, k int) (recommender.Request, error) {
	req := recommender.Request{
		User:  recommender.NoHistory,
		Model: recommender.ModelType(model),
		K:     k,
	}

	if strings.TrimSpace(user) != "" {
		id, ok := route.ParseSelection(user).ID()
		if !ok {
			return req, fmt.Errorf("invalid user %q: must be a positive integer", user)
		}
		req.User = id
	}

	for _, part := range strings.Split(books, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return req, fmt.Errorf("invalid book id %q", part)
		}
		req.Books = append(req.Books, id)
	}
	return req, nil
}
