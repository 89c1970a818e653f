package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookscout/internal/categorize"
	"bookscout/internal/logging"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog with a natural-language query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), ctx, strings.Join(args, " "), userID, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID for profile-aware matching")
	return cmd
}

func runSearch(cmdCtx context.Context, ctx *commandContext, rawQuery, userID string, out io.Writer) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}

	engine, store, _, err := buildEngine(cmdCtx, cfg, logging.NewNop())
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := engine.Search(cmdCtx, rawQuery, userID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Query: %s\n", result.Query)
	if result.Message != "" {
		fmt.Fprintln(out, result.Message)
		return nil
	}

	printBucket(out, "Atmosphere", result.Atmosphere)
	printBucket(out, "Characters", result.Characters)
	printBucket(out, "Plot", result.Plot)
	return nil
}

func printBucket(out io.Writer, name string, bucket categorize.Bucket) {
	if len(bucket.Books) == 0 {
		return
	}
	heading := name
	if len(bucket.Tags) > 0 {
		heading = fmt.Sprintf("%s (%s)", name, strings.Join(bucket.Tags, ", "))
	}
	fmt.Fprintf(out, "\n%s\n", heading)

	rows := make([][]string, 0, len(bucket.Books))
	for _, pick := range bucket.Books {
		rows = append(rows, []string{
			pick.Book.Title,
			pick.Book.Author,
			strconv.Itoa(pick.MatchPercentage) + "%",
			strings.Join(firstReasons(pick), "; "),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Title", "Author", "Match", "Why"}, rows, 2))
}

func firstReasons(pick categorize.BookPick) []string {
	for _, reasons := range pick.MatchReasons {
		return reasons
	}
	return nil
}
