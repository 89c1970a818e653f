package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookscout/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog store utilities",
	}

	catalogCmd.AddCommand(newCatalogSeedCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))

	return catalogCmd
}

func newCatalogSeedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog with sample books and a demo profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded catalog at %s\n", store.Path())
			return nil
		},
	}
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all catalog books",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			books, err := store.Books(cmd.Context())
			if err != nil {
				return fmt.Errorf("list books: %w", err)
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty; run `bookscout catalog seed` to add sample books")
				return nil
			}

			rows := make([][]string, 0, len(books))
			for _, book := range books {
				rows = append(rows, []string{
					book.ID,
					book.Title,
					book.Author,
					strings.Join(book.Genres, ", "),
					strconv.Itoa(book.PageCount),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Author", "Genres", "Pages"},
				rows,
				4,
			))
			return nil
		},
	}
}

func openStore(cmdCtx context.Context, ctx *commandContext) (*catalog.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	store, err := catalog.NewStore(cmdCtx, cfg.Catalog.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	return store, nil
}
