package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmcdole/hema/internal/domain"
)

func newBooksCmd(opts *options) *cobra.Command {
	var (
		page     int
		pageSize int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List fighting books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()

			if all {
				books, err := a.content.FetchAllBooks(cmd.Context(), func(loaded, total int) {
					fmt.Fprintf(cmd.ErrOrStderr(), "\rLoaded %d/%d books", loaded, total)
				})
				fmt.Fprintln(cmd.ErrOrStderr())
				if err != nil {
					return fmt.Errorf("failed to fetch books: %w", err)
				}
				printBooks(out, books)
				fmt.Fprintf(out, "%d books\n", len(books))
				return nil
			}

			result, err := a.content.FetchBooksPage(cmd.Context(), domain.PageParams{Page: page, PageSize: pageSize})
			if err != nil {
				return fmt.Errorf("failed to fetch books: %w", err)
			}
			printBooks(out, result.Data)
			fmt.Fprintf(out, "Page %d of %d (%d books)\n", result.Page, result.TotalPages, result.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number (server default when omitted)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "books per page (server default when omitted)")
	cmd.Flags().BoolVar(&all, "all", false, "walk every page")
	cmd.MarkFlagsMutuallyExclusive("all", "page")
	return cmd
}

func newBookCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "book BOOK_ID",
		Short: "Show one fighting book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			book, err := a.content.FetchBook(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch book %d: %w", id, err)
			}
			printBook(cmd.OutOrStdout(), book)
			return nil
		},
	}
}

func newChaptersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters BOOK_ID",
		Short: "List the chapters of a fighting book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			chapters, err := a.content.FetchChapters(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch chapters: %w", err)
			}
			if len(chapters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No chapters available yet.")
				return nil
			}
			printChapters(cmd.OutOrStdout(), chapters)
			return nil
		},
	}
}

func newTechniquesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "techniques CHAPTER_ID",
		Short: "List the techniques of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("chapter", args[0])
			if err != nil {
				return err
			}

			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			techniques, err := a.content.FetchTechniques(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to fetch techniques: %w", err)
			}
			if len(techniques) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No techniques available yet.")
				return nil
			}
			printTechniques(cmd.OutOrStdout(), techniques)
			return nil
		},
	}
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			health, err := a.content.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("API unreachable at %s: %w", a.cfg.Server.BaseURL(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", a.cfg.Server.BaseURL(), health.Status, health.Timestamp)
			return nil
		},
	}
}

func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}
