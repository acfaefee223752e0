package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/journal/internal/catalog"
	"github.com/roach88/journal/internal/journal"
	"github.com/roach88/journal/internal/service"
)

// CatalogOptions holds flags for the catalog add command.
type CatalogOptions struct {
	*RootOptions
	Name           string
	Author         string
	Title          string
	URL            string
	Content        string
	Published      string
	ReadingMinutes int
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the article catalog",
	}

	cmd.AddCommand(newCatalogAddCommand(rootOpts))
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogDeleteCommand(rootOpts))

	return cmd
}

func newCatalogAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an article to the catalog",
		Long: `Add an article to the catalog.

The compound key (author, title, published) is unique; adding the same
article twice is an error.

Example:
  journal catalog add --author "Ada Example" --title "Go Journal" \
    --published 2024-03-01T08:00:00Z --url https://news.example/go-journal`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "source name")
	cmd.Flags().StringVar(&opts.Author, "author", "", "article author (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "article title (required)")
	cmd.Flags().StringVar(&opts.URL, "url", "", "article URL")
	cmd.Flags().StringVar(&opts.Content, "content", "", "article content")
	cmd.Flags().StringVar(&opts.Published, "published", "", "publication time, RFC 3339 (required)")
	cmd.Flags().IntVar(&opts.ReadingMinutes, "reading-minutes", 0, "reading time estimate in minutes (0 = estimate from content)")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("published")

	return cmd
}

func runCatalogAdd(opts *CatalogOptions, cmd *cobra.Command) error {
	publishedAt, err := time.Parse(time.RFC3339, opts.Published)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --published timestamp", err)
	}

	store, f, err := openCatalog(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Create(cmd.Context(), journal.ArticleRef{
		Name:        opts.Name,
		Author:      opts.Author,
		Title:       opts.Title,
		URL:         opts.URL,
		Content:     opts.Content,
		PublishedAt: publishedAt,
		ReadingTime: time.Duration(opts.ReadingMinutes) * time.Minute,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to add article", err)
	}

	return f.Emit(
		struct {
			Status string `json:"status"`
			ID     int64  `json:"id"`
		}{Status: "success", ID: id},
		fmt.Sprintf("added article %d: %s - %s", id, opts.Author, opts.Title),
	)
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all articles in the catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, f, err := openCatalog(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			refs, err := store.ListAll(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list catalog", err)
			}

			if f.Format == "json" {
				views := make([]service.ArticleView, len(refs))
				for i, ref := range refs {
					views[i] = service.ViewOf(ref)
				}
				return f.Emit(views, "")
			}
			for _, ref := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s - %s (%s)\n",
					ref.ID, ref.Author, ref.Title, ref.PublishedAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newCatalogDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <article-id>",
		Short:         "Soft-delete an article from the catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid article id", err)
			}

			store, f, err := openCatalog(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SoftDelete(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "failed to delete article", err)
			}
			return f.Emit(
				struct {
					Status string `json:"status"`
					ID     int64  `json:"id"`
				}{Status: "success", ID: id},
				fmt.Sprintf("deleted article %d", id),
			)
		},
	}
}

// openCatalog resolves config and opens the catalog store plus an output
// formatter bound to the command's streams.
func openCatalog(rootOpts *RootOptions, cmd *cobra.Command) (*catalog.Store, *OutputFormatter, error) {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return nil, nil, err
	}

	store, err := catalog.Open(cfg.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open catalog database", err)
	}

	f := &OutputFormatter{
		Format:    cfg.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
	return store, f, nil
}
