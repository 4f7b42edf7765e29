package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linker/internal/app"
	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/scheduler"
	"github.com/MrSnakeDoc/linker/internal/version"
)

// cli carries the process boundaries so commands can run against fakes.
type cli struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader
	open   func(ctx context.Context) (*app.App, error)
	browse func(url string) error
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "linker",
		Short:         "Keep your bookmarks in named categories",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("no-color"); v {
				noColor = true
			}
		},
	}
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.SetIn(c.in)

	root.AddCommand(
		c.addCmd(),
		c.listCmd(),
		c.deleteCmd(),
		c.categoriesCmd(),
		c.renameCategoryCmd(),
		c.openCmd(),
		c.searchCmd(),
		c.importCmd(),
		c.serveCmd(),
		c.versionCmd(),
	)
	return root
}

// withStore opens the app, runs fn with a bounded context and closes the app.
func (c *cli) withStore(cmd *cobra.Command, fn func(ctx context.Context, st *linkstore.Store) error) error {
	a, err := c.open(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := a.OperationContext(cmd.Context())
	defer cancel()
	return fn(ctx, a.Store())
}

// --- add ---

func (c *cli) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title> <url>",
		Short: "Add a link",
		Long: `Add a link to a category.

Examples:
  linker add "Go docs" https://go.dev/doc --category Work
  linker add Recipes https://example.com/recipes -c Personal`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				link, _, err := st.AddLink(ctx, args[0], args[1], category)
				if err != nil {
					return err
				}
				printSuccess(c.errOut, "Added %q to %s (id %d)", link.Title, link.Category, link.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringP("category", "c", "General", "category of the link")
	return cmd
}

// --- list ---

func (c *cli) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List links grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			asJSON, _ := cmd.Flags().GetBool("json")

			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				if cmd.Flags().Changed("category") {
					links := linkstore.FilterByCategory(st.Links(), category)
					if asJSON {
						return c.writeJSON(links)
					}
					return c.printLinks(links)
				}

				sections := st.Sections()
				if asJSON {
					return c.writeJSON(sections)
				}
				return c.printSections(sections)
			})
		},
	}
	cmd.Flags().String("category", "", "only list links of this category")
	cmd.Flags().Bool("json", false, "print JSON instead of a table")
	return cmd
}

func (c *cli) printSections(s domain.Sections) error {
	for _, sec := range s.Sections {
		fmt.Fprintf(c.out, "%s (%d)\n", heading(sec.Category), len(sec.Links))
		if err := c.printLinks(sec.Links); err != nil {
			return err
		}
	}
	if len(s.Orphans) > 0 {
		fmt.Fprintf(c.out, "%s (%d)\n", heading("Uncategorized"), len(s.Orphans))
		return c.printLinks(s.Orphans)
	}
	return nil
}

func (c *cli) printLinks(links []domain.Link) error {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, l := range links {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", l.ID, l.Title, l.URL, l.Category)
	}
	return tw.Flush()
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- delete ---

func (c *cli) deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")

			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				link, ok := st.Get(id)
				if !ok {
					printWarning(c.errOut, "No link with id %d", id)
					return nil
				}
				if !yes && !c.confirm(fmt.Sprintf("Delete %q (%s)?", link.Title, link.URL)) {
					printWarning(c.errOut, "Aborted")
					return nil
				}
				st.DeleteLink(ctx, id)
				printSuccess(c.errOut, "Deleted %q", link.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (c *cli) confirm(question string) bool {
	fmt.Fprintf(c.errOut, "%s [y/N] ", question)
	answer, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// --- categories ---

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				for i, name := range st.Categories() {
					fmt.Fprintf(c.out, "%d\t%s\n", i, name)
				}
				return nil
			})
		},
	}
}

func (c *cli) renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-category <index> <name>",
		Short: "Rename the category at index",
		Long: `Rename the category at index (see "linker categories").

Links keep their old category name and are listed as uncategorized
until they are re-added.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid category index %q", args[0])
			}
			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				categories, err := st.RenameCategory(ctx, index, args[1])
				if err != nil {
					return err
				}
				printSuccess(c.errOut, "Categories: %s", strings.Join(categories, ", "))
				return nil
			})
		},
	}
}

// --- open ---

func (c *cli) openCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a link in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			printOnly, _ := cmd.Flags().GetBool("print")

			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				link, ok := st.Get(id)
				if !ok {
					return fmt.Errorf("no link with id %d", id)
				}
				if printOnly {
					fmt.Fprintln(c.out, link.URL)
					return nil
				}
				if err := c.browse(link.URL); err != nil {
					return fmt.Errorf("opening %s: %w", link.URL, err)
				}
				return nil
			})
		},
	}
	cmd.Flags().Bool("print", false, "print the url instead of opening it")
	return cmd
}

// --- search ---

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search links by title and url",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withStore(cmd, func(ctx context.Context, st *linkstore.Store) error {
				matches := st.Search(query)
				if len(matches) == 0 {
					printWarning(c.errOut, "No link matches %q", query)
					return nil
				}
				links := make([]domain.Link, 0, len(matches))
				for _, m := range matches {
					links = append(links, m.Link)
				}
				return c.printLinks(links)
			})
		},
	}
}

// --- import ---

func (c *cli) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import links from Homepage bookmarks.yaml / services.yaml",
		Long: `Import links from Homepage configuration files.

Each group becomes the category, each entry name the title. Entries whose
group is not an existing category and urls already stored are skipped.
Without flags the configured LINKER_IMPORT_* files are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookmarks, _ := cmd.Flags().GetString("bookmarks")
			services, _ := cmd.Flags().GetString("services")

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Importer(bookmarks, services, nil).Reload(cmd.Context())
			if errors.Is(err, scheduler.ErrNoSources) {
				return fmt.Errorf("%w: pass --bookmarks or --services", err)
			}
			printSuccess(c.errOut, "Imported %d, skipped %d duplicates, %d unknown categories, %d invalid",
				res.Added, res.Duplicates, res.UnknownCategory, res.Invalid)
			return err
		},
	}
	cmd.Flags().String("bookmarks", "", "path to a Homepage bookmarks.yaml")
	cmd.Flags().String("services", "", "path to a Homepage services.yaml")
	return cmd
}

// --- serve ---

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(cmd.Context())
		},
	}
}

// --- version ---

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.out, version.String())
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid link id %q", s)
	}
	return id, nil
}
