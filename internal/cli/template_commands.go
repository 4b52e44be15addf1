package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aiscreen-io/canvasctl/internal/models"
	"github.com/aiscreen-io/canvasctl/internal/templates"
	"github.com/aiscreen-io/canvasctl/internal/util/strutil"
	"github.com/aiscreen-io/canvasctl/internal/util/tags"
	"github.com/aiscreen-io/canvasctl/internal/validation"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "List and manage canvas templates",
	}

	cmd.AddCommand(newTemplatesListCmd())
	cmd.AddCommand(newTemplatesGetCmd())
	cmd.AddCommand(newTemplatesCreateCmd())
	cmd.AddCommand(newTemplatesUpdateCmd())
	cmd.AddCommand(newTemplatesDeleteCmd())
	cmd.AddCommand(newTemplatesTagsCmd())

	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	var (
		page         int
		search       string
		tagFilter    string
		companyID    string
		collectionID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/"); err != nil {
				return err
			}

			a.store.SetFilters(models.Filters{
				Search:       search,
				Tags:         tags.ParseCommaSeparated(tagFilter),
				CompanyID:    companyID,
				CollectionID: collectionID,
			})
			if page > 0 {
				a.store.SetPage(page)
			}

			if err := a.store.FetchTemplates(cmd.Context()); err != nil {
				a.tmplToasts.LoadError(err.Error())
				return err
			}

			items := a.store.FilteredTemplates()
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tTAGS\tDESCRIPTION")
			for _, t := range items {
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\n",
					t.ID,
					strutil.Truncate(t.Name, 30),
					t.Width, t.Height,
					strutil.Truncate(strings.Join(t.Tags, ","), 24),
					strutil.Truncate(strutil.Sanitize(t.Description), 40),
				)
			}
			w.Flush()

			p := a.store.Pagination()
			stats := a.store.Stats()
			fmt.Fprintf(out, "\nPage %d/%d, %d total (%d published, %d private)\n",
				p.Page, a.store.TotalPages(), p.Total, stats.Published, stats.Private)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().StringVar(&search, "search", "", "Substring search over name, description, and tags")
	cmd.Flags().StringVar(&tagFilter, "tags", "", "Comma-separated tags to filter by")
	cmd.Flags().StringVar(&companyID, "company-id", "", "Filter by company")
	cmd.Flags().StringVar(&collectionID, "collection-id", "", "Filter by collection")

	return cmd
}

func newTemplatesGetCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/template/" + args[0] + "/view"); err != nil {
				return err
			}

			item, err := a.store.FetchTemplate(cmd.Context(), args[0])
			if err != nil {
				a.tmplToasts.LoadError(err.Error())
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(item)
			}

			fmt.Fprintf(out, "ID:          %s\n", item.ID)
			fmt.Fprintf(out, "Name:        %s\n", item.Name)
			if item.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", item.Description)
			}
			fmt.Fprintf(out, "Size:        %dx%d\n", item.Width, item.Height)
			if len(item.Tags) > 0 {
				fmt.Fprintf(out, "Tags:        %s\n", strings.Join(item.Tags, ", "))
			}
			if item.PreviewImage != "" {
				fmt.Fprintf(out, "Preview:     %s\n", item.PreviewImage)
			}
			if item.IsPublic != nil {
				visibility := "private"
				if *item.IsPublic {
					visibility = "public"
				}
				fmt.Fprintf(out, "Visibility:  %s\n", visibility)
			}
			if len(item.Objects) > 0 {
				fmt.Fprintf(out, "Objects:     %s\n", strutil.Truncate(string(item.Objects), 120))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw template as JSON")
	return cmd
}

// templateFlags binds the shared create/update field flags.
type templateFlags struct {
	name         string
	description  string
	width        int
	height       int
	tagList      string
	objectsFile  string
	previewImage string
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Template name")
	cmd.Flags().StringVar(&f.description, "description", "", "Template description")
	cmd.Flags().IntVar(&f.width, "width", 0, "Canvas width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "Canvas height in pixels")
	cmd.Flags().StringVar(&f.tagList, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.objectsFile, "objects-file", "", "Path to a JSON file with the scene object graph")
	cmd.Flags().StringVar(&f.previewImage, "preview-image", "", "Path to a preview image to upload")
}

// toInput validates the flag values and converts them to a repository
// input.
func (f *templateFlags) toInput() (templates.Input, error) {
	tagValues := tags.ParseCommaSeparated(f.tagList)

	form := validation.ValidateTemplateForm(validation.TemplateForm{
		Name:        f.name,
		Description: f.description,
		Width:       f.width,
		Height:      f.height,
		Tags:        tagValues,
	})
	if !form.IsValid {
		return templates.Input{}, validationError(form)
	}
	if img := validation.ValidateImageFile(f.previewImage); !img.IsValid {
		return templates.Input{}, validationError(img)
	}

	var objects json.RawMessage
	if f.objectsFile != "" {
		data, err := os.ReadFile(f.objectsFile)
		if err != nil {
			return templates.Input{}, fmt.Errorf("failed to read objects file: %w", err)
		}
		if !json.Valid(data) {
			return templates.Input{}, fmt.Errorf("objects file %s is not valid JSON", f.objectsFile)
		}
		objects = data
	}

	return templates.Input{
		Name:             f.name,
		Description:      f.description,
		Width:            f.width,
		Height:           f.height,
		Objects:          objects,
		Tags:             tagValues,
		PreviewImagePath: f.previewImage,
	}, nil
}

func newTemplatesCreateCmd() *cobra.Command {
	flags := &templateFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/template/new"); err != nil {
				return err
			}

			input, err := flags.toInput()
			if err != nil {
				return err
			}

			item, err := a.store.CreateTemplate(cmd.Context(), input)
			if err != nil {
				a.tmplToasts.CreateError(err.Error())
				return err
			}

			a.tmplToasts.CreateSuccess(item.Name)
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	return cmd
}

func newTemplatesUpdateCmd() *cobra.Command {
	flags := &templateFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/template/" + args[0]); err != nil {
				return err
			}

			input, err := flags.toInput()
			if err != nil {
				return err
			}

			item, err := a.store.UpdateTemplate(cmd.Context(), args[0], input)
			if err != nil {
				a.tmplToasts.UpdateError(err.Error())
				return err
			}

			a.tmplToasts.UpdateSuccess(item.Name)
			return nil
		},
	}

	flags.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	return cmd
}

func newTemplatesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/template/" + args[0]); err != nil {
				return err
			}

			if !yes && !confirm(fmt.Sprintf("Delete template %s?", args[0])) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			if err := a.store.DeleteTemplate(cmd.Context(), args[0]); err != nil {
				a.tmplToasts.DeleteError(err.Error())
				return err
			}

			a.tmplToasts.DeleteSuccess(args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newTemplatesTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List known template tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/"); err != nil {
				return err
			}

			a.store.FetchTags(cmd.Context())
			available := a.store.AvailableTags()
			if len(available) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tags found.")
				return nil
			}
			for _, tag := range available {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
