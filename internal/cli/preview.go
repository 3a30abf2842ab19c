package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codeinput/pkg/highlight"
	"github.com/goliatone/go-codeinput/pkg/preview"
)

func (a *app) previewCommand() *cobra.Command {
	var (
		output       string
		title        string
		style        string
		templatesDir string
		stylesheets  []string
	)
	cmd := &cobra.Command{
		Use:   "preview <file.html>",
		Short: "Build a standalone preview page for the widgets of an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			doc, err := a.parseDocument(a.registry, source)
			if err != nil {
				return err
			}

			var engineOpts []preview.Option
			if templatesDir != "" {
				engineOpts = append(engineOpts, preview.WithBaseDir(templatesDir))
			}
			engine, err := preview.New(engineOpts...)
			if err != nil {
				return err
			}

			if title == "" {
				title = args[0]
			}
			page := preview.NewPage(doc.Instances(),
				preview.WithTitle(title),
				preview.WithStylesheets(stylesheets...),
				preview.WithCSSFrom(highlight.New(highlight.WithStyle(style)).CSS),
			)

			w, closeFn, err := a.output(output)
			if err != nil {
				return err
			}
			if _, err := engine.RenderPage(page, w); err != nil {
				return errors.Join(err, closeFn())
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	cmd.Flags().StringVar(&title, "title", "", "page title (defaults to the input path)")
	cmd.Flags().StringVar(&style, "style", highlight.DefaultStyle, "chroma style for the inlined stylesheet")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "directory with a page.html overriding the built-in layout")
	cmd.Flags().StringSliceVar(&stylesheets, "stylesheet", nil, "stylesheet URLs to link")
	return cmd
}
