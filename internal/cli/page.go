package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/config"
	"github.com/goliatone/go-codeinput/pkg/document"
)

func (a *app) pageCommand() *cobra.Command {
	var (
		output string
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "page <file.html>",
		Short: "Set up every <code-input> element of an HTML page",
		Long: `page parses an HTML document, sets up each <code-input> element with its
template and writes the resulting page. Use - to read the page from stdin.

With --watch the page is rendered again whenever the --config file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			if err := a.writePage(a.registry, source, output); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if a.configPath == "" || output == "" {
				return fmt.Errorf("page: --watch needs --config and --output")
			}
			return a.watchPage(cmd.Context(), source, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the config file changes")
	return cmd
}

func (a *app) parseDocument(reg *codeinput.Registry, source []byte) (*document.Document, error) {
	doc, err := document.Parse(bytes.NewReader(source), reg, document.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if pending := doc.Pending(); len(pending) > 0 {
		a.logger.Warn("widgets waiting for unregistered templates", "count", len(pending))
	}
	return doc, nil
}

func (a *app) writePage(reg *codeinput.Registry, source []byte, output string) error {
	doc, err := a.parseDocument(reg, source)
	if err != nil {
		return err
	}
	w, closeFn, err := a.output(output)
	if err != nil {
		return err
	}
	if err := doc.Render(w); err != nil {
		return errors.Join(err, closeFn())
	}
	if output == "" {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return closeFn()
}

func (a *app) watchPage(ctx context.Context, source []byte, output string) error {
	a.logger.Info("watching configuration", "path", a.configPath)
	return config.Watch(ctx, a.configPath, func(cfg *config.Config, err error) {
		if err != nil {
			a.logger.Error("reload failed", "error", err)
			return
		}
		reg, err := a.newRegistry(cfg)
		if err != nil {
			a.logger.Error("apply failed", "error", err)
			return
		}
		if err := a.writePage(reg, source, output); err != nil {
			a.logger.Error("render failed", "error", err)
			return
		}
		a.logger.Info("page rendered", "output", output, "templates", len(cfg.Templates))
	})
}
