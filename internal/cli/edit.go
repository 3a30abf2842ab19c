package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codeinput/internal/prompt"
	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

func (a *app) editCommand() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a snippet interactively and watch the overlay update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.edit(cmd, lang)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "initial language")
	return cmd
}

func (a *app) edit(cmd *cobra.Command, lang string) error {
	ctx := cmd.Context()
	driver := a.prompts()

	names := a.registry.Names()
	if len(names) == 0 {
		return fmt.Errorf("edit: no templates registered")
	}
	defaultName, _ := a.registry.Default()
	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Template",
		Options:      names,
		DefaultIndex: prompt.IndexOf(names, defaultName),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(names) {
		return fmt.Errorf("edit: invalid template selection")
	}

	lang, err = driver.Input(ctx, prompt.InputConfig{Message: "Language", Default: lang})
	if err != nil {
		return err
	}

	host := dom.NewElement("code-input")
	host.SetAttribute(codeinput.AttrTemplate, names[idx])
	setIfNotEmpty(host, codeinput.AttrLang, lang)
	inst := a.registry.NewInstance(host)
	inst.Attach()
	defer inst.Detach()

	for {
		value, err := driver.TextArea(ctx, prompt.TextAreaConfig{Message: "Code", Default: inst.Value()})
		if err != nil {
			return err
		}
		inst.Input(value)
		if err := driver.Info(ctx, inst.Overlay().InnerHTML()); err != nil {
			return err
		}

		again, err := driver.Confirm(ctx, prompt.ConfirmConfig{Message: "Keep editing?"})
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}

	_, err = fmt.Fprintln(a.out, inst.Host().OuterHTML())
	return err
}
