package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
	"github.com/goliatone/go-codeinput/pkg/dom"
)

type renderFlags struct {
	template    string
	lang        string
	value       string
	file        string
	placeholder string
	name        string
	attrs       map[string]string
	overlay     bool
}

func (a *app) renderCommand() *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single widget",
		Example: `  codeinput render --lang go --value 'fmt.Println("hi")'
  codeinput render --template limited --attr data-character-limit=10 --file note.txt
  cat main.go | codeinput render --lang go --file - --overlay`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			host := dom.NewElement("code-input")
			if cmd.Flags().Changed("template") {
				host.SetAttribute(codeinput.AttrTemplate, flags.template)
			}
			for key, value := range flags.attrs {
				host.SetAttribute(key, value)
			}
			setIfNotEmpty(host, codeinput.AttrLang, flags.lang)
			setIfNotEmpty(host, codeinput.AttrPlaceholder, flags.placeholder)
			setIfNotEmpty(host, codeinput.AttrName, flags.name)

			value := flags.value
			if flags.file != "" {
				data, err := a.readInput(flags.file)
				if err != nil {
					return err
				}
				value = string(data)
			}
			host.SetAttribute(codeinput.AttrValue, value)

			inst := a.registry.NewInstance(host)
			inst.Attach()
			if inst.State() != codeinput.StateReady {
				inst.Detach()
				return unresolvedTemplate(host)
			}

			out := host.OuterHTML()
			if flags.overlay {
				out = inst.Overlay().InnerHTML()
			}
			_, err := fmt.Fprintln(a.out, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "registered template name (default template when omitted)")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "language of the snippet")
	cmd.Flags().StringVar(&flags.value, "value", "", "snippet text")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the snippet from a file, - for stdin")
	cmd.Flags().StringVar(&flags.placeholder, "placeholder", "", "placeholder shown while empty")
	cmd.Flags().StringVar(&flags.name, "name", "", "form field name of the editable surface")
	cmd.Flags().StringToStringVar(&flags.attrs, "attr", nil, "extra host attributes, key=value")
	cmd.Flags().BoolVar(&flags.overlay, "overlay", false, "print only the overlay markup")
	return cmd
}

func setIfNotEmpty(el *dom.Element, name, value string) {
	if strings.TrimSpace(value) != "" {
		el.SetAttribute(name, value)
	}
}

func unresolvedTemplate(host *dom.Element) error {
	if name, ok := host.Attribute(codeinput.AttrTemplate); ok {
		return fmt.Errorf("render: template %q is not registered", name)
	}
	return errors.New("render: no template requested and no default template registered")
}
