package preview

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

// Filters available to page templates. Each takes a widget instance.
const (
	FilterWidgetHTML     = "widget_html"
	FilterWidgetLanguage = "widget_language"
	FilterWidgetLength   = "widget_length"
)

// PlainTextLabel is shown by widget_language for instances without a lang.
const PlainTextLabel = "plain text"

var (
	filtersOnce sync.Once
	filtersErr  error
)

// registerWidgetFilters installs the widget filters once; pongo2 filters
// are process wide.
func registerWidgetFilters() error {
	filtersOnce.Do(func() {
		for name, fn := range map[string]pongo2.FilterFunction{
			FilterWidgetHTML:     filterWidgetHTML,
			FilterWidgetLanguage: filterWidgetLanguage,
			FilterWidgetLength:   filterWidgetLength,
		} {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				filtersErr = fmt.Errorf("preview: register filter %q: %w", name, err)
				return
			}
		}
	})
	return filtersErr
}

func instanceOf(name string, in *pongo2.Value) (*codeinput.Instance, *pongo2.Error) {
	if in == nil || in.IsNil() {
		return nil, nil
	}
	inst, ok := in.Interface().(*codeinput.Instance)
	if !ok {
		return nil, &pongo2.Error{
			Sender:    "filter:" + name,
			OrigError: fmt.Errorf("expected *codeinput.Instance, got %T", in.Interface()),
		}
	}
	return inst, nil
}

// filterWidgetHTML renders the instance host element, surfaces included.
func filterWidgetHTML(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	inst, perr := instanceOf(FilterWidgetHTML, in)
	if perr != nil {
		return nil, perr
	}
	if inst == nil {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(inst.Host().OuterHTML()), nil
}

func filterWidgetLanguage(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	inst, perr := instanceOf(FilterWidgetLanguage, in)
	if perr != nil {
		return nil, perr
	}
	if inst == nil || inst.Lang() == "" {
		return pongo2.AsValue(PlainTextLabel), nil
	}
	return pongo2.AsValue(inst.Lang()), nil
}

// filterWidgetLength counts characters of the instance value.
func filterWidgetLength(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	inst, perr := instanceOf(FilterWidgetLength, in)
	if perr != nil {
		return nil, perr
	}
	if inst == nil {
		return pongo2.AsValue(0), nil
	}
	return pongo2.AsValue(utf8.RuneCountInString(inst.Value())), nil
}
