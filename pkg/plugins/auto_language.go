package plugins

import (
	"strings"

	"github.com/goliatone/go-codeinput/pkg/codeinput"
)

// AttrDataLanguage is observed by AutoLanguage.
const AttrDataLanguage = "data-language"

// AutoLanguage mirrors the data-language attribute onto lang.
type AutoLanguage struct{}

// NewAutoLanguage returns the data-language mirror plugin.
func NewAutoLanguage() *AutoLanguage { return &AutoLanguage{} }

func (AutoLanguage) ObservedAttributes() []string { return []string{AttrDataLanguage} }

func (AutoLanguage) AfterElementsAdded(inst *codeinput.Instance) {
	mirror(inst, inst.Attribute(AttrDataLanguage))
}

func (AutoLanguage) AttributeChanged(inst *codeinput.Instance, name, _, newValue string) {
	if name != AttrDataLanguage {
		return
	}
	mirror(inst, newValue)
}

func mirror(inst *codeinput.Instance, lang string) {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.EqualFold(lang, inst.Lang()) {
		return
	}
	inst.SetAttribute(codeinput.AttrLang, lang)
}
