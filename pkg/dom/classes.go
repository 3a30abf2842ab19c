package dom

import (
	"slices"
	"strings"
)

// Classes returns the element's class tokens in attribute order.
func (e *Element) Classes() []string {
	return strings.Fields(e.GetAttribute("class"))
}

// HasClass reports whether the class token is present.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes(), class)
}

// AddClass appends class tokens that are not already present.
func (e *Element) AddClass(classes ...string) {
	current := e.Classes()
	changed := false
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" || slices.Contains(current, class) {
			continue
		}
		current = append(current, class)
		changed = true
	}
	if changed {
		e.SetAttribute("class", strings.Join(current, " "))
	}
}

// RemoveClass drops class tokens. The attribute is removed once empty.
func (e *Element) RemoveClass(classes ...string) {
	current := e.Classes()
	if len(current) == 0 {
		return
	}
	kept := current[:0]
	for _, class := range current {
		if slices.Contains(classes, class) {
			continue
		}
		kept = append(kept, class)
	}
	if len(kept) == len(current) {
		return
	}
	if len(kept) == 0 {
		e.RemoveAttribute("class")
		return
	}
	e.SetAttribute("class", strings.Join(kept, " "))
}

// ToggleClass adds the class when on is true and removes it otherwise.
func (e *Element) ToggleClass(class string, on bool) {
	if on {
		e.AddClass(class)
		return
	}
	e.RemoveClass(class)
}
