// Package page wires interactive behavior onto a dashboard page.
//
// Init is called once by the host with the document it should operate on.
// Nothing is bound implicitly at load time.
package page

import "strings"

// DefaultApplyButtonID is the id of the "apply filters" control.
const DefaultApplyButtonID = "apply-filters"

// KeyEvent describes a key press delivered to an element.
type KeyEvent struct {
	Key string
}

// Element is a node of a page document.
type Element interface {
	ID() string
	TagName() string
	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)
	OnKeyPress(handler func(KeyEvent))
	Click()
}

// Document is the root a page is initialised against.
type Document interface {
	// Elements returns every element in document order.
	Elements() []Element
	// ElementByID returns the element with the given id, or nil.
	ElementByID(id string) Element
}

// TooltipFunc attaches a tooltip widget to an element.
type TooltipFunc func(Element)

// Options configures Init.
type Options struct {
	// ApplyButtonID defaults to DefaultApplyButtonID.
	ApplyButtonID string
	// Tooltip is called once per tooltip trigger. Nil skips tooltip activation.
	Tooltip TooltipFunc
}

// Result reports what Init bound.
type Result struct {
	Tooltips     int
	SearchInputs int
}

// Init activates tooltips and binds the Enter shortcut on doc.
func Init(doc Document, opts Options) Result {
	applyID := opts.ApplyButtonID
	if applyID == "" {
		applyID = DefaultApplyButtonID
	}

	var res Result
	if opts.Tooltip != nil {
		res.Tooltips = ActivateTooltips(doc, opts.Tooltip)
	}
	res.SearchInputs = BindEnterToApply(doc, applyID)
	return res
}

// ActivateTooltips calls attach for every element flagged with
// data-bs-toggle="tooltip" and returns how many were found.
func ActivateTooltips(doc Document, attach TooltipFunc) int {
	n := 0
	for _, el := range doc.Elements() {
		if v, ok := el.Attr("data-bs-toggle"); ok && v == "tooltip" {
			attach(el)
			n++
		}
	}
	return n
}

// BindEnterToApply makes Enter in any text input click the element with id
// applyID. The control is looked up when the key is pressed; if it is absent
// the key press does nothing. It returns the number of inputs bound.
func BindEnterToApply(doc Document, applyID string) int {
	n := 0
	for _, el := range doc.Elements() {
		if !isTextInput(el) {
			continue
		}
		el.OnKeyPress(func(e KeyEvent) {
			if e.Key != "Enter" {
				return
			}
			if button := doc.ElementByID(applyID); button != nil {
				button.Click()
			}
		})
		n++
	}
	return n
}

func isTextInput(el Element) bool {
	if !strings.EqualFold(el.TagName(), "input") {
		return false
	}
	t, ok := el.Attr("type")
	return ok && strings.EqualFold(t, "text")
}
