package page

import "testing"

func dashboard(withButton bool) (*Tree, *Node, *Node, *Node) {
	search := NewNode("input", map[string]string{"type": "text", "id": "search"})
	league := NewNode("INPUT", map[string]string{"type": "TEXT"})
	checkbox := NewNode("input", map[string]string{"type": "checkbox"})
	help := NewNode("span", map[string]string{"data-bs-toggle": "tooltip", "title": "Comma-separated"})
	popover := NewNode("span", map[string]string{"data-bs-toggle": "popover"})
	button := NewNode("button", map[string]string{"id": DefaultApplyButtonID})

	form := NewNode("form", nil, search, league, checkbox, help, popover)
	if withButton {
		form.Children = append(form.Children, button)
	}
	return NewTree(NewNode("body", nil, form)), search, league, button
}

func TestActivateTooltips(t *testing.T) {
	doc, _, _, _ := dashboard(true)

	var attached []string
	n := ActivateTooltips(doc, func(el Element) {
		title, _ := el.Attr("title")
		attached = append(attached, title)
	})

	if n != 1 {
		t.Errorf("expected 1 tooltip, got %d", n)
	}
	if len(attached) != 1 || attached[0] != "Comma-separated" {
		t.Errorf("unexpected tooltips %v", attached)
	}
}

func TestBindEnterToApply(t *testing.T) {
	doc, search, league, button := dashboard(true)

	if n := BindEnterToApply(doc, DefaultApplyButtonID); n != 2 {
		t.Fatalf("expected 2 text inputs bound, got %d", n)
	}

	search.Press("a")
	if button.Clicks() != 0 {
		t.Error("non-Enter key must not click the apply control")
	}

	search.Press("Enter")
	league.Press("Enter")
	if button.Clicks() != 2 {
		t.Errorf("expected 2 clicks, got %d", button.Clicks())
	}
}

func TestBindEnterToApply_MissingControl(t *testing.T) {
	doc, search, _, button := dashboard(false)

	BindEnterToApply(doc, DefaultApplyButtonID)
	search.Press("Enter")

	if button.Clicks() != 0 {
		t.Error("detached control must not be clicked")
	}
}

func TestInit(t *testing.T) {
	doc, search, _, button := dashboard(true)

	applied := false
	button.OnClick(func() { applied = true })

	res := Init(doc, Options{Tooltip: func(Element) {}})
	if res.Tooltips != 1 || res.SearchInputs != 2 {
		t.Errorf("unexpected result %+v", res)
	}

	search.Press("Enter")
	if !applied {
		t.Error("expected Enter to apply filters")
	}
}

func TestInit_NoTooltipFunc(t *testing.T) {
	doc, _, _, _ := dashboard(true)

	if res := Init(doc, Options{}); res.Tooltips != 0 {
		t.Errorf("expected tooltips skipped, got %d", res.Tooltips)
	}
}
