package core

import "strings"

// NewElement returns a plain element with the given tag.
func NewElement(tag string) Config {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return New(Element{Tag: "div"}).fail("core.NewElement", "empty tag")
	}
	return New(Element{Tag: tag})
}

// NewDiv returns a div element.
func NewDiv() Config {
	return New(Element{Tag: "div"})
}

// NewText returns a text node.
func NewText(content string) Config {
	return New(Text{Content: content})
}

// NewButton returns a button with a text label.
func NewButton(label string) Config {
	return New(Button{Label: label})
}

// NewInput returns an input of the given type ("text" when empty).
func NewInput(inputType string) Config {
	if inputType == "" {
		inputType = "text"
	}
	return New(Input{Type: inputType})
}

// NewLink returns an anchor.
func NewLink(href, label string) Config {
	return New(Link{Href: href, Label: label})
}

// NewDialog returns a dialog. Modal dialogs trap focus when shown.
func NewDialog(modal bool) Config {
	return New(Dialog{Modal: modal})
}

// NewPopover returns a popover panel.
func NewPopover() Config {
	return New(Popover{})
}

// NewToolbar returns a horizontal toolbar.
func NewToolbar() Config {
	return New(Toolbar{})
}

// NewMenu returns an empty menu.
func NewMenu() Config {
	return New(Menu{})
}

// NewMenuItem returns a menu entry.
func NewMenuItem(label string) Config {
	return New(MenuItem{Label: label})
}
