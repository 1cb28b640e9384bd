package core

// Kind identifies a widget kind. The set is closed: adding a kind means
// adding a Variant and handling it wherever kinds are switched over.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindButton
	KindInput
	KindLink
	KindDialog
	KindPopover
	KindToolbar
	KindMenu
	KindMenuItem
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindButton:
		return "button"
	case KindInput:
		return "input"
	case KindLink:
		return "link"
	case KindDialog:
		return "dialog"
	case KindPopover:
		return "popover"
	case KindToolbar:
		return "toolbar"
	case KindMenu:
		return "menu"
	case KindMenuItem:
		return "menuitem"
	default:
		return "unknown"
	}
}

// Variant is the widget-specific part of a configuration.
type Variant interface {
	Kind() Kind
	sealed()
}

// Element is a plain host element with the given tag.
type Element struct {
	Tag string
}

// Text is a text node.
type Text struct {
	Content string
}

// Button is a push button.
type Button struct {
	Label string
}

// Input is a form input.
type Input struct {
	Type        string
	Value       string
	Placeholder string
}

// Link is an anchor.
type Link struct {
	Href  string
	Label string
}

// Dialog is a native dialog element.
type Dialog struct {
	Modal bool
}

// Popover is a lightweight floating panel.
type Popover struct {
	// Manual disables light dismiss.
	Manual bool
}

// Toolbar groups controls with a single roving tab stop.
type Toolbar struct {
	Vertical bool
}

// Menu is a list of menu items.
type Menu struct{}

// MenuItem is an entry in a Menu.
type MenuItem struct {
	Label string
}

func (Element) Kind() Kind  { return KindElement }
func (Text) Kind() Kind     { return KindText }
func (Button) Kind() Kind   { return KindButton }
func (Input) Kind() Kind    { return KindInput }
func (Link) Kind() Kind     { return KindLink }
func (Dialog) Kind() Kind   { return KindDialog }
func (Popover) Kind() Kind  { return KindPopover }
func (Toolbar) Kind() Kind  { return KindToolbar }
func (Menu) Kind() Kind     { return KindMenu }
func (MenuItem) Kind() Kind { return KindMenuItem }

func (Element) sealed()  {}
func (Text) sealed()     {}
func (Button) sealed()   {}
func (Input) sealed()    {}
func (Link) sealed()     {}
func (Dialog) sealed()   {}
func (Popover) sealed()  {}
func (Toolbar) sealed()  {}
func (Menu) sealed()     {}
func (MenuItem) sealed() {}
