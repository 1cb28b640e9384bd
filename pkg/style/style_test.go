package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassesAddIsIdempotent(t *testing.T) {
	c := Classes{}.Add("pwt-grid")
	for range 5 {
		c = c.Add("pwt-grid")
	}
	assert.Equal(t, 1, c.Len())

	c = c.Add("striped hover", "hover")
	assert.Equal(t, []string{"pwt-grid", "striped", "hover"}, c.Names())
	assert.Equal(t, "pwt-grid striped hover", c.String())
}

func TestClassesCopyOnWrite(t *testing.T) {
	base := Classes{}.Add("a")
	derived := base.Add("b")
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, derived.Len())
}

func TestAttributesOverwriteKeepsPosition(t *testing.T) {
	a := Attributes{}.
		Set("id", String("x")).
		Set("tabindex", Int(0)).
		Set("id", String("y"))

	got := a.List()
	require.Len(t, got, 2)
	assert.Equal(t, "id", got[0].Key)
	assert.Equal(t, "y", got[0].Value.Text())
	assert.Equal(t, "0", got[1].Value.Text())

	removed := a.Remove("id")
	assert.Equal(t, 1, removed.Len())
	assert.Equal(t, 2, a.Len(), "remove must not touch the receiver")
}

func TestStylesLastWriteWins(t *testing.T) {
	s := Styles{}.Set("height", "20px").Set("width", "10px").Set("height", "30px")
	assert.Equal(t, "height: 30px;width: 10px;", s.Compile(""))

	s = s.Set("width", "")
	assert.Equal(t, "height: 30px;", s.Compile(""))
}

func TestValidateStyle(t *testing.T) {
	assert.NoError(t, ValidateStyle("min-height", "2em"))
	assert.Error(t, ValidateStyle("", "x"))
	assert.Error(t, ValidateStyle("height;", "1px"))
	assert.Error(t, ValidateStyle("height", "1px; color: red"))
}

func TestAriaKeyNormalization(t *testing.T) {
	assert.Equal(t, "aria-selected", AriaKey("selected"))
	assert.Equal(t, "aria-sort", AriaKey("aria-sort"))
	assert.Equal(t, "aria-label", AriaKey(" Label "))

	a := Aria{}.WithRole("row").Set("selected", Bool(true))
	v, ok := a.Get("aria-selected")
	require.True(t, ok)
	assert.True(t, v.Truthy())
	assert.Equal(t, "row", a.WithRole("").Role)
}

func TestComposeOrder(t *testing.T) {
	s := Set{
		Attributes: Attributes{}.
			Set("id", String("grid-1")).
			Set("class", String("user")).
			Set("disabled", Bool(false)).
			Set("hidden", Bool(true)).
			Set("style", String("color: red;")),
		Classes: Classes{}.Add("pwt-grid", "user"),
		Styles:  Styles{}.Set("height", "100px"),
		Aria:    Aria{}.WithRole("grid").Set("rowcount", Int(3)).Set("multiselectable", Bool(false)),
	}

	got := Compose(s)
	keys := make([]string, len(got))
	for i, a := range got {
		keys[i] = a.Key
	}
	assert.Equal(t, []string{"id", "hidden", "class", "style", "role", "aria-rowcount", "aria-multiselectable"}, keys)
	assert.Equal(t, "user pwt-grid", got[2].Value.Text())
	assert.Equal(t, "height: 100px;color: red;", got[3].Value.Text())
	assert.Equal(t, "false", got[6].Value.Text())
}

func TestValueForms(t *testing.T) {
	assert.False(t, Bool(false).Present())
	assert.True(t, Bool(true).Present())
	assert.True(t, String("").Present())
	assert.True(t, String("true").Truthy())
	assert.Equal(t, "42", Int(42).Text())
}

func TestComposeAriaPropReplacesExplicitAttribute(t *testing.T) {
	s := Set{
		Attributes: Attributes{}.Set("aria-label", String("a")).Set("id", String("x")),
		Aria:       Aria{}.Set("label", String("b")).Set("hidden", Bool(false)),
	}
	got := Compose(s)
	assert.Equal(t, []Attr{
		{Key: "aria-label", Value: String("b")},
		{Key: "id", Value: String("x")},
		{Key: "aria-hidden", Value: String("false")},
	}, got)
}
