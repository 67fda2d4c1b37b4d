package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FieldSpec describes one form input
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
}

type formField struct {
	spec  FieldSpec
	input textinput.Model
}

// Form is a vertical list of text inputs with one focused field
type Form struct {
	fields []formField
	focus  int
}

var (
	nextFieldKey = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	prevFieldKey = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field"))
)

// NewForm builds a form with the first field focused
func NewForm(specs []FieldSpec) *Form {
	f := &Form{}
	for _, s := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = s.Placeholder
		ti.CharLimit = 24
		ti.Width = 24
		ti.SetValue(s.Value)
		f.fields = append(f.fields, formField{spec: s, input: ti})
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// Values returns the raw text of every field keyed by field key
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fld := range f.fields {
		out[fld.spec.Key] = fld.input.Value()
	}
	return out
}

// SetValue replaces the text of the named field
func (f *Form) SetValue(k, v string) {
	for i := range f.fields {
		if f.fields[i].spec.Key == k {
			f.fields[i].input.SetValue(v)
			return
		}
	}
}

// Focused returns the key of the focused field
func (f *Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].spec.Key
}

func (f *Form) moveFocus(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

// Update moves focus or forwards the key to the focused input
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, nextFieldKey):
			return f.moveFocus(1)
		case key.Matches(km, prevFieldKey):
			return f.moveFocus(-1)
		}
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// View renders one labelled input per line
func (f *Form) View() string {
	lines := make([]string, 0, len(f.fields))
	for i, fld := range f.fields {
		label := FieldLabelStyle.Render(fld.spec.Label)
		if i == f.focus {
			label = FocusedLabelStyle.Render("> " + fld.spec.Label)
		}
		lines = append(lines, label+fld.input.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fieldLabel turns a camelCase form name into a title ("otherIncome" -> "Other Income")
func fieldLabel(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			r = unicode.ToUpper(r)
		case unicode.IsUpper(r):
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
