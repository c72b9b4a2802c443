package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a small vertical stack of text inputs with one focused field.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(specs ...fieldSpec) form {
	f := form{
		labels: make([]string, 0, len(specs)),
		inputs: make([]textinput.Model, 0, len(specs)),
	}

	for i, spec := range specs {
		input := textinput.New()
		input.Placeholder = spec.placeholder
		input.CharLimit = spec.limit
		if spec.secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '*'
		}
		if i == 0 {
			input.Focus()
		}
		f.labels = append(f.labels, spec.label)
		f.inputs = append(f.inputs, input)
	}

	return f
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (f *form) next() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

func (f *form) prev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *form) setFocus(index int) {
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = index
}

func (f form) value(index int) string {
	return f.inputs[index].Value()
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}
