package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestForm() *FormModel {
	form := NewFormModel("Test Form")
	form.AddField("first", "First", "first help")
	form.AddField("second", "Second", "")
	return form
}

func TestFormModel_Typing(t *testing.T) {
	form := newTestForm()

	form.Update(typed("abc"))
	form.Update(tab)
	form.Update(typed("xyz"))

	assert.Equal(t, "abc", form.GetFieldValue("first"))
	assert.Equal(t, "xyz", form.GetFieldValue("second"))
	assert.Equal(t, FormEditing, form.State())
}

func TestFormModel_FocusWraps(t *testing.T) {
	form := newTestForm()

	form.Update(tab)
	form.Update(tab)
	form.Update(typed("a"))
	assert.Equal(t, "a", form.GetFieldValue("first"))

	form.Update(keyOf(tea.KeyShiftTab))
	form.Update(typed("b"))
	assert.Equal(t, "b", form.GetFieldValue("second"))
}

func TestFormModel_SetFieldValue(t *testing.T) {
	form := newTestForm()

	form.SetFieldValue("first", "hello")
	form.Update(typed("!"))
	assert.Equal(t, "hello!", form.GetFieldValue("first"), "cursor is moved to the end")

	form.SetFieldValue("missing", "x")
	assert.Empty(t, form.GetFieldValue("missing"))
}

func TestFormModel_FocusField(t *testing.T) {
	form := newTestForm()

	form.FocusField("second")
	form.Update(typed("x"))
	assert.Equal(t, "x", form.GetFieldValue("second"))
	assert.Empty(t, form.GetFieldValue("first"))
}

func TestFormModel_SubmitAndCancel(t *testing.T) {
	form := newTestForm()

	form.Update(enter)
	assert.Equal(t, FormSubmitted, form.State())

	form.Reopen()
	assert.Equal(t, FormEditing, form.State())

	form.Update(esc)
	assert.Equal(t, FormCancelled, form.State())
}

func TestFormModel_View(t *testing.T) {
	form := newTestForm()
	form.SetSize(60, 20)
	form.SetHint("custom hint")

	view := form.View()
	assert.Contains(t, view, "Test Form")
	assert.Contains(t, view, "First")
	assert.Contains(t, view, "first help")
	assert.Contains(t, view, "custom hint")
}

func TestMessageBox(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want bool
	}{
		{"enter", enter, true},
		{"esc", esc, true},
		{"space", space, true},
		{"other", typed("q"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewMessageBox("Netlist", "Something happened", "error")
			box.Update(tt.msg)
			assert.Equal(t, tt.want, box.Closed())
		})
	}
}

func TestMessageBox_View(t *testing.T) {
	box := NewMessageBox("Netlist", "Schematic netlist not available", "warning")
	box.SetSize(72, 20)
	box.SetTheme(NewDefaultTheme())

	view := box.View()
	require.NotEmpty(t, view)
	assert.Contains(t, view, "Netlist")
	assert.Contains(t, view, "Schematic netlist not available")
	assert.Contains(t, view, "press enter to continue")
	assert.Equal(t, "Schematic netlist not available", box.text)
}
