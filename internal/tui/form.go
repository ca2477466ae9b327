package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/roost/internal/search"
)

const (
	fieldType = iota
	fieldMinBedrooms
	fieldMaxBedrooms
	fieldMinPrice
	fieldMaxPrice
	fieldAddedWithin
	fieldAddedSince
	fieldPostcode
	fieldKeywords
)

type formField struct {
	label string
	input textinput.Model
}

// searchForm is the stack of text inputs behind ViewSearch. Exactly one
// input is focused at a time.
type searchForm struct {
	fields   []formField
	focus    int
	defaults search.FormDefaults
}

func newSearchForm(d search.FormDefaults, withKeywords bool) *searchForm {
	layout := []struct {
		label, placeholder string
		limit              int
	}{
		fieldType:        {"Type", "Any, House or Flat", 8},
		fieldMinBedrooms: {"Min beds", fmt.Sprintf("%d", d.BedroomsMin), 2},
		fieldMaxBedrooms: {"Max beds", fmt.Sprintf("%d", d.BedroomsMax), 2},
		fieldMinPrice:    {"Min price", fmt.Sprintf("%d", d.PriceMin), 12},
		fieldMaxPrice:    {"Max price", fmt.Sprintf("%d", d.PriceMax), 12},
		fieldAddedWithin: {"Added within", "any, 7, 30, 90 or 365 days", 6},
		fieldAddedSince:  {"Added since", "YYYY-MM-DD", 10},
		fieldPostcode:    {"Postcode", "e.g. BR5", 4},
		fieldKeywords:    {"Keywords", "e.g. garden station", 120},
	}

	f := &searchForm{defaults: d}
	for i, s := range layout {
		if i == fieldKeywords && !withKeywords {
			break
		}
		ti := textinput.New()
		ti.Placeholder = s.placeholder
		ti.CharLimit = s.limit
		ti.Prompt = ""
		f.fields = append(f.fields, formField{label: s.label, input: ti})
	}
	f.fields[0].input.Focus()
	return f
}

func (f *searchForm) focusNext() { f.setFocus((f.focus + 1) % len(f.fields)) }

func (f *searchForm) focusPrev() { f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields)) }

func (f *searchForm) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = i
	f.fields[f.focus].input.Focus()
}

func (f *searchForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *searchForm) value(field int) string {
	if field >= len(f.fields) {
		return ""
	}
	return f.fields[field].input.Value()
}

func (f *searchForm) setValue(field int, v string) {
	if field < len(f.fields) {
		f.fields[field].input.SetValue(v)
	}
}

func (f *searchForm) input() search.FormInput {
	return search.FormInput{
		Type:        f.value(fieldType),
		MinBedrooms: f.value(fieldMinBedrooms),
		MaxBedrooms: f.value(fieldMaxBedrooms),
		MinPrice:    f.value(fieldMinPrice),
		MaxPrice:    f.value(fieldMaxPrice),
		AddedWithin: f.value(fieldAddedWithin),
		AddedSince:  f.value(fieldAddedSince),
		Postcode:    f.value(fieldPostcode),
	}
}

func (f *searchForm) keywords() string {
	return sanitizeKeywords(f.value(fieldKeywords))
}

// query builds the structured query and the free-text part of the form.
func (f *searchForm) query() (search.Query, string, error) {
	q, err := f.input().Query(f.defaults)
	if err != nil {
		return search.Query{}, "", err
	}
	return q, f.keywords(), nil
}

func (f *searchForm) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.setFocus(0)
}

func (f *searchForm) view(width int) string {
	inputWidth := width - 24
	if inputWidth > 48 {
		inputWidth = 48
	}
	if inputWidth < 10 {
		inputWidth = 10
	}

	rows := make([]string, 0, len(f.fields))
	for i := range f.fields {
		fld := &f.fields[i]
		fld.input.Width = inputWidth
		marker, label := "  ", LabelStyle.Render(fld.label)
		if i == f.focus {
			marker = HeaderStyle.Render("› ")
			label = LabelStyle.Foreground(AccentColor).Bold(true).Render(fld.label)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, marker, label, fld.input.View()))
	}
	return renderFormFrame(lipgloss.JoinVertical(lipgloss.Left, rows...), inputWidth+16)
}

// sanitizeKeywords trims, limits and collapses whitespace in free text.
func sanitizeKeywords(input string) string {
	input = strings.TrimSpace(input)
	if len(input) > 256 {
		input = input[:256]
	}
	return strings.Join(strings.Fields(input), " ")
}
