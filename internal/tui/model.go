// Package tui implements the interactive terminal client for the
// shopping list. The model owns the item list, the add and edit drafts,
// and a single error slot; every mutation is followed by a full refetch
// so the view always reflects server state.
package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"shoplist/internal/client"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

type action int

const (
	actionAdd action = iota
	actionUpdate
	actionDelete
)

const (
	errFetch  = "Failed to fetch shopping items"
	errAdd    = "Failed to add item"
	errUpdate = "Failed to update item"
	errDelete = "Failed to delete item"
)

const requestTimeout = 10 * time.Second

// Messages delivered by the async API commands.
type itemsLoadedMsg []client.Item

type fetchFailedMsg struct{ err error }

// mutationDoneMsg means the server answered, whatever the status; the
// follow-up refetch shows the server's truth.
type mutationDoneMsg struct{ act action }

// mutationFailedMsg means the request never completed (transport error).
type mutationFailedMsg struct {
	act action
	err error
}

type Model struct {
	api *client.Client

	items   []client.Item
	loading bool
	errMsg  string

	cursor int
	mode   mode

	// Shared add/edit form; editingID is the global edit cursor.
	nameInput textinput.Model
	qtyInput  textinput.Model
	focusQty  bool
	formErr   string
	editingID int64
}

// NewModel creates the initial model around an API client.
func NewModel(api *client.Client) Model {
	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Item name"
	name.CharLimit = 200

	qty := textinput.New()
	qty.Prompt = "> "
	qty.Placeholder = "1"
	qty.CharLimit = 6

	return Model{
		api:       api,
		loading:   true,
		nameInput: name,
		qtyInput:  qty,
	}
}

// Init issues the initial list fetch.
func (m Model) Init() tea.Cmd {
	return fetchItems(m.api)
}

func fetchItems(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := api.List(ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}
		return itemsLoadedMsg(items)
	}
}

// mutation wraps an API call: a transport failure becomes
// mutationFailedMsg, anything the server answered becomes mutationDoneMsg.
func mutation(act action, call func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := call(ctx); err != nil {
			var apiErr *client.APIError
			if !errors.As(err, &apiErr) {
				return mutationFailedMsg{act: act, err: err}
			}
		}
		return mutationDoneMsg{act: act}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		m.items = msg
		m.loading = false
		m.errMsg = ""
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case fetchFailedMsg:
		m.loading = false
		m.errMsg = errFetch
		return m, nil

	case mutationDoneMsg:
		m = m.exitForm()
		return m, fetchItems(m.api)

	case mutationFailedMsg:
		m = m.exitForm()
		m.errMsg = actionError(msg.act)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateForm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "r":
		return m, fetchItems(m.api)

	case " ":
		if item, ok := m.selected(); ok {
			return m, m.toggleCmd(item)
		}

	case "d":
		if item, ok := m.selected(); ok {
			id := item.ID
			return m, mutation(actionDelete, func(ctx context.Context) error {
				_, err := m.api.Delete(ctx, id)
				return err
			})
		}

	case "a":
		m.mode = modeAdd
		m.formErr = ""
		m.nameInput.SetValue("")
		m.qtyInput.SetValue("1")
		m.focusQty = false
		m.nameInput.Focus()
		m.qtyInput.Blur()
		return m, nil

	case "e":
		if item, ok := m.selected(); ok {
			// Seed the draft from the server-known values.
			m.mode = modeEdit
			m.editingID = item.ID
			m.formErr = ""
			m.nameInput.SetValue(item.Name)
			m.nameInput.CursorEnd()
			m.qtyInput.SetValue(strconv.FormatInt(item.Quantity, 10))
			m.focusQty = false
			m.nameInput.Focus()
			m.qtyInput.Blur()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: discard the draft, no network call.
		m = m.exitForm()
		return m, nil

	case "tab", "shift+tab":
		m.focusQty = !m.focusQty
		if m.focusQty {
			m.nameInput.Blur()
			m.qtyInput.Focus()
		} else {
			m.qtyInput.Blur()
			m.nameInput.Focus()
		}
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.formErr = "Name cannot be empty"
			return m, nil
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(m.qtyInput.Value()), 10, 64)
		if err != nil || qty < 1 {
			m.formErr = "Quantity must be at least 1"
			return m, nil
		}
		if m.mode == modeEdit {
			id := m.editingID
			// Save sends name and quantity only, never the purchased flag.
			return m, mutation(actionUpdate, func(ctx context.Context) error {
				_, err := m.api.Update(ctx, id, client.UpdateRequest{Name: &name, Quantity: &qty})
				return err
			})
		}
		return m, mutation(actionAdd, func(ctx context.Context) error {
			_, err := m.api.Create(ctx, name, qty)
			return err
		})
	}

	var cmd tea.Cmd
	if m.focusQty {
		m.qtyInput, cmd = m.qtyInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

// toggleCmd sends the whole item back with the purchased flag inverted.
func (m Model) toggleCmd(item client.Item) tea.Cmd {
	name := item.Name
	qty := item.Quantity
	purchased := !item.Purchased
	id := item.ID
	return mutation(actionUpdate, func(ctx context.Context) error {
		_, err := m.api.Update(ctx, id, client.UpdateRequest{
			Name:      &name,
			Quantity:  &qty,
			Purchased: &purchased,
		})
		return err
	})
}

func (m Model) selected() (client.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return client.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m Model) exitForm() Model {
	m.mode = modeBrowse
	m.editingID = 0
	m.formErr = ""
	m.nameInput.Blur()
	m.qtyInput.Blur()
	return m
}

func actionError(act action) string {
	switch act {
	case actionAdd:
		return errAdd
	case actionDelete:
		return errDelete
	default:
		return errUpdate
	}
}
