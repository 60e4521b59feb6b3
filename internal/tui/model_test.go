package tui

import (
	"errors"
	"testing"

	"shoplist/internal/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel() Model {
	return NewModel(client.New("http://localhost:0/api"))
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func Test_Model_InitialViewShowsLoading(t *testing.T) {
	m := newTestModel()
	assert.Contains(t, m.View(), loadingMessage)
}

func Test_Model_ItemsLoaded(t *testing.T) {
	// given
	m := newTestModel()
	m.errMsg = errFetch
	// when
	m, cmd := update(t, m, itemsLoadedMsg{
		{ID: 1, Name: "Test Item", Quantity: 3, Purchased: false},
	})
	// then: the list renders and a successful fetch clears the error
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.Empty(t, m.errMsg)
	view := m.View()
	assert.Contains(t, view, "Test Item")
	assert.Contains(t, view, "× 3")
}

func Test_Model_EmptyListMessage(t *testing.T) {
	// given
	m := newTestModel()
	// when: the refresh after a delete returns an empty array
	m, _ = update(t, m, itemsLoadedMsg{})
	// then
	assert.Contains(t, m.View(), emptyListMessage)
}

func Test_Model_FetchFailureSetsError(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, fetchFailedMsg{err: errors.New("connection refused")})
	assert.False(t, m.loading)
	assert.Equal(t, errFetch, m.errMsg)
	assert.Contains(t, m.View(), errFetch)
}

func Test_Model_DeleteIssuesMutationThenRefresh(t *testing.T) {
	// given: one item loaded and selected
	m := newTestModel()
	m, _ = update(t, m, itemsLoadedMsg{{ID: 1, Name: "Test Item", Quantity: 1}})
	// when: the delete key is pressed
	m, cmd := update(t, m, keyMsg("d"))
	// then: a mutation command is issued
	require.NotNil(t, cmd)
	// and when the mutation completes, the model refetches the list
	_, refresh := update(t, m, mutationDoneMsg{act: actionDelete})
	assert.NotNil(t, refresh)
}

func Test_Model_MutationTransportFailure(t *testing.T) {
	testCases := []struct {
		name     string
		act      action
		expected string
	}{
		{"add failure", actionAdd, errAdd},
		{"update failure", actionUpdate, errUpdate},
		{"delete failure", actionDelete, errDelete},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			m := newTestModel()
			m, _ = update(t, m, itemsLoadedMsg{{ID: 1, Name: "Milk", Quantity: 1}})
			// when: the request never reached the server
			m, cmd := update(t, m, mutationFailedMsg{act: tc.act, err: errors.New("dial tcp: refused")})
			// then: no refresh, just the action-scoped error message
			assert.Nil(t, cmd)
			assert.Equal(t, tc.expected, m.errMsg)
		})
	}
}

func Test_Model_EditCursor(t *testing.T) {
	// given: two items, cursor on the second
	m := newTestModel()
	m, _ = update(t, m, itemsLoadedMsg{
		{ID: 1, Name: "Milk", Quantity: 1},
		{ID: 2, Name: "Bread", Quantity: 2},
	})
	m, _ = update(t, m, keyMsg("j"))
	// when: edit starts
	m, _ = update(t, m, keyMsg("e"))
	// then: the draft is seeded from the item's server-known values
	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, int64(2), m.editingID)
	assert.Equal(t, "Bread", m.nameInput.Value())
	assert.Equal(t, "2", m.qtyInput.Value())

	// when: cancel
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	// then: the draft is discarded without any network call
	assert.Nil(t, cmd)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, int64(0), m.editingID)
}

func Test_Model_SaveEditExitsOnCompletion(t *testing.T) {
	// given: an edit in progress
	m := newTestModel()
	m, _ = update(t, m, itemsLoadedMsg{{ID: 1, Name: "Milk", Quantity: 1}})
	m, _ = update(t, m, keyMsg("e"))
	// when: save is submitted
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, modeEdit, m.mode)
	// then: edit mode ends when the call completes, success or not
	m, refresh := update(t, m, mutationDoneMsg{act: actionUpdate})
	assert.Equal(t, modeBrowse, m.mode)
	assert.NotNil(t, refresh)
}

func Test_Model_AddFormValidation(t *testing.T) {
	// given: the add form is open with a blank name
	m := newTestModel()
	m, _ = update(t, m, itemsLoadedMsg{})
	m, _ = update(t, m, keyMsg("a"))
	m.nameInput.SetValue("   ")
	// when
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	// then: nothing is submitted
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.formErr)
	assert.Equal(t, modeAdd, m.mode)

	// and a non-numeric quantity is rejected too
	m.nameInput.SetValue("Milk")
	m.qtyInput.SetValue("abc")
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.formErr)
}

func Test_Model_ToggleSendsMutation(t *testing.T) {
	m := newTestModel()
	m, _ = update(t, m, itemsLoadedMsg{{ID: 1, Name: "Milk", Quantity: 1, Purchased: false}})
	_, cmd := update(t, m, keyMsg(" "))
	assert.NotNil(t, cmd)
}
