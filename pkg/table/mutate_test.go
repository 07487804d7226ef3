package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

func TestToggleSelection(t *testing.T) {
	c := annAndBo(t)

	assert.True(t, c.ToggleSelection(1))
	assert.True(t, c.Rows()[0].Selected)
	assert.False(t, c.Rows()[1].Selected)

	assert.True(t, c.ToggleSelection(1))
	assert.False(t, c.Rows()[0].Selected)

	assert.False(t, c.ToggleSelection(99), "absent id is a no-op")
	assert.False(t, c.ToggleSelection("1"), "string id does not match a numeric identifier")
}

func TestToggleAllOnCurrentPage(t *testing.T) {
	c := newController(t, records(15)...)

	require.True(t, c.ToggleAllOnCurrentPage())
	assert.True(t, c.AllSelectedInPage())
	assert.Equal(t, 10, c.TotalSelected())

	// Only the current page is affected.
	require.True(t, c.MoveNext())
	assert.False(t, c.AllSelectedInPage())
	for _, r := range c.PageRows() {
		assert.False(t, r.Selected)
	}

	require.True(t, c.MoveFirst())
	require.True(t, c.ToggleAllOnCurrentPage())
	assert.Equal(t, 0, c.TotalSelected())
}

func TestToggleAllOnCurrentPage_PartialSelectionSelectsAll(t *testing.T) {
	c := newController(t, records(5)...)
	c.ToggleSelection(2)
	c.ToggleSelection(4)

	require.True(t, c.ToggleAllOnCurrentPage())
	assert.Equal(t, 5, c.TotalSelected())
}

func TestToggleAllOnCurrentPage_TwiceRestoresState(t *testing.T) {
	for _, preselected := range [][]int{{}, {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}} {
		c := newController(t, records(12)...)
		for _, id := range preselected {
			c.ToggleSelection(id)
		}
		before := c.Rows()

		require.True(t, c.ToggleAllOnCurrentPage())
		require.True(t, c.ToggleAllOnCurrentPage())

		assert.Equal(t, before, c.Rows())
	}
}

func TestToggleAllOnCurrentPage_RespectsSearch(t *testing.T) {
	c := newController(t, records(20)...)
	c.SetSearch("user1")

	require.True(t, c.ToggleAllOnCurrentPage())
	assert.ElementsMatch(t, []any{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, c.SelectedIDs())
}

func TestToggleAllOnCurrentPage_EmptyPage(t *testing.T) {
	c := newController(t)
	assert.False(t, c.ToggleAllOnCurrentPage())
	assert.False(t, c.AllSelectedInPage())
}

func TestEditLifecycle(t *testing.T) {
	c := annAndBo(t)

	require.True(t, c.EnterEditMode(1))
	require.True(t, c.EnterEditMode(2))
	rows := c.Rows()
	assert.True(t, rows[0].Editable)
	assert.True(t, rows[1].Editable, "edit mode is not exclusive")

	require.True(t, c.CommitEdit(1, "name", "An"))
	require.True(t, c.CommitEdit(1, "name", "Anne"))
	rows = c.Rows()
	assert.Equal(t, "Anne", rows[0].Record["name"])
	assert.True(t, rows[0].Editable, "commit does not leave edit mode")

	require.True(t, c.SaveRow(1))
	rows = c.Rows()
	assert.False(t, rows[0].Editable)
	assert.True(t, rows[1].Editable, "saving one row leaves the other in edit mode")
	assert.Equal(t, "Anne", rows[0].Record["name"])

	assert.False(t, c.EnterEditMode(3))
	assert.False(t, c.SaveRow(3))
}

func TestCommitEdit_Isolation(t *testing.T) {
	c := newController(t,
		types.Record{"id": 1, "name": "Ann", "email": "ann@example.com", "role": "admin"},
		types.Record{"id": 2, "name": "Bo", "email": "bo@example.com", "role": "user"},
	)
	c.ToggleSelection(1)
	before := c.Rows()

	require.True(t, c.CommitEdit(1, "email", "ann@new.example.com"))

	after := c.Rows()
	assert.Equal(t, before[1], after[1], "other rows unchanged")
	assert.Equal(t, before[0].Selected, after[0].Selected)
	assert.Equal(t, before[0].Editable, after[0].Editable)

	want := before[0].Record.Clone()
	want["email"] = "ann@new.example.com"
	assert.Equal(t, want, after[0].Record)
}

func TestCommitEdit_Rejections(t *testing.T) {
	c := annAndBo(t)

	assert.False(t, c.CommitEdit(1, "nickname", "x"), "unknown field keeps the record shape")
	assert.False(t, c.CommitEdit(9, "name", "x"), "absent row")
	assert.False(t, c.CommitEdit(1, "id", 2), "identifier collision")
	assert.False(t, c.CommitEdit(1, "id", map[string]any{}), "non-scalar identifier")

	assert.Equal(t, types.Record{"id": 1, "name": "Ann"}, c.Rows()[0].Record)
}

func TestCommitEdit_Identifier(t *testing.T) {
	c := annAndBo(t)

	require.True(t, c.CommitEdit(1, "id", 10))
	assert.True(t, c.Contains(10))
	assert.False(t, c.Contains(1))
	require.True(t, c.CommitEdit(10, "id", 10.0), "same value is not a collision with itself")
}

func TestDeleteRow(t *testing.T) {
	c := newController(t, records(3)...)
	c.ToggleSelection(2)

	require.True(t, c.DeleteRow(2))
	assert.Equal(t, []any{1, 3}, idsOf(c.Rows()))
	assert.Empty(t, c.SelectedIDs(), "no stale selection survives a deletion")

	assert.False(t, c.DeleteRow(2))
}

func TestDeleteRow_LastRowKeepsTableReady(t *testing.T) {
	c := newController(t, records(1)...)

	require.True(t, c.DeleteRow(1))
	assert.Equal(t, types.StatusReady, c.Status())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, c.CurrentPage())
}

func TestDeleteSelected_Consistency(t *testing.T) {
	c := newController(t, records(8)...)
	for _, id := range []int{2, 5, 8} {
		c.ToggleSelection(id)
	}
	c.EnterEditMode(3)
	before := c.Rows()

	require.True(t, c.DeleteSelected())

	var want []types.Row
	for _, r := range before {
		if !r.Selected {
			want = append(want, r)
		}
	}
	assert.Equal(t, want, c.Rows())
	assert.Empty(t, c.SelectedIDs())
	assert.False(t, c.DeleteSelected(), "nothing left to delete")
}

func TestDeleteSelected_IncludesRowsHiddenBySearch(t *testing.T) {
	c := annAndBo(t)
	c.ToggleSelection(2)
	c.SetSearch("ann")

	require.True(t, c.DeleteSelected())
	c.SetSearch("")
	assert.Equal(t, []any{1}, idsOf(c.Rows()))
}
