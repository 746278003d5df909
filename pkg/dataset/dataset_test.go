package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellConstructors(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.Equal(t, "", Null().String())

	text := Text("hello")
	assert.False(t, text.IsNull())
	assert.False(t, text.IsEmpty())
	assert.Equal(t, "hello", text.String())

	blank := Text("   ")
	assert.False(t, blank.IsNull())
	assert.True(t, blank.IsEmpty())

	assert.Equal(t, "42", Number(42).String())
	assert.Equal(t, "3.14", Number(3.14).String())
	assert.Equal(t, "-0.5", Number(-0.5).String())
}

func TestDatasetRowCount(t *testing.T) {
	ds := &Dataset{
		Columns: []Column{
			{Name: "a", Cells: []Cell{Text("1"), Text("2")}},
			{Name: "b", Cells: []Cell{Text("1"), Text("2"), Text("3")}},
		},
	}
	assert.Equal(t, 3, ds.RowCount())
	assert.False(t, ds.IsEmpty())
}

func TestDatasetIsEmpty(t *testing.T) {
	var nilDS *Dataset
	assert.True(t, nilDS.IsEmpty())
	assert.True(t, (&Dataset{}).IsEmpty())
	assert.True(t, (&Dataset{Columns: []Column{{Name: "a"}}}).IsEmpty())
}
