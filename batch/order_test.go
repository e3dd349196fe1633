package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matgraph/sdk/gemd"
)

func TestWriteOrder_Priorities(t *testing.T) {
	tests := []struct {
		name   string
		before gemd.ObjectType
		after  gemd.ObjectType
	}{
		{
			name:   "attribute templates before object templates",
			before: gemd.TypePropertyTemplate,
			after:  gemd.TypeProcessTemplate,
		},
		{
			name:   "object templates before specs",
			before: gemd.TypeProcessTemplate,
			after:  gemd.TypeProcessSpec,
		},
		{
			name:   "specs before runs",
			before: gemd.TypeMaterialSpec,
			after:  gemd.TypeMaterialRun,
		},
		{
			name:   "process specs before material specs",
			before: gemd.TypeProcessSpec,
			after:  gemd.TypeMaterialSpec,
		},
		{
			name:   "runs before ingredient runs",
			before: gemd.TypeMeasurementRun,
			after:  gemd.TypeIngredientRun,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Less(t, WriteOrder(tt.before), WriteOrder(tt.after))
		})
	}
}

func TestWriteOrder_UnknownTypeSortsLast(t *testing.T) {
	unknown := WriteOrder(gemd.ObjectType("mystery"))
	for _, typ := range gemd.AllObjectTypes {
		assert.Greater(t, unknown, WriteOrder(typ))
	}
}

func TestGroupByType_Empty(t *testing.T) {
	assert.Empty(t, GroupByType(nil, WriteOrder))
}

func TestGroupByType_OrdersGroupsAndPreservesInsertion(t *testing.T) {
	objs := provenanceChain(9)

	groups := GroupByType(objs, WriteOrder)
	require.Len(t, groups, 3)

	// Templates, then specs, then runs.
	assert.Equal(t, gemd.TypeProcessTemplate, groups[0][0].TypeTag())
	assert.Equal(t, gemd.TypeProcessSpec, groups[1][0].TypeTag())
	assert.Equal(t, gemd.TypeProcessRun, groups[2][0].TypeTag())

	// Input order survives within each group.
	for _, group := range groups {
		require.Len(t, group, 3)
		for i, obj := range group {
			assert.Contains(t, obj.Name(), "-"+string(rune('0'+i)))
		}
	}
}

func TestGroupByType_CustomOrder(t *testing.T) {
	objs := provenanceChain(6)

	// Invert the priority table: runs first.
	inverted := func(typ gemd.ObjectType) int { return -WriteOrder(typ) }
	groups := GroupByType(objs, inverted)
	require.NotEmpty(t, groups)
	assert.Equal(t, gemd.TypeProcessRun, groups[0][0].TypeTag())
}

func TestGroupByType_NilOrderDefaultsToWriteOrder(t *testing.T) {
	objs := provenanceChain(6)
	assert.Equal(t, GroupByType(objs, WriteOrder), GroupByType(objs, nil))
}
