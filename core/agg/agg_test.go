package agg

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/iocache"
	"github.com/huangsam/rtps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClasses writes n class tables into a data dir; class i has i+1 rows.
func testClasses(t *testing.T, n int) (string, []schema.SourceClass) {
	t.Helper()
	dir := t.TempDir()
	classes := make([]schema.SourceClass, n)
	for i := range n {
		content := "vW (GHz s),L (Jy kpc^2)\n"
		for j := 0; j <= i; j++ {
			content += fmt.Sprintf("%d,%d\n", j+1, i+1)
		}
		name := fmt.Sprintf("class%d.csv", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		classes[i] = schema.SourceClass{Key: fmt.Sprintf("c%d", i), FileName: name, Color: "k", Alpha: 1}
	}
	return dir, classes
}

func TestLoadTables(t *testing.T) {
	dir, classes := testClasses(t, 16)

	for _, workers := range []int{1, 4, 32} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			cfg := &contract.Config{DataDir: dir, Workers: workers}
			tables, err := LoadTables(context.Background(), cfg, nil, classes)
			require.NoError(t, err)
			require.Len(t, tables, len(classes))

			// Results keep catalog order regardless of completion order
			for i, ct := range tables {
				assert.Equal(t, classes[i].Key, ct.Class.Key)
				assert.Equal(t, i+1, ct.Table.Len())
			}
		})
	}
}

func TestLoadTablesUsesManagerStore(t *testing.T) {
	dir, classes := testClasses(t, 2)
	cfg := &contract.Config{DataDir: dir, Workers: 2}

	mockStore := &iocache.MockCacheStore{}
	mockStore.On("Get", generateCacheKey(filepath.Join(dir, "class0.csv"))).Return([]byte{}, 0, int64(0), assert.AnError)
	mockStore.On("Get", generateCacheKey(filepath.Join(dir, "class1.csv"))).Return([]byte{}, 0, int64(0), assert.AnError)
	mockStore.On("Set", generateCacheKey(filepath.Join(dir, "class0.csv")), mockAnyBytes, currentCacheVersion, mockAnyInt64).Return(nil)
	mockStore.On("Set", generateCacheKey(filepath.Join(dir, "class1.csv")), mockAnyBytes, currentCacheVersion, mockAnyInt64).Return(nil)

	mockMgr := &iocache.MockCacheManager{}
	mockMgr.On("GetTableStore").Return(mockStore)

	tables, err := LoadTables(context.Background(), cfg, mockMgr, classes)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	mockStore.AssertExpectations(t)
	mockMgr.AssertExpectations(t)
}

func TestLoadTablesInputOverride(t *testing.T) {
	dir, classes := testClasses(t, 2)
	override := filepath.Join(t.TempDir(), "elsewhere.csv")
	require.NoError(t, os.WriteFile(override, []byte("L (Jy kpc^2),vW (GHz s)\n9,8\n"), 0o644))

	cfg := &contract.Config{DataDir: dir, Workers: 2, Inputs: map[string]string{"c1": override}}
	tables, err := LoadTables(context.Background(), cfg, nil, classes)
	require.NoError(t, err)
	assert.Equal(t, override, tables[1].Table.Path)
	assert.Equal(t, []schema.Measurement{{VW: 8, L: 9}}, tables[1].Table.Rows)
}

func TestLoadTablesErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, dir string)
		wantErr error
	}{
		{
			name: "missing file",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "class2.csv")))
			},
			wantErr: contract.ErrMissingFile,
		},
		{
			name: "malformed table",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "class1.csv"), []byte("a,b\n1,2\n"), 0o644))
			},
			wantErr: contract.ErrMalformedTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, classes := testClasses(t, 4)
			tt.mutate(t, dir)

			cfg := &contract.Config{DataDir: dir, Workers: 2}
			tables, err := LoadTables(context.Background(), cfg, nil, classes)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, tables)
		})
	}
}

func TestLoadTablesCanceled(t *testing.T) {
	dir, classes := testClasses(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadTables(ctx, &contract.Config{DataDir: dir, Workers: 1}, nil, classes)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummariesAndTotalSkipped(t *testing.T) {
	tables := []schema.ClassTable{
		{
			Class: schema.SourceClass{Key: "a", Label: "A"},
			Table: schema.MeasurementTable{Rows: []schema.Measurement{{VW: 1, L: 2}, {VW: -1, L: 2}}},
		},
		{
			Class: schema.SourceClass{Key: "b", Label: "B"},
			Table: schema.MeasurementTable{Rows: []schema.Measurement{}},
		},
	}

	summaries := Summaries(tables)
	require.Len(t, summaries, 2)
	assert.Equal(t, "a", summaries[0].Key)
	assert.Equal(t, 2, summaries[0].Points)
	assert.Equal(t, 1, summaries[0].Skipped)
	assert.True(t, math.IsNaN(summaries[1].MinVW))
	assert.Equal(t, 1, TotalSkipped(summaries))
}
