package csvfile

import (
	"compress/gzip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRecordsBzip2(t *testing.T) {
	var loader Loader
	tbl, err := loader.ReadRecords(filepath.Join("testdata", "accident_2013.csv.bz2"))
	require.NoError(t, err)

	assert.Equal(t, 8, tbl.NumRows())
	assert.Equal(t, []string{"STATE", "ST_CASE", "MONTH", "DAY", "HOUR", "LATITUDE", "LONGITUD", "FATALS"}, tbl.Columns())

	t.Run("numeric typing", func(t *testing.T) {
		c, err := tbl.Cell(0, "LATITUDE")
		require.NoError(t, err)
		v, ok := c.Float()
		require.True(t, ok)
		assert.InDelta(t, 32.641064, v, 1e-9)
	})

	t.Run("sentinel coordinates load as plain numbers", func(t *testing.T) {
		c, err := tbl.Cell(5, "LONGITUD")
		require.NoError(t, err)
		v, ok := c.Float()
		require.True(t, ok)
		assert.Equal(t, 999.9999, v)
	})

	t.Run("state codes are whole", func(t *testing.T) {
		c, err := tbl.Cell(4, "STATE")
		require.NoError(t, err)
		n, ok := c.Int()
		require.True(t, ok)
		assert.Equal(t, 48, n)
	})
}

func TestReadRecordsPlain(t *testing.T) {
	path := writeFile(t, "accident_2020.csv",
		"STATE,MONTH,LONGITUD,LATITUDE\n1,1,-86.1,32.4\n1,12,-85.4,33.1\n")

	var loader Loader
	tbl, err := loader.ReadRecords(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())

	c, err := tbl.Cell(1, "MONTH")
	require.NoError(t, err)
	n, ok := c.Int()
	require.True(t, ok)
	assert.Equal(t, 12, n)
}

func TestReadRecordsGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accident_2021.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("STATE,MONTH\n6,4\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	var loader Loader
	tbl, err := loader.ReadRecords(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
}

func TestReadRecordsMissingFile(t *testing.T) {
	var loader Loader
	_, err := loader.ReadRecords(filepath.Join(t.TempDir(), "accident_1776.csv.bz2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "accident_1776.csv.bz2")
}

func TestColumnTypeInference(t *testing.T) {
	t.Run("one stray value demotes the column", func(t *testing.T) {
		path := writeFile(t, "mixed.csv", "STATE,NOTE\n1,12\n2,unknown\n")

		var loader Loader
		tbl, err := loader.ReadRecords(path)
		require.NoError(t, err)

		// Numeric-looking "12" stays text once the column is demoted.
		c, err := tbl.Cell(0, "NOTE")
		require.NoError(t, err)
		_, ok := c.Float()
		assert.False(t, ok)
		assert.Equal(t, "12", c.Text())
	})

	t.Run("empty fields are null and do not demote", func(t *testing.T) {
		path := writeFile(t, "gaps.csv", "STATE,MONTH\n1,\n2,7\n")

		var loader Loader
		tbl, err := loader.ReadRecords(path)
		require.NoError(t, err)

		c, err := tbl.Cell(0, "MONTH")
		require.NoError(t, err)
		assert.True(t, c.IsNull())

		c, err = tbl.Cell(1, "MONTH")
		require.NoError(t, err)
		n, ok := c.Int()
		require.True(t, ok)
		assert.Equal(t, 7, n)
	})

	t.Run("field whitespace is trimmed", func(t *testing.T) {
		path := writeFile(t, "ws.csv", "STATE , MONTH\n 1 , 3 \n")

		var loader Loader
		tbl, err := loader.ReadRecords(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"STATE", "MONTH"}, tbl.Columns())

		c, err := tbl.Cell(0, "MONTH")
		require.NoError(t, err)
		n, ok := c.Int()
		require.True(t, ok)
		assert.Equal(t, 3, n)
	})
}

func TestReadRecordsMalformed(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")

		var loader Loader
		_, err := loader.ReadRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header row")
	})

	t.Run("header only is a valid empty table", func(t *testing.T) {
		path := writeFile(t, "header.csv", "STATE,MONTH\n")

		var loader Loader
		tbl, err := loader.ReadRecords(path)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.NumRows())
		assert.Equal(t, []string{"STATE", "MONTH"}, tbl.Columns())
	})

	t.Run("ragged row", func(t *testing.T) {
		path := writeFile(t, "ragged.csv", "STATE,MONTH\n1,2\n1\n")

		var loader Loader
		_, err := loader.ReadRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wrong number of fields")
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := writeFile(t, "bad.csv.gz", "not gzip at all")

		var loader Loader
		_, err := loader.ReadRecords(path)
		require.Error(t, err)
	})
}
