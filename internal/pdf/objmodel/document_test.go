package objmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(t.TempDir(), "missing.pdf"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open file")
	})

	t.Run("not a pdf", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

		_, err := OpenFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read PDF context")
	})
}

func TestOpenBytes_Errors(t *testing.T) {
	_, err := OpenBytes([]byte("%PDF-1.4 truncated nonsense"))
	require.Error(t, err)
}

func TestDocument_Close(t *testing.T) {
	doc := &Document{}
	require.NoError(t, doc.Close())
	assert.True(t, doc.closed)
}

func TestDocument_ResolveDirectObjects(t *testing.T) {
	// Direct objects resolve without touching the parse context.
	doc := &Document{}

	t.Run("dict", func(t *testing.T) {
		dict := types.Dict{"Type": types.Name("Page")}
		assert.Equal(t, dict, doc.ResolveDict(dict))
		assert.Nil(t, doc.ResolveDict(types.Integer(7)))
		assert.Nil(t, doc.ResolveDict(nil))
	})

	t.Run("stream dict resolves to its dictionary part", func(t *testing.T) {
		sd := types.StreamDict{Dict: types.Dict{"Subtype": types.Name("Image")}}
		assert.Equal(t, sd.Dict, doc.ResolveDict(sd))
	})

	t.Run("array", func(t *testing.T) {
		arr := types.Array{types.Integer(1), types.Integer(2)}
		assert.Equal(t, arr, doc.ResolveArray(arr))
		assert.Nil(t, doc.ResolveArray(types.Name("NotAnArray")))
	})

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, "Figure", doc.ResolveName(types.Name("Figure")))
		assert.Equal(t, "", doc.ResolveName(nil))
		assert.Equal(t, "", doc.ResolveName(types.Integer(3)))
	})

	t.Run("string absent", func(t *testing.T) {
		assert.Equal(t, "", doc.ResolveString(nil))
	})

	t.Run("int", func(t *testing.T) {
		n, ok := doc.ResolveInt(types.Integer(42))
		assert.True(t, ok)
		assert.Equal(t, 42, n)

		_, ok = doc.ResolveInt(types.Float(1.5))
		assert.False(t, ok)
	})

	t.Run("number accepts integer and real", func(t *testing.T) {
		f, ok := doc.ResolveNumber(types.Integer(3))
		assert.True(t, ok)
		assert.Equal(t, 3.0, f)

		f, ok = doc.ResolveNumber(types.Float(2.5))
		assert.True(t, ok)
		assert.Equal(t, 2.5, f)

		_, ok = doc.ResolveNumber(types.Name("NaN"))
		assert.False(t, ok)
	})

	t.Run("bool", func(t *testing.T) {
		b, ok := doc.ResolveBool(types.Boolean(true))
		assert.True(t, ok)
		assert.True(t, b)

		_, ok = doc.ResolveBool(types.Integer(1))
		assert.False(t, ok)
	})
}

func TestDocument_ObjectNumber(t *testing.T) {
	doc := &Document{}

	ref := *types.NewIndirectRef(12, 0)
	assert.Equal(t, 12, doc.ObjectNumber(ref))
	assert.Equal(t, 0, doc.ObjectNumber(types.Dict{}))
	assert.Equal(t, 0, doc.ObjectNumber(nil))
}
