package packager

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readArchive(t *testing.T, buf *bytes.Buffer) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func TestZipSinkEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewZipSink(buf)

	var wantNames []string
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("photo-%d.webp", i)
		wantNames = append(wantNames, name)
		require.NoError(t, sink.Add(name, []byte{byte(i)}))
	}
	require.NoError(t, sink.Close())

	zr := readArchive(t, buf)
	require.Len(t, zr.File, 5)
	for i, f := range zr.File {
		assert.Equal(t, wantNames[i], f.Name)

		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, data)
	}
}

// A batch where every item failed still finalizes into a valid archive with
// zero entries.
func TestZipSinkEmptyArchive(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewZipSink(buf)

	require.NoError(t, sink.Close())

	zr := readArchive(t, buf)
	assert.Empty(t, zr.File)
}

// Duplicate output names are written without renaming; extracting the
// archive yields the last entry for a given name.
func TestZipSinkDuplicateNames(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewZipSink(buf)

	require.NoError(t, sink.Add("photo.webp", []byte("first")))
	require.NoError(t, sink.Add("photo.webp", []byte("second")))
	require.NoError(t, sink.Close())

	zr := readArchive(t, buf)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "photo.webp", zr.File[0].Name)
	assert.Equal(t, "photo.webp", zr.File[1].Name)
}

func TestCollectSinkKeepsOrder(t *testing.T) {
	sink := NewCollectSink()

	require.NoError(t, sink.Add("a.webp", []byte("a")))
	require.NoError(t, sink.Add("b.webp", []byte("b")))
	require.NoError(t, sink.Close())

	items := sink.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a.webp", items[0].Name)
	assert.Equal(t, "b.webp", items[1].Name)
}

func TestArchiveName(t *testing.T) {
	start := time.Date(2026, 8, 30, 12, 30, 45, 0, time.UTC)

	name := ArchiveName("converted", start)

	assert.Equal(t, "converted-2026-08-30T12-30-45Z.zip", name)
}
