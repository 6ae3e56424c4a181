package ops

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFiles(t *testing.T, root string) map[string]string {
	t.Helper()
	got := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestBackupRestoreSaveDir_RoundTrip(t *testing.T) {
	src := filepath.Join(t.TempDir(), "data")
	files := map[string]string{
		"cookie_save.json":       `{"version":2,"cookies":"42"}`,
		"slots/second_save.json": `{"version":2,"cookies":"7"}`,
	}
	writeFiles(t, src, files)

	archive := filepath.Join(t.TempDir(), "backups", "save.tar.gz")
	m, err := BackupSaveDir(src, archive)
	require.NoError(t, err)
	require.Len(t, m.Files, 2)
	assert.Equal(t, "cookie_save.json", m.Files[0].Path)
	assert.Len(t, m.Files[0].SHA256, 64)

	restoreDir := filepath.Join(t.TempDir(), "restore")
	restored, err := RestoreSaveDir(archive, restoreDir)
	require.NoError(t, err)
	assert.Equal(t, m.Files, restored.Files)
	assert.Equal(t, files, readFiles(t, restoreDir))

	srcDigest, err := DirDigest(src)
	require.NoError(t, err)
	dstDigest, err := DirDigest(restoreDir)
	require.NoError(t, err)
	assert.Equal(t, srcDigest, dstDigest)
}

func TestBackupSaveDir_RejectsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(f, []byte("{}"), 0o644))
	_, err := BackupSaveDir(f, filepath.Join(t.TempDir(), "out.tar.gz"))
	assert.Error(t, err)
}

type entry struct {
	name, body string
}

func writeArchive(t *testing.T, entries ...entry) string {
	t.Helper()
	archive := filepath.Join(t.TempDir(), "hand.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     e.name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(e.body)),
		}))
		_, err := tw.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return archive
}

func TestRestoreSaveDir_RejectsPathTraversal(t *testing.T) {
	archive := writeArchive(t, entry{"../escape.txt", "bad"})
	_, err := RestoreSaveDir(archive, filepath.Join(t.TempDir(), "out"))
	assert.Error(t, err)
}

func TestRestoreSaveDir_DetectsTampering(t *testing.T) {
	manifest := `{"files":[{"path":"cookie_save.json","size":4,"sha256":"0000000000000000000000000000000000000000000000000000000000000000"}]}`
	archive := writeArchive(t,
		entry{ManifestName, manifest},
		entry{"cookie_save.json", "{}\n\n"},
	)
	_, err := RestoreSaveDir(archive, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDigestMismatch))
}

func TestRestoreSaveDir_WithoutManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	archive := writeArchive(t, entry{"cookie_save.json", "{}"})
	m, err := RestoreSaveDir(archive, out)
	require.NoError(t, err)
	assert.Empty(t, m.Files)
	assert.Equal(t, map[string]string{"cookie_save.json": "{}"}, readFiles(t, out))
}
