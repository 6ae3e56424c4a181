package ops

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ManifestName is the first entry of every backup archive.
const ManifestName = "MANIFEST.json"

var ErrDigestMismatch = errors.New("backup digest mismatch")

type FileDigest struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

type Manifest struct {
	CreatedAt time.Time    `json:"created_at"`
	Files     []FileDigest `json:"files"`
}

// BackupSaveDir writes every regular file under srcDir into a tar.gz at
// archivePath, preceded by a manifest of per-file sha256 digests.
func BackupSaveDir(srcDir, archivePath string) (Manifest, error) {
	srcDir = filepath.Clean(strings.TrimSpace(srcDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if srcDir == "" || archivePath == "" {
		return Manifest{}, fmt.Errorf("srcDir and archivePath are required")
	}
	info, err := os.Stat(srcDir)
	if err != nil {
		return Manifest{}, err
	}
	if !info.IsDir() {
		return Manifest{}, fmt.Errorf("source is not a directory: %s", srcDir)
	}

	files, err := listFiles(srcDir)
	if err != nil {
		return Manifest{}, err
	}
	m := Manifest{CreatedAt: time.Now().UTC()}
	for _, rel := range files {
		d, err := digestFile(srcDir, rel)
		if err != nil {
			return Manifest{}, err
		}
		m.Files = append(m.Files, d)
	}

	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return Manifest{}, err
	}
	f, err := os.Create(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	mb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := tw.WriteHeader(&tar.Header{
		Name:     ManifestName,
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len(mb)),
		ModTime:  m.CreatedAt,
	}); err != nil {
		return Manifest{}, err
	}
	if _, err := tw.Write(mb); err != nil {
		return Manifest{}, err
	}

	for _, d := range m.Files {
		if err := addFile(tw, srcDir, d); err != nil {
			return Manifest{}, err
		}
	}
	if err := tw.Close(); err != nil {
		return Manifest{}, err
	}
	if err := gz.Close(); err != nil {
		return Manifest{}, err
	}
	return m, f.Close()
}

func addFile(tw *tar.Writer, root string, d FileDigest) error {
	path := filepath.Join(root, filepath.FromSlash(d.Path))
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = d.Path
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(tw, src)
	return err
}

// RestoreSaveDir unpacks archivePath into targetDir and checks every file
// against the manifest. Archives without a manifest are restored unchecked.
func RestoreSaveDir(archivePath, targetDir string) (Manifest, error) {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	targetDir = filepath.Clean(strings.TrimSpace(targetDir))
	if archivePath == "" || targetDir == "" {
		return Manifest{}, fmt.Errorf("archivePath and targetDir are required")
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Manifest{}, err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return Manifest{}, err
	}
	defer gz.Close()

	var (
		m           Manifest
		hasManifest bool
		restored    = map[string]string{}
		tr          = tar.NewReader(gz)
	)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Manifest{}, err
		}

		rel, err := sanitizeArchiveRelPath(hdr.Name)
		if err != nil {
			return Manifest{}, err
		}
		if rel == ManifestName {
			if err := json.NewDecoder(tr).Decode(&m); err != nil {
				return Manifest{}, fmt.Errorf("read manifest: %w", err)
			}
			hasManifest = true
			continue
		}
		outPath := filepath.Join(targetDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(outPath, 0o755); err != nil {
				return Manifest{}, err
			}
		case tar.TypeReg:
			sum, err := writeEntry(outPath, tr, os.FileMode(hdr.Mode))
			if err != nil {
				return Manifest{}, err
			}
			restored[filepath.ToSlash(rel)] = sum
		default:
			// other entry types are never written by BackupSaveDir
		}
	}

	if !hasManifest {
		return Manifest{}, nil
	}
	for _, d := range m.Files {
		got, ok := restored[d.Path]
		if !ok {
			return m, fmt.Errorf("%w: %s missing from archive", ErrDigestMismatch, d.Path)
		}
		if got != d.SHA256 {
			return m, fmt.Errorf("%w: %s", ErrDigestMismatch, d.Path)
		}
	}
	return m, nil
}

func writeEntry(outPath string, r io.Reader, mode os.FileMode) (string, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dst, h), r); err != nil {
		_ = dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sanitizeArchiveRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "." || name == "" {
		return "", fmt.Errorf("invalid archive entry path")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("invalid absolute archive entry path: %s", name)
	}
	if strings.HasPrefix(name, ".."+string(filepath.Separator)) || name == ".." {
		return "", fmt.Errorf("invalid archive entry path traversal: %s", name)
	}
	return name, nil
}

// listFiles returns the regular files under root, slash-separated and
// sorted. Symlinks are skipped.
func listFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func digestFile(root, rel string) (FileDigest, error) {
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return FileDigest{}, err
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return FileDigest{}, err
	}
	return FileDigest{Path: rel, Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

// DirDigest hashes every regular file's path and content under root into
// one sha256, independent of walk order.
func DirDigest(root string) (string, error) {
	root = filepath.Clean(root)
	files, err := listFiles(root)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, rel := range files {
		_, _ = io.WriteString(h, rel)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		_, _ = h.Write(b)
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
