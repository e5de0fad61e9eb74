package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wilbur182/arbor/internal/vfs"
)

func newProvider() *Provider {
	return New(nil)
}

func TestStat_Types(t *testing.T) {
	tmpDir := t.TempDir()

	file := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(file, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	dir := filepath.Join(tmpDir, "dir")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	p := newProvider()

	tests := []struct {
		path string
		want vfs.EntryType
	}{
		{file, vfs.TypeFile},
		{dir, vfs.TypeDirectory},
		{link, vfs.TypeSymlink},
	}
	for _, tt := range tests {
		st, err := p.Stat(tt.path)
		if err != nil {
			t.Fatalf("Stat(%q) failed: %v", tt.path, err)
		}
		if st.Type != tt.want {
			t.Errorf("Stat(%q).Type = %v, want %v", tt.path, st.Type, tt.want)
		}
	}
}

func TestStat_Size(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "sized.txt")
	if err := os.WriteFile(file, []byte("12345"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	st, err := newProvider().Stat(file)
	if err != nil {
		t.Fatalf("Stat() failed: %v", err)
	}
	if st.Size != 5 {
		t.Errorf("Size = %d, want 5", st.Size)
	}
	if st.MTime.IsZero() {
		t.Error("MTime is zero")
	}
}

func TestStat_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := newProvider().Stat(filepath.Join(tmpDir, "absent"))
	if !vfs.IsNotFound(err) {
		t.Errorf("Stat() error = %v, want not-found", err)
	}
}

func TestReadDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "a.txt"), nil, 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	entries, err := newProvider().ReadDirectory(tmpDir)
	if err != nil {
		t.Fatalf("ReadDirectory() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	types := make(map[string]vfs.EntryType, len(entries))
	for _, e := range entries {
		types[e.Name] = e.Type
	}
	if types["a.txt"] != vfs.TypeFile {
		t.Errorf("a.txt type = %v, want file", types["a.txt"])
	}
	if types["sub"] != vfs.TypeDirectory {
		t.Errorf("sub type = %v, want directory", types["sub"])
	}
}

func TestReadDirectory_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := newProvider().ReadDirectory(filepath.Join(tmpDir, "absent"))
	if !vfs.IsNotFound(err) {
		t.Errorf("ReadDirectory() error = %v, want not-found", err)
	}
}

func TestCreateDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "new")

	if err := newProvider().CreateDirectory(dir); err != nil {
		t.Fatalf("CreateDirectory() failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestCreateDirectory_AbsentParent(t *testing.T) {
	tmpDir := t.TempDir()

	err := newProvider().CreateDirectory(filepath.Join(tmpDir, "missing", "new"))
	if err == nil {
		t.Error("CreateDirectory() should fail when parent is absent")
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "read.txt")
	if err := os.WriteFile(file, []byte("hello"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	data, err := newProvider().ReadFile(file)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}

func TestReadFile_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := newProvider().ReadFile(filepath.Join(tmpDir, "absent"))
	if !vfs.IsNotFound(err) {
		t.Errorf("ReadFile() error = %v, want not-found", err)
	}
}

func TestWriteFile_AbsentNoCreate(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "absent.txt")

	err := newProvider().WriteFile(file, []byte("data"), vfs.WriteOptions{})
	if !vfs.IsNotFound(err) {
		t.Errorf("WriteFile() error = %v, want not-found", err)
	}
	// Never partially creates the file.
	if _, statErr := os.Lstat(file); statErr == nil {
		t.Error("WriteFile() created the file despite failing")
	}
}

func TestWriteFile_Create(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "deep", "nested", "new.txt")

	err := newProvider().WriteFile(file, []byte("data"), vfs.WriteOptions{Create: true})
	if err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil || string(data) != "data" {
		t.Errorf("content = %q, err = %v, want %q", data, err, "data")
	}
}

func TestWriteFile_ExistsNoOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "exists.txt")
	if err := os.WriteFile(file, []byte("original"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	err := newProvider().WriteFile(file, []byte("new"), vfs.WriteOptions{Create: true})
	if !vfs.IsExists(err) {
		t.Errorf("WriteFile() error = %v, want already-exists", err)
	}
	// Original content must be unchanged.
	data, _ := os.ReadFile(file)
	if string(data) != "original" {
		t.Errorf("content = %q, want %q", data, "original")
	}
}

func TestWriteFile_Overwrite(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "overwrite.txt")
	if err := os.WriteFile(file, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	err := newProvider().WriteFile(file, []byte("new"), vfs.WriteOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	data, _ := os.ReadFile(file)
	if string(data) != "new" {
		t.Errorf("content = %q, want %q (truncate+replace)", data, "new")
	}
}

func TestDelete_File(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "gone.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := newProvider().Delete(file, vfs.DeleteOptions{}); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := os.Lstat(file); err == nil {
		t.Error("file still exists after Delete()")
	}
}

func TestDelete_NonEmptyDirNonRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "full")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "child.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := newProvider().Delete(dir, vfs.DeleteOptions{}); err == nil {
		t.Error("Delete() should fail for a non-empty directory without Recursive")
	}
}

func TestDelete_Recursive(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "tree")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "leaf.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := newProvider().Delete(dir, vfs.DeleteOptions{Recursive: true}); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := os.Lstat(dir); err == nil {
		t.Error("tree still exists after recursive Delete()")
	}
}

func TestDelete_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	err := newProvider().Delete(filepath.Join(tmpDir, "absent"), vfs.DeleteOptions{Recursive: true})
	if !vfs.IsNotFound(err) {
		t.Errorf("Delete() error = %v, want not-found", err)
	}
}

func TestRename(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	if err := newProvider().Rename(src, dst, vfs.RenameOptions{}); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Errorf("dst content = %q, err = %v", data, err)
	}
	if _, err := os.Lstat(src); err == nil {
		t.Error("src still exists after Rename()")
	}
}

func TestRename_TargetExistsNoOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")
	if err := os.WriteFile(src, []byte("src"), 0o644); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}
	if err := os.WriteFile(dst, []byte("dst"), 0o644); err != nil {
		t.Fatalf("failed to create dst: %v", err)
	}

	err := newProvider().Rename(src, dst, vfs.RenameOptions{})
	if !vfs.IsExists(err) {
		t.Errorf("Rename() error = %v, want already-exists", err)
	}
	// Both sides untouched.
	if data, _ := os.ReadFile(dst); string(data) != "dst" {
		t.Errorf("dst content = %q, want %q", data, "dst")
	}
	if _, err := os.Lstat(src); err != nil {
		t.Error("src removed despite failed rename")
	}
}

func TestRename_Overwrite(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dst.txt")
	if err := os.WriteFile(src, []byte("fresh"), 0o644); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}
	if err := os.WriteFile(dst, []byte("stale"), 0o644); err != nil {
		t.Fatalf("failed to create dst: %v", err)
	}

	if err := newProvider().Rename(src, dst, vfs.RenameOptions{Overwrite: true}); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	// Target now holds the source's pre-rename content and the source
	// location is gone.
	if data, _ := os.ReadFile(dst); string(data) != "fresh" {
		t.Errorf("dst content = %q, want %q", data, "fresh")
	}
	if _, err := os.Lstat(src); err == nil {
		t.Error("src still exists after overwriting Rename()")
	}
}

func TestRename_OverwriteDirectoryTarget(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "dstdir")
	if err := os.WriteFile(src, []byte("fresh"), 0o644); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dst, "nested"), 0o755); err != nil {
		t.Fatalf("failed to create dst tree: %v", err)
	}

	if err := newProvider().Rename(src, dst, vfs.RenameOptions{Overwrite: true}); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if data, _ := os.ReadFile(dst); string(data) != "fresh" {
		t.Errorf("dst content = %q, want %q", data, "fresh")
	}
}

func TestRename_CreatesTargetParent(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.txt")
	dst := filepath.Join(tmpDir, "deep", "dst.txt")
	if err := os.WriteFile(src, []byte("moved"), 0o644); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}

	if err := newProvider().Rename(src, dst, vfs.RenameOptions{}); err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}
	if data, _ := os.ReadFile(dst); string(data) != "moved" {
		t.Errorf("dst content = %q, want %q", data, "moved")
	}
}
