// Package mocks provides mock implementations for testing.
package mocks

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mcdonaldj/textgather/internal/ports"
)

// MockFileSystem implements ports.FileSystem for testing.
type MockFileSystem struct {
	mu sync.Mutex

	// Files maps paths to file contents for ReadFile and closed writers.
	Files map[string][]byte
	// Dirs marks paths that Stat reports as directories.
	Dirs map[string]bool
	// Errors maps paths to errors (for simulating failures on any operation).
	Errors map[string]error
	// WriteErrors maps paths to errors returned by writes to a created file.
	WriteErrors map[string]error
	// Removed records paths passed to Remove, in order.
	Removed []string
	// Renames records "old->new" for each Rename, in order.
	Renames []string
}

// NewMockFileSystem creates a new mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:       make(map[string][]byte),
		Dirs:        make(map[string]bool),
		Errors:      make(map[string]error),
		WriteErrors: make(map[string]error),
	}
}

// AddFile registers a file and marks its ancestor directories as existing.
func (m *MockFileSystem) AddFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[path] = content
	for dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
		m.Dirs[dir] = true
	}
}

// AddDir registers a directory.
func (m *MockFileSystem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Dirs[path] = true
}

// Stat returns file info for the named file.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if m.Dirs[name] {
		return &mockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	if content, ok := m.Files[name]; ok {
		return &mockFileInfo{name: filepath.Base(name), size: int64(len(content))}, nil
	}
	return nil, os.ErrNotExist
}

// Walk visits every registered directory and file under root in lexical
// order, mirroring filepath.Walk. Per-path errors registered in Errors are
// delivered through the walk callback.
func (m *MockFileSystem) Walk(root string, fn ports.WalkFunc) error {
	m.mu.Lock()
	var paths []string
	for path := range m.Files {
		if path == root || isUnder(path, root) {
			paths = append(paths, path)
		}
	}
	for path := range m.Dirs {
		if path == root || isUnder(path, root) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	m.mu.Unlock()

	for _, path := range paths {
		m.mu.Lock()
		err := m.Errors[path]
		isDir := m.Dirs[path]
		size := int64(len(m.Files[path]))
		m.mu.Unlock()

		info := os.FileInfo(&mockFileInfo{name: filepath.Base(path), size: size, isDir: isDir})
		if err != nil {
			info = nil
		}
		if walkErr := fn(path, info, err); walkErr != nil {
			return walkErr
		}
	}
	return nil
}

func isUnder(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !(len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator))
}

// ReadFile reads the named file and returns the contents.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if content, ok := m.Files[name]; ok {
		return content, nil
	}
	return nil, os.ErrNotExist
}

// Create creates or truncates the named file; content lands in Files on Close.
func (m *MockFileSystem) Create(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	m.Files[name] = nil
	return &mockFile{fs: m, name: name}, nil
}

// OpenAppend opens the named file for appending.
func (m *MockFileSystem) OpenAppend(name string) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	f := &mockFile{fs: m, name: name}
	f.buf.Write(m.Files[name])
	return f, nil
}

// Rename renames (moves) oldpath to newpath.
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[oldpath]; ok {
		return err
	}
	if err, ok := m.Errors[newpath]; ok {
		return err
	}
	content, ok := m.Files[oldpath]
	if !ok {
		return os.ErrNotExist
	}
	delete(m.Files, oldpath)
	m.Files[newpath] = content
	m.Renames = append(m.Renames, oldpath+"->"+newpath)
	return nil
}

// Remove removes the named file.
func (m *MockFileSystem) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, name)
	if err, ok := m.Errors[name]; ok {
		return err
	}
	if _, ok := m.Files[name]; !ok {
		return os.ErrNotExist
	}
	delete(m.Files, name)
	return nil
}

// MkdirAll creates a directory along with any necessary parents.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[path]; ok {
		return err
	}
	m.Dirs[path] = true
	return nil
}

// mockFile buffers writes and commits them to the filesystem on Close.
type mockFile struct {
	fs   *MockFileSystem
	name string
	buf  bytes.Buffer
}

func (f *mockFile) Write(p []byte) (int, error) {
	f.fs.mu.Lock()
	err := f.fs.WriteErrors[f.name]
	f.fs.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return f.buf.Write(p)
}

func (f *mockFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.Files[f.name] = f.buf.Bytes()
	return nil
}

// mockFileInfo implements os.FileInfo for testing.
type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m *mockFileInfo) Name() string { return m.name }
func (m *mockFileInfo) Size() int64  { return m.size }

func (m *mockFileInfo) Mode() os.FileMode {
	if m.isDir {
		return os.ModeDir | 0755
	}
	return 0644
}

func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
