package testutil

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. It supports
// error injection per path, which tests use to simulate permission
// failures and vanished files.
type MemoryFS struct {
	mu         sync.RWMutex
	files      map[string]*fileNode
	errorPaths map[string]error
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
}

// NewMemoryFS creates a new in-memory filesystem with a root directory
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: map[string]*fileNode{
			"/": {name: "/", mode: 0755 | os.ModeDir, modTime: time.Now(), isDir: true},
		},
		errorPaths: make(map[string]error),
	}
}

func normalize(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

// AddFile creates a file (and its parent directories) with the given
// content and modification time.
func (m *MemoryFS) AddFile(path, content string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = normalize(path)
	m.mkdirAllLocked(filepath.Dir(path))
	m.files[path] = &fileNode{
		name:    filepath.Base(path),
		mode:    0644,
		modTime: modTime,
		content: []byte(content),
	}
}

// AddDir creates a directory and its parents.
func (m *MemoryFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAllLocked(normalize(path))
}

// AddSymlink creates a symbolic link pointing at dest.
func (m *MemoryFS) AddSymlink(path, dest string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = normalize(path)
	m.mkdirAllLocked(filepath.Dir(path))
	m.files[path] = &fileNode{
		name:     filepath.Base(path),
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: dest,
	}
}

// InjectError makes every operation on path fail with err.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[normalize(path)] = err
}

// Snapshot returns a path -> content view of every regular file,
// used by tests to prove dry-run mode leaves the filesystem untouched.
func (m *MemoryFS) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := make(map[string]string)
	for path, node := range m.files {
		if !node.isDir && !node.isLink {
			snap[path] = string(node.content)
		}
	}
	return snap
}

func (m *MemoryFS) mkdirAllLocked(path string) {
	path = normalize(path)
	if path != "/" {
		m.mkdirAllLocked(filepath.Dir(path))
	}
	if _, ok := m.files[path]; !ok {
		m.files[path] = &fileNode{
			name:    filepath.Base(path),
			mode:    0755 | os.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}
	}
}

func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = normalize(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// resolve follows one level of symlink indirection
func (m *MemoryFS) resolve(path string) (*fileNode, error) {
	node, err := m.getNode(path)
	if err != nil {
		return nil, err
	}
	if node.isLink {
		return m.getNode(node.linkDest)
	}
	return node, nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	return node.info(), nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	return node.info(), nil
}

func (m *MemoryFS) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return &memFile{node: node, reader: bytes.NewReader(node.content)}, nil
}

func (m *MemoryFS) Create(name string) (io.WriteCloser, error) {
	return &memWriter{fs: m, path: normalize(name)}, nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return append([]byte(nil), node.content...), nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = normalize(name)
	if err, ok := m.errorPaths[name]; ok {
		return err
	}
	m.mkdirAllLocked(filepath.Dir(name))
	m.files[name] = &fileNode{
		name:    filepath.Base(name),
		mode:    perm,
		modTime: time.Now(),
		content: append([]byte(nil), data...),
	}
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = normalize(name)
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	var entries []fs.DirEntry
	for path, child := range m.files {
		if path != "/" && filepath.Dir(path) == name {
			entries = append(entries, dirEntry{node: child})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = normalize(path)
	if err, ok := m.errorPaths[path]; ok {
		return err
	}
	m.mkdirAllLocked(path)
	return nil
}

func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldpath, newpath = normalize(oldpath), normalize(newpath)
	if err, ok := m.errorPaths[oldpath]; ok {
		return err
	}
	node, exists := m.files[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	m.mkdirAllLocked(filepath.Dir(newpath))
	node.name = filepath.Base(newpath)
	m.files[newpath] = node
	delete(m.files, oldpath)
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = normalize(name)
	if err, ok := m.errorPaths[name]; ok {
		return err
	}
	if _, exists := m.files[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// --- fs.FileInfo / fs.DirEntry / fs.File adapters ---

type fileInfo struct{ node *fileNode }

func (fi fileInfo) Name() string       { return fi.node.name }
func (fi fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi fileInfo) Sys() interface{}   { return nil }

func (n *fileNode) info() fs.FileInfo { return fileInfo{node: n} }

type dirEntry struct{ node *fileNode }

func (d dirEntry) Name() string               { return d.node.name }
func (d dirEntry) IsDir() bool                { return d.node.isDir }
func (d dirEntry) Type() fs.FileMode          { return d.node.mode.Type() }
func (d dirEntry) Info() (fs.FileInfo, error) { return d.node.info(), nil }

type memFile struct {
	node   *fileNode
	reader *bytes.Reader
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.node.info(), nil }
func (f *memFile) Read(p []byte) (int, error) { return f.reader.Read(p) }
func (f *memFile) Close() error               { return nil }

type memWriter struct {
	fs   *MemoryFS
	path string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memWriter) Close() error {
	return w.fs.WriteFile(w.path, w.buf.Bytes(), 0644)
}
