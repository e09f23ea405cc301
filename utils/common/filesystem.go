package common

import (
	"os"

	"github.com/spf13/afero"
)

// RealFileSystem adapts an afero filesystem to FileSystemInterface. With
// afero.NewOsFs it touches the real disk; tests swap in afero.NewMemMapFs
// and exercise the identical code path.
type RealFileSystem struct {
	Fs afero.Fs
}

func NewOsFileSystem() *RealFileSystem {
	return &RealFileSystem{Fs: afero.NewOsFs()}
}

func (f *RealFileSystem) Exists(name string) (bool, error) {
	return afero.Exists(f.Fs, name)
}

func (f *RealFileSystem) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(f.Fs, name)
}

func (f *RealFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(f.Fs, name, data, perm)
}

func (f *RealFileSystem) Rename(oldname, newname string) error {
	return f.Fs.Rename(oldname, newname)
}

func (f *RealFileSystem) Remove(name string) error {
	return f.Fs.Remove(name)
}

func (f *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return f.Fs.MkdirAll(path, perm)
}

func (f *RealFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	return afero.ReadDir(f.Fs, dirname)
}
