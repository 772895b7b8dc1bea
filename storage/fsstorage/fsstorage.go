package fsstorage

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/denismitr/voodoo/internal/errs"
	"github.com/denismitr/voodoo/storage"
	"github.com/pkg/errors"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// LocalStorage keeps files on the local filesystem. Namespaces are
// directories, resolved against Root when they are relative.
type LocalStorage struct {
	Root string
}

var _ storage.Storage = (*LocalStorage)(nil)

func New() *LocalStorage {
	return &LocalStorage{}
}

func (ls *LocalStorage) resolve(namespace, filename string) string {
	p := filepath.Join(filepath.FromSlash(namespace), filename)
	if ls.Root == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(ls.Root, p)
}

func (ls *LocalStorage) Put(ctx context.Context, namespace, filename string, source io.Reader) (*storage.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not store %s: %v", filename, err)
	}

	p := ls.resolve(namespace, filename)
	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not create namespace %s: %v", namespace, err)
	}

	// staged next to the target, then renamed into place
	tmp, err := ioutil.TempFile(filepath.Dir(p), "."+filepath.Base(p)+".*")
	if err != nil {
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not create file %s: %v", p, err)
	}

	if _, err := io.Copy(tmp, source); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not write file %s: %v", p, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not write file %s: %v", p, err)
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not write file %s: %v", p, err)
	}

	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrapf(storage.ErrStorageFailed, "could not move file into %s: %v", p, err)
	}

	return &storage.Item{
		Path: p,
		URL:  "file://" + filepath.ToSlash(absolute(p)),
	}, nil
}

// Download copies the file into dst. A missing file is reported as
// errs.ErrNotFound rather than a storage failure.
func (ls *LocalStorage) Download(ctx context.Context, dst io.Writer, namespace, filename string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(storage.ErrStorageFailed, "could not read %s: %v", filename, err)
	}

	p := ls.resolve(namespace, filename)

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errs.ErrNotFound, "file %s", p)
		}

		return errors.Wrapf(storage.ErrStorageFailed, "could not open file %s: %v", p, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return errors.Wrapf(errs.ErrNotFound, "%s is a directory", p)
	}

	if _, err := io.Copy(dst, f); err != nil {
		return errors.Wrapf(storage.ErrStorageFailed, "could not read file %s: %v", p, err)
	}

	return nil
}

func (ls *LocalStorage) Remove(ctx context.Context, namespace, filename string) error {
	p := ls.resolve(namespace, filename)

	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errs.ErrNotFound, "file %s", p)
		}

		return errors.Wrapf(storage.ErrStorageFailed, "could not remove file %s: %v", p, err)
	}

	return nil
}

func absolute(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}

	return p
}
