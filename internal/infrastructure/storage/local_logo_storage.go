package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const logosSubdir = "logos"

// LocalLogoStorage guarda los logos en <uploadDir>/logos y los expone en <publicPath>/logos.
// El sistema de archivos es inyectable (afero.NewOsFs en producción, MemMapFs en tests).
type LocalLogoStorage struct {
	fs           afero.Fs
	dir          string
	publicPrefix string
}

// NewLocalLogoStorage crea el directorio de logos si no existe.
func NewLocalLogoStorage(fs afero.Fs, uploadDir, publicPath string) (*LocalLogoStorage, error) {
	dir := filepath.Join(uploadDir, logosSubdir)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalLogoStorage{
		fs:           fs,
		dir:          dir,
		publicPrefix: path.Join("/", publicPath, logosSubdir),
	}, nil
}

// Save escribe el archivo como <companyID>_<uuid><ext> y devuelve su ruta pública.
func (s *LocalLogoStorage) Save(_ context.Context, companyID, ext string, r io.Reader) (string, error) {
	name := companyID + "_" + uuid.New().String() + ext
	full := filepath.Join(s.dir, name)

	f, err := s.fs.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: abrir %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("storage: cerrar %s: %w", name, err)
	}
	return s.publicPrefix + "/" + name, nil
}

// Remove borra el archivo correspondiente a una ruta pública. Un archivo inexistente no es error.
func (s *LocalLogoStorage) Remove(_ context.Context, publicPath string) error {
	full := s.LocalPath(publicPath)
	if full == "" {
		return fmt.Errorf("storage: ruta fuera del directorio de logos: %q", publicPath)
	}
	if err := s.fs.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", publicPath, err)
	}
	return nil
}

// LocalPath traduce una ruta pública a la ruta en disco ("" si no pertenece a este almacenamiento).
func (s *LocalLogoStorage) LocalPath(publicPath string) string {
	name, ok := strings.CutPrefix(publicPath, s.publicPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return ""
	}
	return filepath.Join(s.dir, name)
}
