package npy

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nd4go/nd4go/internal/array"
)

// WriteArchive encodes named arrays as an NPZ (zip of .npy members),
// deflate-compressed, members in sorted name order.
func WriteArchive(w io.Writer, arrays map[string]*array.Array) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)
	zw := zip.NewWriter(w)
	for _, name := range names {
		member, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name + ".npy",
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}
		if err := Write(member, arrays[name]); err != nil {
			return err
		}
	}
	return zw.Close()
}

// ReadArchive decodes an NPZ into named arrays, dropping the .npy
// member suffix.
func ReadArchive(r io.ReaderAt, size int64) (map[string]*array.Array, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	out := make(map[string]*array.Array, len(zr.File))
	for _, member := range zr.File {
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: member %s: %v", ErrFormat, member.Name, err)
		}
		a, err := Read(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", member.Name, err)
		}
		out[strings.TrimSuffix(member.Name, ".npy")] = a
	}
	return out, nil
}

// ReadArchiveFile decodes an .npz file.
func ReadArchiveFile(path string) (map[string]*array.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadArchive(f, info.Size())
}

// WriteArchiveFile encodes named arrays into an .npz file.
func WriteArchiveFile(path string, arrays map[string]*array.Array) error {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, arrays); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
