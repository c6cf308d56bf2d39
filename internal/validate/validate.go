// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks downloaded PDFs for structural validity.
package validate

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// CheckPDF reports whether the file at path is an openable PDF with at
// least one page. Invalid files are logged to w; the caller decides what
// to do with them.
func CheckPDF(path string, w io.Writer) (pages int, ok bool) {
	count, err := api.PageCountFile(path)
	if err != nil {
		fmt.Fprintf(w, "[ERROR] corrupted or unreadable PDF (%v): %s\n", err, path)
		return 0, false
	}
	if count == 0 {
		fmt.Fprintf(w, "[ERROR] invalid PDF (no pages found): %s\n", path)
		return 0, false
	}
	return count, true
}

// ListPDFs returns the absolute paths of all .pdf files under dir,
// recursively, in walk order.
func ListPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".pdf") {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing PDFs under %s: %w", dir, err)
	}
	return paths, nil
}

// HasUppercase reports whether name contains at least one uppercase letter.
func HasUppercase(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
