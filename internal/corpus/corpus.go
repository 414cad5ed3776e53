// SPDX-FileCopyrightText: © 2022 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package corpus loads test corpora provided as file systems, for
// instance the data sets of github.com/ulikunitz/zdata.
package corpus

import "io/fs"

// File is a named blob from a corpus.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus file system.
func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

// Size returns the total number of data bytes in files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

// Clip limits the data of every file to n bytes. It modifies files in
// place and returns it. Tests use it to keep slow packers within their
// time budget.
func Clip(files []File, n int) []File {
	for i := range files {
		if len(files[i].Data) > n {
			files[i].Data = files[i].Data[:n]
		}
	}
	return files
}
