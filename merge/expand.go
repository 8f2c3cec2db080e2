// seehuhn.de/go/imgpdf - convert between raster images and PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package merge

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"seehuhn.de/go/imgpdf"
)

// imageExtensions lists the file name extensions picked up from
// directories.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp", ".gif"}

// ExpandPaths replaces every directory in inputs with the image files it
// contains, sorted by name.  Other paths, including paths which do not
// exist, are kept as given.  Directories are not searched recursively.
func ExpandPaths(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, imgpdf.Errorf(imgpdf.ValidationError, "no input files")
	}

	var res []string
	for _, path := range inputs {
		fi, err := os.Stat(path)
		if err != nil || !fi.IsDir() {
			// unreadable files are reported when the images are prepared
			res = append(res, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, imgpdf.WithPath(path, imgpdf.Wrap(imgpdf.IOError, err))
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !isImageName(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(path, e.Name()))
		}
		if len(found) == 0 {
			return nil, imgpdf.WithPath(path,
				imgpdf.Errorf(imgpdf.ValidationError, "no image files found in directory"))
		}
		slices.Sort(found)
		res = append(res, found...)
	}
	return res, nil
}

func isImageName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(imageExtensions, ext)
}
