// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// Image is a program image: the initial contents of memory, starting at
// address 0.
type Image []Cell

// Parse reads a program image in text form from r. Cells are signed decimal
// integers separated by commas. White space around cells is ignored, so is a
// trailing comma. An empty input yields an empty image.
func Parse(r io.Reader) (Image, error) {
	s := bufio.NewScanner(r)
	s.Split(scanCells)
	var img Image
	for s.Scan() {
		tok := bytes.TrimSpace(s.Bytes())
		if len(tok) == 0 {
			if len(img) == 0 {
				// leading comma or blank input
				continue
			}
			return nil, errors.Errorf("cell %d: empty value", len(img))
		}
		n, err := strconv.ParseInt(string(tok), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d", len(img))
		}
		img = append(img, Cell(n))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return img, nil
}

// scanCells is a bufio.SplitFunc that splits its input at commas. A trailing
// comma does not produce an empty token.
func scanCells(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		if len(bytes.TrimSpace(data)) == 0 {
			return len(data), nil, nil
		}
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Load loads a program image in text form from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// Save saves the image in text form to file fileName.
func (img Image) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if err = iox.WriteCells(w, img, ","); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return errors.Wrap(err, "write failed")
}

// Clone returns a copy of the image.
func (img Image) Clone() Image {
	if img == nil {
		return nil
	}
	c := make(Image, len(img))
	copy(c, img)
	return c
}

func (img Image) String() string {
	var b bytes.Buffer
	iox.WriteCells(&b, img, ",")
	return b.String()
}
