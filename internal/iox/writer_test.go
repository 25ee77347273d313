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

package iox_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/db47h/intcode/internal/iox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestWriteCells(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, iox.WriteCells(&b, []int64{1, -2, 300}, ","))
	assert.Equal(t, "1,-2,300", b.String())

	b.Reset()
	require.NoError(t, iox.WriteCells(&b, []int64(nil), ","))
	assert.Empty(t, b.String())
}

func TestErrWriter_sticky(t *testing.T) {
	ew := iox.NewErrWriter(&failWriter{n: 1})
	_, err := ew.Write([]byte("ok"))
	require.NoError(t, err)
	_, err = ew.Write([]byte("boom"))
	require.Error(t, err)
	_, err2 := ew.Write([]byte("again"))
	assert.Equal(t, err, err2)
	assert.Same(t, ew, iox.NewErrWriter(ew))

	err = iox.WriteCells(iox.NewErrWriter(&failWriter{}), []int64{1, 2}, ",")
	assert.EqualError(t, err, "write failed: disk full")
}
