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

package pipeline

import (
	"github.com/db47h/intcode/vm"
	"gonum.org/v1/gonum/stat/combin"
)

// Search calls fn with every permutation of values and returns the highest
// result along with the permutation that produced it.
//
// Permutations for which fn fails are skipped. If fn fails for all of them,
// Search returns the last error. fn must not retain the slice it is given.
// Search returns ErrEmpty if values is empty.
func Search(values []vm.Cell, fn func(perm []vm.Cell) (vm.Cell, error)) (best vm.Cell, perm []vm.Cell, err error) {
	n := len(values)
	if n == 0 {
		return 0, nil, ErrEmpty
	}
	p := make([]vm.Cell, n)
	idx := make([]int, n)
	found := false
	for g := combin.NewPermutationGenerator(n, n); g.Next(); {
		for k, j := range g.Permutation(idx) {
			p[k] = values[j]
		}
		v, ferr := fn(p)
		if ferr != nil {
			log.Debugf("search %v: %v", p, ferr)
			err = ferr
			continue
		}
		if !found || v > best {
			best, perm, found = v, append(perm[:0], p...), true
		}
	}
	if !found {
		return 0, nil, err
	}
	return best, perm, nil
}
