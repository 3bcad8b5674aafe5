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

package xdf

import "github.com/tuners/xdfcore/binview"

// Flag is a named bit within an aligned integer (spec.md §4.8).
type Flag struct {
	Info         Meta
	Address      int64
	ElementBytes int
	Mask         uint64
	LittleEndian bool
}

func (f *Flag) Meta() *Meta     { return &f.Info }
func (f *Flag) Kind() ParamKind { return KindFlag }

func (f *Flag) view(e *Engine) (*binview.View, error) {
	var flags uint32
	if f.LittleEndian {
		flags |= binview.FlagLittleEndian
	}
	dtype := binview.NewDType(f.ElementBytes*8, flags)
	addr := int(e.Doc().BaseOffset() + f.Address)
	return binview.NewView(e.Doc().ROM(), addr, dtype, 1, 0, 0, 0, false)
}

// Value reports whether the masked bit is set.
func (f *Flag) Value(e *Engine) (bool, error) {
	v, err := f.view(e)
	if err != nil {
		return false, err
	}
	raw := uint64(int64(v.ReadAt(0, 0)))
	return raw&f.Mask != 0, nil
}

// SetValue writes back the full element with the masked bit set when on is
// true and cleared when it is false.
func (f *Flag) SetValue(e *Engine, on bool) error {
	v, err := f.view(e)
	if err != nil {
		return err
	}
	raw := uint64(int64(v.ReadAt(0, 0)))
	if on {
		raw |= f.Mask
	} else {
		raw &^= f.Mask
	}
	if err := v.WriteAtRaw(0, 0, float64(int64(raw))); err != nil {
		return err
	}
	e.Invalidate()
	return nil
}
