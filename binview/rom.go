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

package binview

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ROM holds the flat byte image of an ECU firmware file. Every View
// projects a typed, shaped window onto a shared ROM so that writes through
// one parameter's view are immediately visible to any other view addressing
// overlapping bytes.
type ROM struct {
	Data []byte
}

// Load reads an entire ROM image into memory.
func Load(fileName string) (*ROM, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "fstat failed")
	}
	data := make([]byte, st.Size())
	if _, err := io.ReadFull(bufio.NewReader(f), data); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return &ROM{Data: data}, nil
}

// Save writes the ROM image back out in full.
func (r *ROM) Save(fileName string) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil {
			err = ferr
		}
		f.Close()
		if err != nil {
			os.Remove(fileName)
		}
	}()
	_, err = w.Write(r.Data)
	return errors.Wrap(err, "write failed")
}

// Size reports the ROM's byte length.
func (r *ROM) Size() int { return len(r.Data) }
