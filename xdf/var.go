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

// VarKind tags a Math's declared variable list (spec.md §3's "declared
// variable list: free + bound + linked + address-var").
type VarKind int

const (
	// VarBound is the implicit input ("X") of a pure-arithmetic Math.
	VarBound VarKind = iota
	// VarLinked names another Parameter whose converted value is substituted.
	VarLinked
	// VarAddress names a raw byte at a fixed ROM offset.
	VarAddress
	// VarFree is any other free name the loader could not classify; it is
	// kept as a variable entry but never resolves to a value and draws no
	// edge in the Math graph, so a Math that uses it fails with
	// UndefinedName when evaluated.
	VarFree
)

// Var is one entry in a Math's declared variable list.
type Var struct {
	Name string
	Kind VarKind

	// VarLinked
	LinkedParamID string

	// VarAddress
	AddressOffset int64
	AddressBits   int
	AddressLSBFirst bool
	AddressSigned   bool
}
