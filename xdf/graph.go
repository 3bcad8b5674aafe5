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

import (
	"fmt"
	"sort"
	"strings"
)

// mathNode labels a Math with the parameter/role it belongs to, purely for
// diagnostics: CycleError.Members reports these labels, not raw source
// text, so a cycle can be read at a glance.
type mathNode struct {
	m     *Math
	label string
}

// mathsOf returns every Math directly owned by p, labeled by parameter id
// and role. A Scalar owns one; a Function or Table owns one per embedded
// axis plus, for a Table, every ZAxis equation.
func mathsOf(p Parameter) []mathNode {
	id := p.Meta().UniqueID
	switch t := p.(type) {
	case *Scalar:
		if t.Math != nil {
			return []mathNode{{t.Math, id}}
		}
	case *Function:
		var out []mathNode
		if t.X != nil && t.X.Kind == AxisEmbedded && t.X.Math != nil {
			out = append(out, mathNode{t.X.Math, id + ".x"})
		}
		if t.Y != nil && t.Y.Kind == AxisEmbedded && t.Y.Math != nil {
			out = append(out, mathNode{t.Y.Math, id + ".y"})
		}
		return out
	case *Table:
		var out []mathNode
		if t.XAxis != nil && t.XAxis.Kind == AxisEmbedded && t.XAxis.Math != nil {
			out = append(out, mathNode{t.XAxis.Math, id + ".x"})
		}
		if t.YAxis != nil && t.YAxis.Kind == AxisEmbedded && t.YAxis.Math != nil {
			out = append(out, mathNode{t.YAxis.Math, id + ".y"})
		}
		if t.ZAxis != nil {
			for i, m := range t.ZAxis.ZMaths {
				out = append(out, mathNode{m, fmt.Sprintf("%s.z[%d]", id, i)})
			}
		}
		return out
	}
	return nil
}

// buildMathGraph collects every Math in the document and the edges a
// VarLinked reference draws from one Math to the Math(s) owned by the
// parameter it links to (spec.md §4.6).
func (d *Document) buildMathGraph() (map[*Math]mathNode, map[*Math][]*Math) {
	labels := make(map[*Math]mathNode)
	for _, p := range d.Parameters {
		for _, n := range mathsOf(p) {
			labels[n.m] = n
		}
	}
	edges := make(map[*Math][]*Math, len(labels))
	for m := range labels {
		for _, linkedID := range m.LinkedNames() {
			p, ok := d.Lookup(linkedID)
			if !ok {
				continue
			}
			for _, dep := range mathsOf(p) {
				edges[m] = append(edges[m], dep.m)
			}
		}
	}
	return labels, edges
}

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// detectMathCycle walks the Math graph depth-first looking for a back edge
// into a node still on the recursion stack. Traversal order over the
// labels map is sorted by label first so a cyclic document always reports
// the same cycle, run to run.
func detectMathCycle(labels map[*Math]mathNode, edges map[*Math][]*Math, docPath string) (*CycleError, []*Math) {
	color := make(map[*Math]int, len(labels))
	var stack []*Math
	var found *CycleError
	var members []*Math

	var visit func(m *Math) bool
	visit = func(m *Math) bool {
		color[m] = colorGray
		stack = append(stack, m)
		for _, dep := range edges[m] {
			switch color[dep] {
			case colorGray:
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				members = append([]*Math(nil), stack[start:]...)
				names := make([]string, len(members))
				for i, s := range members {
					names[i] = labels[s].label
				}
				via := labels[dep].label
				for _, v := range m.Vars {
					if v.Kind == VarLinked && (via == v.LinkedParamID || strings.HasPrefix(via, v.LinkedParamID+".")) {
						via = v.Name
						break
					}
				}
				found = &CycleError{kind: KindMathCycle, Members: names, Via: via, Doc: docPath}
				return true
			case colorWhite:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[m] = colorBlack
		return false
	}

	for _, m := range sortedMathNodes(labels) {
		if color[m] == colorWhite {
			if visit(m) {
				return found, members
			}
		}
	}
	return nil, nil
}

func sortedMathNodes(labels map[*Math]mathNode) []*Math {
	out := make([]*Math, 0, len(labels))
	for m := range labels {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return labels[out[i]].label < labels[out[j]].label })
	return out
}

// buildAxisGraph collects every Table in the document and the edges a
// TableLinkedAxis draws from one Table to the Table it references
// (spec.md §4.6's second graph).
func (d *Document) buildAxisGraph() (map[string]*Table, map[string][]string) {
	tables := make(map[string]*Table)
	for _, p := range d.Parameters {
		if t, ok := p.(*Table); ok {
			tables[t.Info.UniqueID] = t
		}
	}
	edges := make(map[string][]string, len(tables))
	for id, t := range tables {
		for _, ax := range []*Axis{t.XAxis, t.YAxis} {
			if ax != nil && ax.Kind == AxisTableLinked {
				edges[id] = append(edges[id], ax.LinkedTableID)
			}
		}
	}
	return tables, edges
}

func detectAxisCycle(tables map[string]*Table, edges map[string][]string, docPath string) (*CycleError, []string) {
	color := make(map[string]int, len(tables))
	var stack []string
	var found *CycleError
	var members []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = colorGray
		stack = append(stack, id)
		for _, dep := range edges[id] {
			switch color[dep] {
			case colorGray:
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				members = append([]string(nil), stack[start:]...)
				via := dep
				if t := tables[id]; t != nil {
					for _, ax := range []*Axis{t.XAxis, t.YAxis} {
						if ax != nil && ax.Kind == AxisTableLinked && ax.LinkedTableID == dep {
							via = id + "." + ax.ID
							break
						}
					}
				}
				found = &CycleError{kind: KindAxisCycle, Members: append([]string(nil), members...), Via: via, Doc: docPath}
				return true
			case colorWhite:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = colorBlack
		return false
	}

	ids := make([]string, 0, len(tables))
	for id := range tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if color[id] == colorWhite {
			if visit(id) {
				return found, members
			}
		}
	}
	return nil, nil
}

// validate runs both reference-graph checks and the per-Math live-CELL
// check (spec.md §4.6), called once from Open. A tolerated error kind is
// recorded on the offending Math/Table (so the same error resurfaces on
// first value access, per WithTolerated's contract) instead of failing
// Open outright.
func (d *Document) validate() error {
	labels, mathEdges := d.buildMathGraph()
	if cyc, members := detectMathCycle(labels, mathEdges, d.Path); cyc != nil {
		if !d.tolerates(KindMathCycle) {
			return cyc
		}
		for _, m := range members {
			m.cycleErr = cyc
		}
	}

	reg := d.engine.Registry()
	for m := range labels {
		if err := m.CheckLiveCell(reg); err != nil {
			if !d.tolerates(KindCellEquationError) {
				return err
			}
			m.liveErr = err
		}
	}

	tables, axisEdges := d.buildAxisGraph()
	if cyc, members := detectAxisCycle(tables, axisEdges, d.Path); cyc != nil {
		if !d.tolerates(KindAxisCycle) {
			return cyc
		}
		for _, id := range members {
			tables[id].cycleErr = cyc
		}
	}

	return nil
}
