package pdf

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Info is the subset of an LHAPDF6 .info file the reader uses.
type Info struct {
	SetDesc    string  `yaml:"SetDesc"`
	Format     string  `yaml:"Format"`
	NumMembers int     `yaml:"NumMembers"`
	Flavors    []int   `yaml:"Flavors"`
	OrderQCD   int     `yaml:"OrderQCD"`
	XMin       float64 `yaml:"XMin"`
	XMax       float64 `yaml:"XMax"`
	QMin       float64 `yaml:"QMin"`
	QMax       float64 `yaml:"QMax"`
	MZ         float64 `yaml:"MZ"`
	AlphaSMZ   float64 `yaml:"AlphaS_MZ"`
}

// memberHeader is the YAML header at the top of a member .dat file.
type memberHeader struct {
	PdfType string `yaml:"PdfType"`
	Format  string `yaml:"Format"`
}

// subgrid is one Q range of an lhagrid1 member. values[flavour][ix*nq+iq].
type subgrid struct {
	logX   []float64
	logQ   []float64
	values map[int][]float64
}

// Grid is one member of an LHAPDF6 set.
type Grid struct {
	name     string
	member   int
	info     Info
	subgrids []subgrid
}

// LoadGrid reads member of set from dir/set.
func LoadGrid(dir, set string, member int) (*Grid, error) {
	setDir := filepath.Join(dir, set)

	info, err := readInfo(filepath.Join(setDir, set+".info"))
	if err != nil {
		return nil, err
	}
	if info.NumMembers > 0 && member >= info.NumMembers {
		return nil, fmt.Errorf("pdf set %s: member %d out of range (%d members)", set, member, info.NumMembers)
	}

	memberPath := filepath.Join(setDir, fmt.Sprintf("%s_%04d.dat", set, member))
	data, err := os.ReadFile(memberPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf member: %w", err)
	}

	subgrids, err := parseMember(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(memberPath), err)
	}

	return &Grid{name: set, member: member, info: info, subgrids: subgrids}, nil
}

func readInfo(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("read pdf info: %w", err)
	}
	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("parse pdf info %s: %w", filepath.Base(path), err)
	}
	if info.Format != "" && info.Format != "lhagrid1" {
		return Info{}, fmt.Errorf("pdf info %s: unsupported format %q", filepath.Base(path), info.Format)
	}
	return info, nil
}

// parseMember splits an lhagrid1 file on "---" separators: a YAML header
// followed by one block per subgrid.
func parseMember(data []byte) ([]subgrid, error) {
	var blocks [][]string
	var cur []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "---" {
			blocks = append(blocks, cur)
			cur = nil
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cur = append(cur, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	if len(blocks) < 2 {
		return nil, fmt.Errorf("no subgrids")
	}

	var header memberHeader
	if err := yaml.Unmarshal([]byte(strings.Join(blocks[0], "\n")), &header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if header.Format != "" && header.Format != "lhagrid1" {
		return nil, fmt.Errorf("unsupported format %q", header.Format)
	}

	var grids []subgrid
	for i, block := range blocks[1:] {
		if len(block) == 0 {
			continue
		}
		g, err := parseSubgrid(block)
		if err != nil {
			return nil, fmt.Errorf("subgrid %d: %w", i, err)
		}
		grids = append(grids, g)
	}
	if len(grids) == 0 {
		return nil, fmt.Errorf("no subgrids")
	}
	sort.Slice(grids, func(i, j int) bool { return grids[i].logQ[0] < grids[j].logQ[0] })
	return grids, nil
}

func parseSubgrid(lines []string) (subgrid, error) {
	if len(lines) < 3 {
		return subgrid{}, fmt.Errorf("expected x, Q and flavour lines")
	}
	xs, err := parseFloats(lines[0])
	if err != nil {
		return subgrid{}, fmt.Errorf("x knots: %w", err)
	}
	qs, err := parseFloats(lines[1])
	if err != nil {
		return subgrid{}, fmt.Errorf("Q knots: %w", err)
	}
	flavourVals, err := parseFloats(lines[2])
	if err != nil {
		return subgrid{}, fmt.Errorf("flavours: %w", err)
	}
	if len(xs) < 2 || len(qs) < 2 {
		return subgrid{}, fmt.Errorf("need at least 2 x and 2 Q knots, got %d and %d", len(xs), len(qs))
	}

	rows := lines[3:]
	if len(rows) != len(xs)*len(qs) {
		return subgrid{}, fmt.Errorf("expected %d value rows, got %d", len(xs)*len(qs), len(rows))
	}

	g := subgrid{
		logX:   logs(xs),
		logQ:   logs(qs),
		values: make(map[int][]float64, len(flavourVals)),
	}
	if !sort.Float64sAreSorted(g.logX) || !sort.Float64sAreSorted(g.logQ) {
		return subgrid{}, fmt.Errorf("knots must be increasing")
	}

	flavours := make([]int, len(flavourVals))
	for i, f := range flavourVals {
		id := int(f)
		if id == 0 {
			id = Gluon
		}
		flavours[i] = id
		g.values[id] = make([]float64, len(rows))
	}

	for r, row := range rows {
		vals, err := parseFloats(row)
		if err != nil {
			return subgrid{}, fmt.Errorf("row %d: %w", r, err)
		}
		if len(vals) != len(flavours) {
			return subgrid{}, fmt.Errorf("row %d: expected %d values, got %d", r, len(flavours), len(vals))
		}
		for i, id := range flavours {
			g.values[id][r] = vals[i]
		}
	}
	return g, nil
}

func parseFloats(line string) ([]float64, error) {
	fields := strings.Fields(line)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func logs(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Log(v)
	}
	return out
}

// Name implements Provider.
func (g *Grid) Name() string {
	return g.name
}

// Info returns the set metadata.
func (g *Grid) Info() Info {
	return g.info
}

// Member returns the loaded member index.
func (g *Grid) Member() int {
	return g.member
}

// XfxQ implements Provider. Points outside the grid are clamped to its
// edges; x outside (0, 1) gives 0.
func (g *Grid) XfxQ(id int, x, q float64) float64 {
	if !(x > 0) || x > 1 || !(q > 0) {
		return 0
	}
	if id == 0 {
		id = Gluon
	}

	lq := math.Log(q)
	sg := g.subgridFor(lq)
	vals, ok := sg.values[id]
	if !ok {
		return 0
	}

	lx := math.Log(x)
	ix, tx := locate(sg.logX, lx)
	iq, tq := locate(sg.logQ, lq)

	nq := len(sg.logQ)
	v00 := vals[ix*nq+iq]
	v01 := vals[ix*nq+iq+1]
	v10 := vals[(ix+1)*nq+iq]
	v11 := vals[(ix+1)*nq+iq+1]

	return (1-tx)*((1-tq)*v00+tq*v01) + tx*((1-tq)*v10+tq*v11)
}

// subgridFor picks the subgrid whose Q range holds lq, or the nearest one.
func (g *Grid) subgridFor(lq float64) *subgrid {
	for i := range g.subgrids {
		sg := &g.subgrids[i]
		if lq <= sg.logQ[len(sg.logQ)-1] {
			return sg
		}
	}
	return &g.subgrids[len(g.subgrids)-1]
}

// locate returns the cell index i and the fraction t in [0, 1] of v between
// knots[i] and knots[i+1], clamping v to the knot range.
func locate(knots []float64, v float64) (int, float64) {
	n := len(knots)
	if v <= knots[0] {
		return 0, 0
	}
	if v >= knots[n-1] {
		return n - 2, 1
	}
	i := sort.SearchFloat64s(knots, v) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i, (v - knots[i]) / (knots[i+1] - knots[i])
}
