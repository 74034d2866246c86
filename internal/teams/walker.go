// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package teams

import (
	"github.com/pdiddy/hsr-graph/internal/normalize"
	"github.com/pdiddy/hsr-graph/internal/registry"
)

// state is the walker's position in a table.
type state int

const (
	// stateIdle: no active subgroup.
	stateIdle state = iota
	// stateFlatHeader: a role header was seen outside any subgroup; the
	// next row is its single member row, if it is one.
	stateFlatHeader
	// stateInSubgroup: a banner opened a subgroup; member rows become teams.
	stateInSubgroup
)

type walker struct {
	page   string
	source string
	reg    *registry.Registry

	state    state
	subgroup string   // active subgroup label
	header   []string // pending flat-table role names

	// counters holds the number of teams created so far per normalized
	// subgroup label; flatCount does the same for flat-table teams.
	counters  map[string]int
	flatCount int

	sawBanner bool
	sawHeader bool
	sawRows   bool

	res Result
}

// Walk runs the table state machine over classified rows and returns the
// teams and memberships it accepted. Member names resolve through reg;
// every team carries sourceURL. Rows are consumed strictly in order.
//
// Subgrouped tables assign roles by column position (DPS, Support,
// Support, Sustain, Role_5, ...) and ignore role-header text; flat tables
// take roles from the header text. Each banner's counter is independent
// and keyed by the normalized subgroup label.
func Walk(page, sourceURL string, rows []Row, reg *registry.Registry) Result {
	w := &walker{
		page:     page,
		source:   sourceURL,
		reg:      reg,
		counters: make(map[string]int),
		res:      Result{Page: page},
	}
	for _, row := range rows {
		if row.Kind != KindSkip {
			w.sawRows = true
		}
		w.step(row)
	}
	w.res.Shape = w.shape()
	return w.res
}

func (w *walker) step(row Row) {
	switch w.state {
	case stateIdle:
		w.idle(row)
	case stateFlatHeader:
		w.flatMember(row)
	case stateInSubgroup:
		w.inSubgroup(row)
	}
}

func (w *walker) idle(row Row) {
	switch row.Kind {
	case KindBanner:
		w.enterSubgroup(row.Text)
	case KindRoleHeader:
		w.sawHeader = true
		w.header = row.Names
		w.state = stateFlatHeader
	case KindMember:
		w.res.Dropped++
	}
}

// flatMember consumes the single row after a flat role header whatever
// its kind. Only a member row yields a team; a banner or header in that
// position is swallowed.
func (w *walker) flatMember(row Row) {
	header := w.header
	w.header = nil
	w.state = stateIdle

	if row.Kind != KindMember {
		return
	}

	w.addTeam("", w.flatCount, row.Cells, func(col int) Role {
		if col < len(header) {
			return HeaderRole(header[col])
		}
		return RoleMember
	})
	w.flatCount++
}

func (w *walker) inSubgroup(row Row) {
	switch row.Kind {
	case KindBanner:
		w.enterSubgroup(row.Text)
	case KindRoleHeader:
		// Column labels under a banner are not propagated; the
		// positional convention applies to the member rows.
	case KindMember:
		key := normalize.Key(w.subgroup)
		w.addTeam(w.subgroup, w.counters[key], row.Cells, PositionalRole)
		w.counters[key]++
	}
}

func (w *walker) enterSubgroup(name string) {
	w.sawBanner = true
	w.subgroup = name
	w.state = stateInSubgroup
}

func (w *walker) addTeam(subgroup string, index int, cells []Cell, role func(col int) Role) {
	team, err := w.reg.Resolve(TeamLabel(w.page, subgroup, index), w.source)
	if err != nil {
		w.res.Dropped++
		return
	}
	w.res.Teams = append(w.res.Teams, Team{
		Resolution: team,
		Page:       w.page,
		Subgroup:   subgroup,
		Index:      index,
	})

	for col, cell := range cells {
		member, err := w.reg.Resolve(cell.LinkText, cell.Href)
		if err != nil {
			w.res.EmptyCells++
			continue
		}
		w.res.Memberships = append(w.res.Memberships, Membership{
			Team:   team.Key,
			Role:   role(col),
			Column: col,
			Member: member,
		})
	}
}

func (w *walker) shape() Shape {
	switch {
	case w.sawBanner:
		return ShapeSubgrouped
	case w.sawHeader:
		return ShapeFlat
	case w.sawRows:
		return ShapeUnrecognized
	default:
		return ShapeEmpty
	}
}
