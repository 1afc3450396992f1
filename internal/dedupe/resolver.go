package dedupe

// Reason explains why a group's winner was selected.
type Reason string

const (
	ReasonPDFPriority    Reason = "pdf-priority"    // Group had at least one PDF; the first PDF wins.
	ReasonFirstAvailable Reason = "first-available" // No PDF in a multi-member group; the first member wins.
	ReasonSingle         Reason = "single"          // Group had exactly one member.
)

// Outcome is the selection result for one logical document. Winner is always
// a member of the originating group; Skipped is the group minus the winner,
// in input order.
type Outcome struct {
	Winner  Candidate
	Skipped []Candidate
	Reason  Reason
}

// GroupName returns the logical name the outcome was selected for.
func (o Outcome) GroupName() string {
	return o.Winner.LogicalName()
}

// Resolve groups the candidate paths by logical name and selects exactly one
// winner per group. Input order is preserved twice over: groups appear in
// first-seen order, and members keep their input order within each group.
// Duplicate full paths are tolerated as independent group members.
//
// Resolve never fails: malformed paths (empty string, no extension) are
// grouped like any other, and if grouping itself blows up the resolver
// degrades to the identity mapping so a resolver defect can never block
// processing.
func Resolve(paths []string) (outcomes []Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcomes = identityOutcomes(paths)
		}
	}()

	var order []string
	groups := make(map[string][]Candidate)
	for _, p := range paths {
		c := Candidate{Path: p}
		name := c.LogicalName()
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], c)
	}

	outcomes = make([]Outcome, 0, len(order))
	for _, name := range order {
		outcomes = append(outcomes, selectWinner(groups[name]))
	}
	return outcomes
}

// selectWinner applies the priority rule to one non-empty group.
func selectWinner(members []Candidate) Outcome {
	if len(members) == 1 {
		return Outcome{Winner: members[0], Reason: ReasonSingle}
	}

	for i, m := range members {
		if m.IsPDF() {
			return Outcome{
				Winner:  m,
				Skipped: without(members, i),
				Reason:  ReasonPDFPriority,
			}
		}
	}
	return Outcome{
		Winner:  members[0],
		Skipped: without(members, 0),
		Reason:  ReasonFirstAvailable,
	}
}

// without returns members minus the element at idx, preserving order.
func without(members []Candidate, idx int) []Candidate {
	out := make([]Candidate, 0, len(members)-1)
	out = append(out, members[:idx]...)
	return append(out, members[idx+1:]...)
}

// identityOutcomes is the degraded fallback: every path becomes its own
// singleton outcome, in input order.
func identityOutcomes(paths []string) []Outcome {
	outcomes := make([]Outcome, 0, len(paths))
	for _, p := range paths {
		outcomes = append(outcomes, Outcome{Winner: Candidate{Path: p}, Reason: ReasonSingle})
	}
	return outcomes
}
