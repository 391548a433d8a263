package roster

// =============================================================================
// REPLACEMENT - Tagged union of the three substitute choices
// =============================================================================

// ReplacementKind discriminates the three ways an operator can fill a leave
// day: a registered staff member, a contractor already on file, or a
// contractor supplied on the spot.
type ReplacementKind string

const (
	ReplaceWithPersonnel     ReplacementKind = "personnel"
	ReplaceWithExistingJoker ReplacementKind = "existing_joker"
	ReplaceWithNewJoker      ReplacementKind = "new_joker"
)

// Replacement is the operator's substitute choice. Construct it with one of
// the three constructors below; each case carries exactly the fields it
// needs and nothing else.
type Replacement struct {
	kind        ReplacementKind
	personnelID PersonnelID
	jokerID     JokerID
	newJoker    JokerInfo
}

// PersonnelReplacement selects a registered staff member as substitute.
func PersonnelReplacement(id PersonnelID) Replacement {
	return Replacement{kind: ReplaceWithPersonnel, personnelID: id}
}

// ExistingJokerReplacement selects a contractor already on file.
func ExistingJokerReplacement(id JokerID) Replacement {
	return Replacement{kind: ReplaceWithExistingJoker, jokerID: id}
}

// NewJokerReplacement carries freshly supplied contractor details; the
// assigner persists a JokerPersonnel before any roster row is written.
func NewJokerReplacement(info JokerInfo) Replacement {
	return Replacement{kind: ReplaceWithNewJoker, newJoker: info}
}

func (r Replacement) Kind() ReplacementKind { return r.kind }

// Type maps the union case onto the persisted replacement_type value.
func (r Replacement) Type() ReplacementType {
	if r.kind == ReplaceWithPersonnel {
		return ReplacementPersonnel
	}
	return ReplacementJoker
}

// Validate checks the case carries its required fields.
func (r Replacement) Validate() error {
	switch r.kind {
	case ReplaceWithPersonnel:
		if r.personnelID == "" {
			return ErrMissingReplacement
		}
	case ReplaceWithExistingJoker:
		if r.jokerID == "" {
			return ErrMissingReplacement
		}
	case ReplaceWithNewJoker:
		if r.newJoker.Name == "" {
			return ErrMissingReplacement
		}
	default:
		return ErrMissingReplacement
	}
	return nil
}
