package gene

import "errors"

var (
	// ErrInvalidIndividualID is returned by [Snapshot.Validate] when an
	// individual has an empty ID. All individuals must have non-empty identifiers.
	ErrInvalidIndividualID = errors.New("individual ID must not be empty")

	// ErrDuplicateIndividualID is returned by [Snapshot.Validate] when two
	// individuals share the same ID. Individual IDs must be unique.
	ErrDuplicateIndividualID = errors.New("duplicate individual ID")

	// ErrInvalidRelationshipID is returned by [Snapshot.Validate] when a
	// relationship has an empty ID.
	ErrInvalidRelationshipID = errors.New("relationship ID must not be empty")

	// ErrInvalidRelationshipEndpoint is returned by [Snapshot.Validate] when a
	// relationship has an empty source or target ID. Endpoints referencing
	// unknown individuals are tolerated (the edge is simply never drawn), but
	// the IDs themselves must be present.
	ErrInvalidRelationshipEndpoint = errors.New("relationship endpoints must not be empty")
)

// Gender tags an individual for display purposes. Unknown genders are valid
// input and fall back to neutral colors and lexicographic spouse ordering.
type Gender string

const (
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderUnknown Gender = "unknown"
)

// Normalize maps arbitrary gender strings onto the three recognized tags.
func (g Gender) Normalize() Gender {
	switch g {
	case GenderFemale, GenderMale:
		return g
	default:
		return GenderUnknown
	}
}

// RelationshipType classifies an edge between two individuals.
type RelationshipType string

const (
	RelParentChild RelationshipType = "parent-child"
	RelSpouse      RelationshipType = "spouse"
	RelSibling     RelationshipType = "sibling"
	RelOther       RelationshipType = "other"
)

// Individual is a read-only input record describing one person.
//
// Generation is the depth recorded by the upstream pipeline, with root
// ancestors at 0. The fallback layout trusts this field exclusively; the tree
// layout recomputes depth during traversal and uses this one only for the
// generation histogram.
type Individual struct {
	ID         string   `json:"id" bson:"id"`
	Name       string   `json:"name,omitempty" bson:"name,omitempty"`
	ParentIDs  []string `json:"parent_ids,omitempty" bson:"parent_ids,omitempty"`
	Gender     Gender   `json:"gender,omitempty" bson:"gender,omitempty"`
	Generation int      `json:"generation" bson:"generation"`
}

// Relationship is a directed edge in the flat relationship list.
type Relationship struct {
	ID       string           `json:"id" bson:"id"`
	SourceID string           `json:"source_id" bson:"source_id"`
	TargetID string           `json:"target_id" bson:"target_id"`
	Type     RelationshipType `json:"type" bson:"type"`
}

// TreeAdapter exposes traversal lookups over the genealogy data. A nil
// adapter means traversal capability is unavailable and callers must degrade
// to generation-banded layout.
type TreeAdapter interface {
	// ChildrenOf returns the children of the given individual in the order
	// they should appear left to right.
	ChildrenOf(id string) []Individual

	// SpousesOf returns the spouses of the given individual.
	SpousesOf(id string) []Individual
}

// Snapshot bundles one immutable view of the genealogy data. The layout
// engine never mutates a snapshot; each invocation reads it once.
type Snapshot struct {
	Individuals   []Individual
	Relationships []Relationship
	Adapter       TreeAdapter
}

// HasTraversal reports whether the snapshot carries a usable adapter.
func (s *Snapshot) HasTraversal() bool { return s.Adapter != nil }

// Validate checks input shape and returns the first violation found.
// Shape errors (missing IDs) are the only hard failures the layout engine
// surfaces; malformed domain data merely degrades the result.
func (s *Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Individuals))
	for _, ind := range s.Individuals {
		if ind.ID == "" {
			return ErrInvalidIndividualID
		}
		if _, dup := seen[ind.ID]; dup {
			return ErrDuplicateIndividualID
		}
		seen[ind.ID] = struct{}{}
	}
	for _, rel := range s.Relationships {
		if rel.ID == "" {
			return ErrInvalidRelationshipID
		}
		if rel.SourceID == "" || rel.TargetID == "" {
			return ErrInvalidRelationshipEndpoint
		}
	}
	return nil
}

// Index returns a lookup map from individual ID to its position in the
// snapshot's individual list.
func (s *Snapshot) Index() map[string]int {
	m := make(map[string]int, len(s.Individuals))
	for i, ind := range s.Individuals {
		m[ind.ID] = i
	}
	return m
}

// GenerationHistogram counts individuals per recorded generation depth.
// Returns an empty map for an empty snapshot.
func (s *Snapshot) GenerationHistogram() map[int]int {
	h := make(map[int]int, 8)
	for _, ind := range s.Individuals {
		h[ind.Generation]++
	}
	return h
}

// MaxGenerationCount returns the size of the most populated generation,
// or 0 for an empty snapshot.
func (s *Snapshot) MaxGenerationCount() int {
	var max int
	for _, n := range s.GenerationHistogram() {
		if n > max {
			max = n
		}
	}
	return max
}

// MapAdapter is a TreeAdapter backed by in-memory lookup tables. It is the
// standard adapter for snapshots assembled from flat lists and the test
// double for the layout engine.
type MapAdapter struct {
	Children map[string][]Individual
	Spouses  map[string][]Individual
}

// ChildrenOf implements TreeAdapter.
func (a *MapAdapter) ChildrenOf(id string) []Individual { return a.Children[id] }

// SpousesOf implements TreeAdapter.
func (a *MapAdapter) SpousesOf(id string) []Individual { return a.Spouses[id] }

// AdapterFromRelationships derives a MapAdapter from the flat relationship
// list: parent-child relationships become child lookups (in list order, which
// fixes sibling order downstream) and spouse relationships become symmetric
// spouse lookups.
func AdapterFromRelationships(individuals []Individual, relationships []Relationship) *MapAdapter {
	byID := make(map[string]Individual, len(individuals))
	for _, ind := range individuals {
		byID[ind.ID] = ind
	}

	a := &MapAdapter{
		Children: make(map[string][]Individual),
		Spouses:  make(map[string][]Individual),
	}

	for _, rel := range relationships {
		src, okS := byID[rel.SourceID]
		dst, okD := byID[rel.TargetID]
		if !okS || !okD {
			continue
		}
		switch rel.Type {
		case RelParentChild:
			a.Children[src.ID] = append(a.Children[src.ID], dst)
		case RelSpouse:
			a.Spouses[src.ID] = append(a.Spouses[src.ID], dst)
			a.Spouses[dst.ID] = append(a.Spouses[dst.ID], src)
		}
	}

	return a
}
