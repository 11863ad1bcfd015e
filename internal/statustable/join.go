package statustable

import (
	"fmt"
	"net/http"

	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
)

var ErrJoinCardinality apperrors.Error = apperrors.New("join cardinality violation").SetStatusCode(http.StatusInternalServerError)

// Cardinality is the relationship a join expects between its two sides.
type Cardinality int

const (
	// Unvalidated accepts duplicate keys on either side.
	Unvalidated Cardinality = iota
	// ManyToOne requires the right side keys to be unique.
	ManyToOne
	// OneToOne requires the keys of both sides to be unique.
	OneToOne
)

func (c Cardinality) String() string {
	switch c {
	case ManyToOne:
		return "many-to-one"
	case OneToOne:
		return "one-to-one"
	default:
		return "unvalidated"
	}
}

type joinPair struct {
	Left  int
	Right int // -1 when the left row has no match
}

// leftJoin pairs every left row with the right rows sharing its key. Rows
// without a match are kept once with Right == -1. A missing key (ok == false)
// never matches, not even another missing key. Duplicates forbidden by card
// are reported as ErrJoinCardinality.
func leftJoin[L, R any, K comparable](name string, left []L, leftKey func(L) (K, bool), right []R, rightKey func(R) (K, bool), card Cardinality) ([]joinPair, error) {
	index := make(map[K][]int, len(right))
	for i, r := range right {
		k, ok := rightKey(r)
		if !ok {
			continue
		}
		if card != Unvalidated && len(index[k]) > 0 {
			return nil, cardinalityError(name, card, "right", k)
		}
		index[k] = append(index[k], i)
	}

	var seen map[K]struct{}
	if card == OneToOne {
		seen = make(map[K]struct{}, len(left))
	}
	pairs := make([]joinPair, 0, len(left))
	for i, l := range left {
		k, ok := leftKey(l)
		if !ok {
			pairs = append(pairs, joinPair{Left: i, Right: -1})
			continue
		}
		if seen != nil {
			if _, dup := seen[k]; dup {
				return nil, cardinalityError(name, card, "left", k)
			}
			seen[k] = struct{}{}
		}
		matches := index[k]
		if len(matches) == 0 {
			pairs = append(pairs, joinPair{Left: i, Right: -1})
			continue
		}
		for _, r := range matches {
			pairs = append(pairs, joinPair{Left: i, Right: r})
		}
	}
	return pairs, nil
}

func cardinalityError(name string, card Cardinality, side string, key any) error {
	return ErrJoinCardinality.Msg(fmt.Sprintf("join cardinality violation: %s join is %s but key %v is duplicated on the %s side", name, card, key, side))
}
