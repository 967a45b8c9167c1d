package customer

import "strings"

// Criteria is a partially populated customer used as a query template.
// Empty fields are unset. Only the highest priority field that is set is
// compared: ID, then Name, then NationalID.
type Criteria struct {
	ID         string `json:"clienteId,omitempty"`
	Name       string `json:"nome,omitempty"`
	NationalID string `json:"cpf,omitempty"`
}

// ByID builds criteria that match a single identifier.
func ByID(id string) Criteria {
	return Criteria{ID: id}
}

// Empty reports whether no field is set.
func (q Criteria) Empty() bool {
	return q.ID == "" && q.Name == "" && q.NationalID == ""
}

// Match compares c against the highest priority field of q, ignoring case.
func (q Criteria) Match(c Customer) bool {
	switch {
	case q.ID != "":
		return strings.EqualFold(c.ID, q.ID)
	case q.Name != "":
		return strings.EqualFold(c.Name, q.Name)
	case q.NationalID != "":
		return strings.EqualFold(c.NationalID, q.NationalID)
	default:
		return false
	}
}

// Apply returns the items matching q in their original order.
func Apply(q Criteria, items []Customer) []Customer {
	matches := make([]Customer, 0)
	if q.Empty() {
		return matches
	}
	for _, item := range items {
		if q.Match(item) {
			matches = append(matches, item)
		}
	}
	return matches
}
