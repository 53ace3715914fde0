package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CustomerKind string

const (
	CustomerRefOnly   CustomerKind = "ref"
	CustomerPopulated CustomerKind = "populated"
)

// CustomerRef is the author of a comment. The comments API sometimes returns
// the bare customer id and sometimes the populated user; both are normalised
// here so the rest of the code never inspects the raw shape.
type CustomerRef struct {
	Kind CustomerKind
	ID   int
	User *UserSummary
}

func RefCustomer(id int) CustomerRef {
	return CustomerRef{Kind: CustomerRefOnly, ID: id}
}

func PopulatedCustomer(u UserSummary) CustomerRef {
	return CustomerRef{Kind: CustomerPopulated, ID: u.ID, User: &u}
}

// IsPopulated reports whether display data for the author is available.
func (c CustomerRef) IsPopulated() bool {
	return c.Kind == CustomerPopulated && c.User != nil
}

func (c CustomerRef) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CustomerPopulated:
		if c.User != nil {
			return json.Marshal(c.User)
		}
		return json.Marshal(c.ID)
	case CustomerRefOnly:
		return json.Marshal(c.ID)
	default:
		return []byte("null"), nil
	}
}

func (c *CustomerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = CustomerRef{}
		return nil
	}
	switch data[0] {
	case '{':
		var u UserSummary
		if err := json.Unmarshal(data, &u); err != nil {
			return fmt.Errorf("customer: %w", err)
		}
		*c = PopulatedCustomer(u)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("customer: %w", err)
		}
		id, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("customer: invalid id %q", s)
		}
		*c = RefCustomer(id)
		return nil
	default:
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("customer: %w", err)
		}
		*c = RefCustomer(id)
		return nil
	}
}
