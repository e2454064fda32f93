package order

import (
	"encoding/json"
	"errors"
)

// UnmarshalJSON decodes a submitted order leniently: a member of the wrong
// JSON type is treated as absent so Validate can classify it. Only
// malformed JSON is an error.
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = Payload{}

	members, ok := splitObject(data)
	if !ok {
		return nil
	}

	if raw, ok := members["items"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil {
			p.Items = items
		}
		delete(members, "items")
	}

	if raw, ok := members["customer"]; ok {
		var c Customer
		if json.Unmarshal(raw, &c) == nil {
			p.Customer = &c
		}
		delete(members, "customer")
	}

	p.Extra = nonEmpty(members)
	return nil
}

// MarshalJSON writes the payload with its extra members.
func (p Payload) MarshalJSON() ([]byte, error) {
	type fields Payload
	return mergeMembers(fields(p), p.Extra)
}

var errCustomerNotObject = errors.New("customer is not a JSON object")

// UnmarshalJSON decodes a customer object. Fields that are not strings are
// left empty.
func (c *Customer) UnmarshalJSON(data []byte) error {
	members, ok := splitObject(data)
	if !ok {
		return errCustomerNotObject
	}

	*c = Customer{
		Email:      takeString(members, "email"),
		Name:       takeString(members, "name"),
		Street:     takeString(members, "street"),
		PostalCode: takeString(members, "postal-code"),
		City:       takeString(members, "city"),
	}
	c.Extra = nonEmpty(members)
	return nil
}

// MarshalJSON writes the customer with its extra members.
func (c Customer) MarshalJSON() ([]byte, error) {
	type fields Customer
	return mergeMembers(fields(c), c.Extra)
}

// UnmarshalJSON decodes a stored order, keeping unknown members.
func (o *Order) UnmarshalJSON(data []byte) error {
	type fields Order
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	members, _ := splitObject(data)
	delete(members, "id")
	delete(members, "items")
	delete(members, "customer")

	*o = Order(f)
	o.Extra = nonEmpty(members)
	return nil
}

// MarshalJSON writes the order with its extra members.
func (o Order) MarshalJSON() ([]byte, error) {
	type fields Order
	return mergeMembers(fields(o), o.Extra)
}

// orderExtra drops members an Order defines itself.
func orderExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		switch k {
		case "id", "items", "customer":
			continue
		}
		out[k] = v
	}
	return nonEmpty(out)
}

// splitObject returns the members of a JSON object; ok is false for any
// other JSON value, null included.
func splitObject(data []byte) (map[string]json.RawMessage, bool) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil || members == nil {
		return nil, false
	}
	return members, true
}

func takeString(members map[string]json.RawMessage, key string) string {
	raw, ok := members[key]
	if !ok {
		return ""
	}
	delete(members, key)

	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func nonEmpty(members map[string]json.RawMessage) map[string]json.RawMessage {
	if len(members) == 0 {
		return nil
	}
	return members
}

// mergeMembers encodes known and adds the extra members it does not
// already define.
func mergeMembers(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := members[k]; !ok {
			members[k] = v
		}
	}
	return json.Marshal(members)
}
