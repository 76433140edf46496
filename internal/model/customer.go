package model

// Customer carries the contact details entered (or prefilled from the
// authenticated profile) at the summary step.  All fields are free
// form; the ticketing backend validates them at purchase time.
type Customer struct {
    FirstName   string `json:"first_name"`
    LastName    string `json:"last_name"`
    Email       string `json:"email"`
    PhoneNumber string `json:"phone_number"`
}

// Complete reports whether every contact field has been filled in.
// Purchase submission requires a complete customer.
func (c Customer) Complete() bool {
    return c.FirstName != "" && c.LastName != "" && c.Email != "" && c.PhoneNumber != ""
}

// Merge overlays the non-nil fields of upd onto c and returns the
// result.  Nil fields leave the existing value untouched, which gives
// form inputs field-level updates without clobbering their siblings.
func (c Customer) Merge(upd CustomerUpdate) Customer {
    if upd.FirstName != nil {
        c.FirstName = *upd.FirstName
    }
    if upd.LastName != nil {
        c.LastName = *upd.LastName
    }
    if upd.Email != nil {
        c.Email = *upd.Email
    }
    if upd.PhoneNumber != nil {
        c.PhoneNumber = *upd.PhoneNumber
    }
    return c
}

// CustomerUpdate is a partial customer: only the fields present in the
// update are applied.  Pointers distinguish "not sent" from "cleared".
type CustomerUpdate struct {
    FirstName   *string `json:"first_name"`
    LastName    *string `json:"last_name"`
    Email       *string `json:"email"`
    PhoneNumber *string `json:"phone_number"`
}
