package model

import (
    "fmt"
    "strconv"
    "strings"
)

// Seat describes a single seat in the auditorium seat map returned by
// the ticketing backend for a screening.  The map is a snapshot taken
// at fetch time; it does not change while a checkout is in progress.
//
// Fields:
//  ID         – backend identifier of the seat.
//  Row        – one-based row number within the auditorium.
//  SeatNumber – one-based seat number within the row.
//  Reserved   – whether another customer already holds this seat.
type Seat struct {
    ID         uint64 `json:"id"`
    Row        int    `json:"row"`
    SeatNumber int    `json:"seat_number"`
    Reserved   bool   `json:"reserved"`
}

// SeatMap groups the seats of an auditorium by row key.  Row keys are
// the backend's string keys; rows are rendered in ascending key order.
type SeatMap map[string][]Seat

// SeatRef identifies a seat by position only.  This is the shape the
// promotion-check and purchase endpoints expect in their payloads.
type SeatRef struct {
    RowNumber  int `json:"row_number"`
    SeatNumber int `json:"seat_number"`
}

// SeatID is the string identifier used as the join key between the
// seat map and ticket assignments.  The format is "S<id>-<row>-<seat>"
// so that the row and seat number can be recovered without another
// lookup, e.g. "S1-1-5" for seat 5 in row 1.
type SeatID string

// NewSeatID builds a SeatID from a seat-map entry.
func NewSeatID(s Seat) SeatID {
    return SeatID(fmt.Sprintf("S%d-%d-%d", s.ID, s.Row, s.SeatNumber))
}

// Ref parses the row and seat number encoded in the identifier.  It
// returns an error when the identifier does not follow the expected
// "S<id>-<row>-<seat>" format.
func (id SeatID) Ref() (SeatRef, error) {
    parts := strings.Split(string(id), "-")
    if len(parts) != 3 {
        return SeatRef{}, fmt.Errorf("malformed seat id %q", string(id))
    }
    row, err := strconv.Atoi(parts[1])
    if err != nil {
        return SeatRef{}, fmt.Errorf("malformed seat id %q: bad row", string(id))
    }
    num, err := strconv.Atoi(parts[2])
    if err != nil {
        return SeatRef{}, fmt.Errorf("malformed seat id %q: bad seat number", string(id))
    }
    return SeatRef{RowNumber: row, SeatNumber: num}, nil
}

// Label returns a compact human readable label for event payloads and
// logs, e.g. "R1S5".
func (id SeatID) Label() string {
    ref, err := id.Ref()
    if err != nil {
        return string(id)
    }
    return fmt.Sprintf("R%dS%d", ref.RowNumber, ref.SeatNumber)
}
