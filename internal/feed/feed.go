// Package feed decodes a tabular order-flow feed and replays it into a
// book. The format follows the LOBSTER message files: six comma-separated
// columns, no header.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"skoll/internal/book"
)

// EventType enumerates the feed's Type column.
type EventType int

const (
	Submit         EventType = 1 // submission of a new limit order
	CancelPartial  EventType = 2 // partial deletion of a resting order
	Delete         EventType = 3 // total deletion of a resting order
	ExecuteVisible EventType = 4
	ExecuteHidden  EventType = 5
	Halt           EventType = 7 // trading halt indicator
)

var ErrBadRecord = errors.New("malformed feed record")

// Event is one row of the feed: seconds after midnight with fractional
// precision, the event type, the order reference number, share size, price
// in ticks and the order direction.
type Event struct {
	Time      decimal.Decimal
	Type      EventType
	OrderID   int64
	Size      int
	Price     int
	Direction book.Side
}

// Decode reads the whole stream into events, in feed order.
func Decode(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true

	var events []Event
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ev, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
}

func parseRecord(record []string) (Event, error) {
	ts, err := decimal.NewFromString(record[0])
	if err != nil {
		return Event{}, fmt.Errorf("time %q: %w", record[0], ErrBadRecord)
	}

	typ, err := strconv.Atoi(record[1])
	if err != nil {
		return Event{}, fmt.Errorf("type %q: %w", record[1], ErrBadRecord)
	}
	switch EventType(typ) {
	case Submit, CancelPartial, Delete, ExecuteVisible, ExecuteHidden, Halt:
	default:
		return Event{}, fmt.Errorf("type %d: %w", typ, ErrBadRecord)
	}

	orderID, err := strconv.ParseInt(record[2], 10, 64)
	if err != nil {
		return Event{}, fmt.Errorf("order id %q: %w", record[2], ErrBadRecord)
	}
	size, err := strconv.Atoi(record[3])
	if err != nil {
		return Event{}, fmt.Errorf("size %q: %w", record[3], ErrBadRecord)
	}
	price, err := strconv.Atoi(record[4])
	if err != nil {
		return Event{}, fmt.Errorf("price %q: %w", record[4], ErrBadRecord)
	}

	direction, err := strconv.Atoi(record[5])
	if err != nil {
		return Event{}, fmt.Errorf("direction %q: %w", record[5], ErrBadRecord)
	}
	var side book.Side
	switch direction {
	case 1:
		side = book.Buy
	case -1:
		side = book.Sell
	default:
		return Event{}, fmt.Errorf("direction %d: %w", direction, ErrBadRecord)
	}

	return Event{
		Time:      ts,
		Type:      EventType(typ),
		OrderID:   orderID,
		Size:      size,
		Price:     price,
		Direction: side,
	}, nil
}
