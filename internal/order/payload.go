package order

import (
	"context"
	"errors"
)

type ColorLine struct {
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Payload is the confirmed order as sent to the recording endpoint.
type Payload struct {
	Colors   []ColorLine `json:"colors"`
	Delivery string      `json:"delivery"`
	Phone    string      `json:"phone"`
	Name     string      `json:"name"`
	City     string      `json:"city"`
	Postcode string      `json:"postcode"`
	Comment  string      `json:"comment"`
}

func buildPayload(s *Session) Payload {
	p := Payload{
		Colors:   make([]ColorLine, 0, len(s.Colors)),
		Delivery: s.field(FieldDelivery),
		Phone:    s.field(FieldPhone),
		Name:     s.field(FieldName),
		City:     s.field(FieldCity),
		Postcode: s.field(FieldOffice),
		Comment:  s.field(FieldComment),
	}
	for _, c := range s.Colors {
		line := ColorLine{Color: c.Name}
		if c.Quantity != nil {
			line.Quantity = *c.Quantity
		}
		p.Colors = append(p.Colors, line)
	}
	return p
}

// Submitter records a confirmed order. One call per order, no retries.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

type SubmitterFunc func(ctx context.Context, p Payload) error

func (f SubmitterFunc) Submit(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

// Submitters sends the payload to every sink in order and joins the failures.
type Submitters []Submitter

func (s Submitters) Submit(ctx context.Context, p Payload) error {
	var errs []error
	for _, sub := range s {
		if err := sub.Submit(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
