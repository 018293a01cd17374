package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"rattan-bot/internal/catalog"
)

const defaultSubmitTimeout = 10 * time.Second

// Outcome describes an accepted transition. Which of the optional fields
// are set depends on the operation.
type Outcome struct {
	From Step
	To   Step

	// Color is the entry touched by color selection or quantity input.
	Color    SelectedColor
	Quantity int
	Unit     string

	// Field is the order detail written by text or delivery input.
	Field Field
	Value string
}

// Receipt is the result of a confirmed order. Err is set when the sink
// could not record it; the session is gone either way.
type Receipt struct {
	Payload Payload
	Err     error
}

// Delivered reports whether every sink recorded the order.
func (r Receipt) Delivered() bool {
	return r.Err == nil
}

// Engine runs the per-session order state machine.
type Engine struct {
	catalog       *catalog.Catalog
	store         Store
	submitter     Submitter
	logger        *zap.Logger
	submitTimeout time.Duration
}

type Option func(*Engine)

func WithSubmitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.submitTimeout = d
		}
	}
}

func NewEngine(
	cat *catalog.Catalog,
	store Store,
	submitter Submitter,
	logger *zap.Logger,
	opts ...Option,
) *Engine {
	if submitter == nil {
		submitter = Submitters(nil)
	}
	e := &Engine{
		catalog:       cat,
		store:         store,
		submitter:     submitter,
		logger:        logger,
		submitTimeout: defaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession discards whatever the party had and opens a fresh order.
func (e *Engine) StartSession(ctx context.Context, id int64) error {
	err := e.store.Update(ctx, id, func(*Session) (*Session, error) {
		return NewSession(), nil
	})
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	e.logger.Debug("Session started", zap.Int64("chat_id", id))
	return nil
}

// Reset drops the session from any step. It reports whether one existed.
func (e *Engine) Reset(ctx context.Context, id int64) (bool, error) {
	existed := false
	err := e.store.Update(ctx, id, func(s *Session) (*Session, error) {
		existed = s != nil
		return nil, nil
	})
	if err != nil {
		return false, fmt.Errorf("reset session: %w", err)
	}
	return existed, nil
}

// SelectColor adds the catalog item at index to the order and asks for its quantity.
func (e *Engine) SelectColor(ctx context.Context, id int64, index int) (Outcome, error) {
	return e.run(ctx, id, EventSelectColor, func(s *Session) (Outcome, error) {
		item, ok := e.catalog.Item(index)
		if !ok {
			return Outcome{}, invalidInput(s.Step, fmt.Sprintf("catalog index %d", index))
		}
		if s.hasColor(item.Name) {
			return Outcome{}, &RejectionError{Kind: ErrDuplicateSelection, Step: s.Step, Color: item.Name}
		}

		c := SelectedColor{Name: item.Name, PhotoURL: item.PhotoURL}
		s.Colors = append(s.Colors, c)
		s.CurrentColor = len(s.Colors) - 1
		return Outcome{Color: c}, nil
	})
}

// EditQuantity points quantity input back at an already selected color.
func (e *Engine) EditQuantity(ctx context.Context, id int64, entry int) (Outcome, error) {
	return e.run(ctx, id, EventEditQuantity, func(s *Session) (Outcome, error) {
		if entry < 0 || entry >= len(s.Colors) {
			return Outcome{}, invalidInput(s.Step, fmt.Sprintf("selected color index %d", entry))
		}
		s.CurrentColor = entry
		return Outcome{Color: s.Colors[entry]}, nil
	})
}

// SubmitQuantity records an integer quantity for the current color.
func (e *Engine) SubmitQuantity(ctx context.Context, id int64, raw string) (Outcome, error) {
	return e.run(ctx, id, EventQuantity, func(s *Session) (Outcome, error) {
		return applyQuantity(s, raw)
	})
}

// FinishSelection closes color selection once every color has a quantity.
func (e *Engine) FinishSelection(ctx context.Context, id int64) (Outcome, error) {
	return e.run(ctx, id, EventFinishSelection, func(s *Session) (Outcome, error) {
		if len(s.Colors) == 0 {
			return Outcome{}, &RejectionError{Kind: ErrIncompleteSelection, Step: s.Step, Detail: "no colors selected"}
		}
		if c, missing := s.firstMissingQuantity(); missing {
			return Outcome{}, &RejectionError{Kind: ErrIncompleteSelection, Step: s.Step, Color: c.Name, Detail: "missing quantity"}
		}
		return Outcome{}, nil
	})
}

// SubmitTextField stores free text for field, which must be the field the
// session is currently asking for.
func (e *Engine) SubmitTextField(ctx context.Context, id int64, field Field, raw string) (Outcome, error) {
	return e.run(ctx, id, EventText, func(s *Session) (Outcome, error) {
		if textFields[s.Step] != field {
			return Outcome{}, &RejectionError{Kind: ErrUnexpectedStep, Step: s.Step, Detail: string(field)}
		}
		return applyText(s, raw)
	})
}

// HandleText routes free text by the current step: a quantity while
// choosing colors, otherwise the detail being collected.
func (e *Engine) HandleText(ctx context.Context, id int64, raw string) (Outcome, error) {
	return e.runFor(ctx, id, func(s *Session) (Event, action) {
		if s.Step == StepQuantity {
			return EventQuantity, func(s *Session) (Outcome, error) {
				return applyQuantity(s, raw)
			}
		}
		return EventText, func(s *Session) (Outcome, error) {
			return applyText(s, raw)
		}
	})
}

// ChooseDelivery stores one of DeliveryOptions.
func (e *Engine) ChooseDelivery(ctx context.Context, id int64, option string) (Outcome, error) {
	return e.run(ctx, id, EventDelivery, func(s *Session) (Outcome, error) {
		if !validDelivery(option) {
			return Outcome{}, invalidInput(s.Step, fmt.Sprintf("delivery option %q", option))
		}
		s.setField(FieldDelivery, option)
		return Outcome{Field: FieldDelivery, Value: option}, nil
	})
}

// Summary renders the order for confirmation without changing it.
func (e *Engine) Summary(ctx context.Context, id int64) (string, error) {
	var text string
	err := e.store.Update(ctx, id, func(s *Session) (*Session, error) {
		if s == nil {
			return nil, notStarted()
		}
		if s.Step != StepConfirmation {
			return nil, &RejectionError{Kind: ErrUnexpectedStep, Step: s.Step, Detail: "summary"}
		}
		text = RenderSummary(s)
		return s, nil
	})
	if err != nil {
		return "", e.rejected(id, "summary", err)
	}
	return text, nil
}

// Snapshot returns a copy of the session.
func (e *Engine) Snapshot(ctx context.Context, id int64) (*Session, error) {
	var snap *Session
	err := e.store.Update(ctx, id, func(s *Session) (*Session, error) {
		if s == nil {
			return nil, notStarted()
		}
		snap = s.Clone()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Confirm closes the session and hands the order to the submitter. The
// session is removed before submitting, so a repeated confirm is rejected
// as not started while the first one is still in flight.
func (e *Engine) Confirm(ctx context.Context, id int64) (Receipt, error) {
	var payload Payload
	_, err := e.run(ctx, id, EventConfirm, func(s *Session) (Outcome, error) {
		payload = buildPayload(s)
		return Outcome{}, nil
	})
	if err != nil {
		return Receipt{}, err
	}

	subCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.submitTimeout)
	defer cancel()

	receipt := Receipt{Payload: payload}
	if err := e.submitter.Submit(subCtx, payload); err != nil {
		receipt.Err = fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
		e.logger.Warn("Failed to submit order",
			zap.Int64("chat_id", id),
			zap.Int("colors", len(payload.Colors)),
			zap.Error(err))
		return receipt, nil
	}

	e.logger.Info("Order submitted",
		zap.Int64("chat_id", id),
		zap.Int("colors", len(payload.Colors)))
	return receipt, nil
}

// Cancel drops the session from the confirmation step without submitting.
func (e *Engine) Cancel(ctx context.Context, id int64) error {
	_, err := e.run(ctx, id, EventCancel, func(*Session) (Outcome, error) {
		return Outcome{}, nil
	})
	return err
}

// action mutates everything but Step; run sets Step from the transition table.
type action func(s *Session) (Outcome, error)

func (e *Engine) run(ctx context.Context, id int64, ev Event, act action) (Outcome, error) {
	return e.runFor(ctx, id, func(*Session) (Event, action) {
		return ev, act
	})
}

func (e *Engine) runFor(ctx context.Context, id int64, resolve func(s *Session) (Event, action)) (Outcome, error) {
	var (
		out Outcome
		ev  Event
	)
	err := e.store.Update(ctx, id, func(s *Session) (*Session, error) {
		if s == nil {
			return nil, notStarted()
		}

		var act action
		ev, act = resolve(s)

		to, err := next(s.Step, ev)
		if err != nil {
			return nil, err
		}

		res, err := act(s)
		if err != nil {
			return nil, err
		}
		res.From, res.To = s.Step, to
		out = res

		if to.Terminal() {
			return nil, nil
		}
		s.Step = to
		return s, nil
	})
	if err != nil {
		return Outcome{}, e.rejected(id, string(ev), err)
	}

	e.logger.Debug("Step changed",
		zap.Int64("chat_id", id),
		zap.String("event", string(ev)),
		zap.String("from", string(out.From)),
		zap.String("to", string(out.To)))
	return out, nil
}

func (e *Engine) rejected(id int64, op string, err error) error {
	if IsRejection(err) {
		e.logger.Debug("Input rejected",
			zap.Int64("chat_id", id),
			zap.String("op", op),
			zap.Error(err))
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func applyQuantity(s *Session, raw string) (Outcome, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Outcome{}, invalidInput(s.Step, fmt.Sprintf("quantity %q is not a number", raw))
	}

	if s.CurrentColor < 0 || s.CurrentColor >= len(s.Colors) {
		return Outcome{}, &RejectionError{Kind: ErrUnexpectedStep, Step: s.Step, Detail: "no color awaiting quantity"}
	}

	c := &s.Colors[s.CurrentColor]
	c.Quantity = &qty
	return Outcome{
		Color:    *c,
		Quantity: qty,
		Unit:     CoilLabel(qty),
	}, nil
}

func applyText(s *Session, raw string) (Outcome, error) {
	field := textFields[s.Step]
	if strings.TrimSpace(raw) == "" {
		return Outcome{}, invalidInput(s.Step, fmt.Sprintf("empty %s", field))
	}
	s.setField(field, raw)
	return Outcome{Field: field, Value: raw}, nil
}
