package order

// Step is a stage of the order conversation.
type Step string

const (
	StepCatalog      Step = "catalog"
	StepQuantity     Step = "quantity"
	StepName         Step = "name"
	StepPhone        Step = "phone"
	StepDelivery     Step = "delivery"
	StepCity         Step = "city"
	StepOffice       Step = "office"
	StepComment      Step = "comment"
	StepConfirmation Step = "confirmation"

	// Terminal steps are never stored; reaching one removes the session.
	StepSubmitted Step = "submitted"
	StepCancelled Step = "cancelled"
)

// Terminal reports whether the session ends on entering s.
func (s Step) Terminal() bool {
	return s == StepSubmitted || s == StepCancelled
}

// Event is an input the party can produce.
type Event string

const (
	EventSelectColor     Event = "select_color"
	EventEditQuantity    Event = "edit_quantity"
	EventQuantity        Event = "quantity"
	EventFinishSelection Event = "finish_selection"
	EventText            Event = "text"
	EventDelivery        Event = "delivery"
	EventConfirm         Event = "confirm"
	EventCancel          Event = "cancel"
)

type transition struct {
	from  Step
	event Event
}

// Pairs missing from the table are rejected.
var transitions = map[transition]Step{
	{StepCatalog, EventSelectColor}:     StepQuantity,
	{StepCatalog, EventEditQuantity}:    StepQuantity,
	{StepCatalog, EventFinishSelection}: StepName,
	{StepQuantity, EventQuantity}:       StepCatalog,
	{StepName, EventText}:               StepPhone,
	{StepPhone, EventText}:              StepDelivery,
	{StepDelivery, EventDelivery}:       StepCity,
	{StepCity, EventText}:               StepOffice,
	{StepOffice, EventText}:             StepComment,
	{StepComment, EventText}:            StepConfirmation,
	{StepConfirmation, EventConfirm}:    StepSubmitted,
	{StepConfirmation, EventCancel}:     StepCancelled,
}

func next(from Step, ev Event) (Step, error) {
	to, ok := transitions[transition{from: from, event: ev}]
	if !ok {
		return from, &RejectionError{Kind: ErrUnexpectedStep, Step: from, Detail: string(ev)}
	}
	return to, nil
}

// Field names an order detail collected along the way.
type Field string

const (
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldDelivery Field = "delivery"
	FieldCity     Field = "city"
	FieldOffice   Field = "office"
	FieldComment  Field = "comment"
)

// textFields maps free-text steps to the field they fill.
var textFields = map[Step]Field{
	StepName:    FieldName,
	StepPhone:   FieldPhone,
	StepCity:    FieldCity,
	StepOffice:  FieldOffice,
	StepComment: FieldComment,
}

// DeliveryOptions is the closed set of delivery methods.
var DeliveryOptions = []string{"Нова Пошта", "Укрпошта", "Meest", "Самовивіз"}

func validDelivery(option string) bool {
	for _, o := range DeliveryOptions {
		if o == option {
			return true
		}
	}
	return false
}
