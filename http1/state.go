package http1

// State represents how far the request currently being parsed has progressed. It only ever
// moves forward, StartLine -> Headers -> Body, and is reset to StartLine by Handle as soon
// as the request reaches Body.
type State uint8

const (
	StartLine State = iota
	Headers
	Body
)

func (s State) String() string {
	switch s {
	case StartLine:
		return "StartLine"
	case Headers:
		return "Headers"
	case Body:
		return "Body"
	default:
		return "State(?)"
	}
}
