package contract

// State counter keys
const (
	MortgagePaid = "mortgage_paid"
	UncutProfits = "uncut_profits"
)

// State holds the named counters a contract keeps along one route.
// Routes never share a State: children work on a Clone.
type State map[string]float64

func NewState() State {
	return State{}
}

// Clone returns an independent copy. Cloning a nil State yields an empty one.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the counter, 0 when unset
func (s State) Get(key string) float64 {
	return s[key]
}
