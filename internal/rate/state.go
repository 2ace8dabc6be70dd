package rate

import (
	"fxconvert/internal/domain"
	"time"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

const (
	DefaultAmount = "1"
	DefaultFrom   = "USD"
	DefaultTo     = "EUR"

	MsgLoading = "Fetching exchange rates..."
	MsgLoaded  = "Exchange rates loaded successfully!"
)

// State is the application state owned by the console loop. Every operation
// returns a new value; the receiver is never mutated.
type State struct {
	Table     *domain.RateTable
	FetchedAt time.Time
	Status    Status
	Message   string

	Amount string
	From   string
	To     string

	// Result is the last successful conversion, nil when there is none.
	Result     *domain.ConversionResult
	ConvertErr error
}

func NewState() State {
	return State{Status: StatusIdle, Amount: DefaultAmount}
}

func (s State) Loaded() bool { return s.Table.Len() > 0 }

func (s State) HasResult() bool { return s.Result != nil }

// Codes lists selectable currencies in lexicographic order.
func (s State) Codes() []string { return s.Table.Codes() }

func (s State) BeginFetch() State {
	s.Status = StatusLoading
	s.Message = MsgLoading
	return s
}

// ApplyFetch replaces the table on success. On failure the previous table and
// selection stay untouched and only the status changes.
func (s State) ApplyFetch(res domain.FetchResult) State {
	if !res.OK() {
		err := res.Err
		if err == nil {
			err = domain.ErrParse
		}
		s.Status = StatusError
		s.Message = err.Error()
		return s
	}

	s.Table = res.Table
	s.FetchedAt = res.FetchedAt
	s.Status = StatusLoaded
	s.Message = MsgLoaded
	s.From, s.To = selection(res.Table, s.From, s.To)
	return s
}

func (s State) WithAmount(raw string) State {
	s.Amount = raw
	return s
}

func (s State) WithFrom(code string) State {
	s.From = NormalizeCode(code)
	return s
}

func (s State) WithTo(code string) State {
	s.To = NormalizeCode(code)
	return s
}

// Convert runs the converter with the current form values. A failure clears
// the previous result and records the error in its place.
func (s State) Convert(c *Converter) (State, error) {
	res, err := c.ConvertInput(s.Amount, s.From, s.To, s.Table)
	if err != nil {
		s.Result = nil
		s.ConvertErr = err
		return s, err
	}
	s.Result = &res
	s.ConvertErr = nil
	return s, nil
}

// ConvertWith converts the given form values and commits them only when the
// conversion succeeds. On failure the form keeps its previous values and only
// the error replaces the result.
func (s State) ConvertWith(c *Converter, amount, from, to string) (State, error) {
	next := s.WithAmount(amount).WithFrom(from).WithTo(to)
	next, err := next.Convert(c)
	if err != nil {
		s.Result = nil
		s.ConvertErr = err
		return s, err
	}
	return next, nil
}

// Swap exchanges source and target and recomputes when a result is shown.
func (s State) Swap(c *Converter) State {
	s.From, s.To = s.To, s.From
	if s.HasResult() {
		s, _ = s.Convert(c)
	}
	return s
}

// selection keeps the current pair when the new table still has it and
// otherwise falls back to USD and EUR, then to the first available codes.
func selection(table *domain.RateTable, from, to string) (string, string) {
	codes := table.Codes()
	pick := func(current, preferred, avoid string) string {
		if table.Has(current) {
			return current
		}
		if table.Has(preferred) && preferred != avoid {
			return preferred
		}
		for _, c := range codes {
			if c != avoid {
				return c
			}
		}
		return codes[0]
	}
	from = pick(from, DefaultFrom, "")
	to = pick(to, DefaultTo, from)
	return from, to
}
