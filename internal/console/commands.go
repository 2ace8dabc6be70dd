package console

import (
	"fmt"
	"strings"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
)

type action int

const (
	actionNone action = iota
	actionRefresh
	actionQuit
)

const codesPerLine = 12

const helpText = `Commands:
  list                          show available currencies
  amount <value>                set the amount to convert
  from <code>                   set the source currency
  to <code>                     set the target currency
  swap                          swap source and target
  convert [amount [from [to]]]  convert with the current values
  refresh                       fetch the latest rates
  status                        show rates status and current selection
  help                          show this help
  quit                          exit
`

// execute applies one input line to the state and reports what the loop should do next.
func (c *Console) execute(state rate.State, line string) (rate.State, action) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return state, actionNone
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		c.printf("%s", helpText)
	case "list", "currencies":
		c.list(state)
	case "amount":
		if len(args) != 1 {
			c.usage("amount <value>")
			break
		}
		state = state.WithAmount(args[0])
		c.printf("Amount: %s\n", state.Amount)
	case "from":
		if code, ok := c.selectCode(state, args, "from <code>"); ok {
			state = state.WithFrom(code)
			c.printf("From: %s\n", state.From)
		}
	case "to":
		if code, ok := c.selectCode(state, args, "to <code>"); ok {
			state = state.WithTo(code)
			c.printf("To: %s\n", state.To)
		}
	case "swap":
		hadResult := state.HasResult()
		state = state.Swap(c.converter)
		c.printf("From: %s  To: %s\n", state.From, state.To)
		if state.HasResult() {
			c.renderResult(state)
		} else if hadResult {
			c.renderConvertError(state.ConvertErr)
		}
	case "convert":
		if len(args) > 3 {
			c.usage("convert [amount [from [to]]]")
			break
		}
		state = c.convert(state, args)
	case "refresh":
		return state, actionRefresh
	case "status":
		c.status(state)
	case "quit", "exit", "q":
		return state, actionQuit
	default:
		c.colors.fail.Fprintf(c.out, "Unknown command %q, type 'help' for commands\n", fields[0])
	}
	return state, actionNone
}

func (c *Console) convert(state rate.State, args []string) rate.State {
	amount, from, to := state.Amount, state.From, state.To
	if len(args) > 0 {
		amount = args[0]
	}
	if len(args) > 1 {
		from = args[1]
	}
	if len(args) > 2 {
		to = args[2]
	}

	state, err := state.ConvertWith(c.converter, amount, from, to)
	if err != nil {
		c.renderConvertError(err)
		return state
	}
	c.renderResult(state)
	return state
}

// selectCode mirrors a drop-down: once rates are loaded only listed codes can be chosen.
func (c *Console) selectCode(state rate.State, args []string, usage string) (string, bool) {
	if len(args) != 1 {
		c.usage(usage)
		return "", false
	}
	code := rate.NormalizeCode(args[0])
	if state.Loaded() && !state.Table.Has(code) {
		c.renderConvertError(fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, code))
		return "", false
	}
	return code, true
}

func (c *Console) list(state rate.State) {
	codes := state.Codes()
	if len(codes) == 0 {
		c.renderConvertError(domain.ErrRatesNotLoaded)
		return
	}
	for i := 0; i < len(codes); i += codesPerLine {
		end := min(i+codesPerLine, len(codes))
		c.printf("%s\n", strings.Join(codes[i:end], " "))
	}
	c.colors.muted.Fprintf(c.out, "%d currencies\n", len(codes))
}

func (c *Console) status(state rate.State) {
	switch state.Status {
	case rate.StatusIdle:
		c.printf("Rates not requested yet\n")
	default:
		c.renderStatus(state)
	}
	if updated := rate.FormatUpdated(state.FetchedAt); updated != "" {
		c.colors.muted.Fprintln(c.out, updated)
	}
	c.printf("Amount: %s  From: %s  To: %s\n", state.Amount, state.From, state.To)
	switch {
	case state.HasResult():
		c.renderResult(state)
	case state.ConvertErr != nil:
		c.renderConvertError(state.ConvertErr)
	}
}

func (c *Console) renderResult(state rate.State) {
	c.colors.result.Fprintln(c.out, rate.FormatResult(*state.Result))
}

func (c *Console) renderConvertError(err error) {
	c.colors.fail.Fprintln(c.out, "Error: "+err.Error())
}

func (c *Console) usage(u string) {
	c.printf("Usage: %s\n", u)
}
