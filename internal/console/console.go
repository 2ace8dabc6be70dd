package console

import (
	"bufio"
	"context"
	"fmt"
	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type fetcher interface {
	Fetch(ctx context.Context) domain.FetchResult
}

type publisher interface {
	Publish(res domain.FetchResult)
}

type Options struct {
	In  io.Reader
	Out io.Writer
	// Interactive enables colors and the input prompt.
	Interactive bool
}

type palette struct {
	loading *color.Color
	ok      *color.Color
	fail    *color.Color
	muted   *color.Color
	result  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		loading: color.New(color.FgYellow),
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		muted:   color.New(color.FgHiBlack),
		result:  color.New(color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.loading, p.ok, p.fail, p.muted, p.result} {
			c.DisableColor()
		}
	}
	return p
}

// Console is the interactive shell. Its Run loop is the only owner of the
// application state; fetches run in the background and report back through a
// channel.
type Console struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	colors      palette

	provider  fetcher
	converter *rate.Converter
	store     publisher

	refreshCh chan struct{}
}

func New(opts Options, provider fetcher, converter *rate.Converter, store publisher) *Console {
	return &Console{
		in:          opts.In,
		out:         opts.Out,
		interactive: opts.Interactive,
		colors:      newPalette(opts.Interactive),
		provider:    provider,
		converter:   converter,
		store:       store,
		refreshCh:   make(chan struct{}, 1),
	}
}

// RequestRefresh asks the loop for a fetch. Requests made while one is already
// queued are dropped.
func (c *Console) RequestRefresh(_ context.Context) {
	select {
	case c.refreshCh <- struct{}{}:
	default:
	}
}

// Run fetches rates, then processes commands until quit, EOF or ctx cancellation.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Currency Converter, type 'help' for commands\n")

	state := rate.NewState().BeginFetch()
	c.renderStatus(state)
	state = c.applyFetch(state, c.provider.Fetch(ctx))

	lines := c.readLines(ctx)
	fetches := make(chan domain.FetchResult, 1)
	loading := false

	start := func() {
		if loading {
			c.printf("Refresh already in progress\n")
			return
		}
		loading = true
		state = state.BeginFetch()
		c.renderStatus(state)
		go func() {
			fetches <- c.provider.Fetch(ctx)
		}()
	}

	c.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			var act action
			state, act = c.execute(state, line)
			switch act {
			case actionQuit:
				return nil
			case actionRefresh:
				start()
			}
			c.prompt()
		case res := <-fetches:
			loading = false
			state = c.applyFetch(state, res)
			c.prompt()
		case <-c.refreshCh:
			start()
			c.prompt()
		}
	}
}

func (c *Console) applyFetch(state rate.State, res domain.FetchResult) rate.State {
	state = state.ApplyFetch(res)
	if res.OK() {
		c.store.Publish(res)
		logrus.WithField("currencies", res.Table.Len()).Debug("Rate table replaced")
	}
	c.renderStatus(state)
	if res.OK() {
		c.colors.muted.Fprintln(c.out, rate.FormatUpdated(state.FetchedAt))
	}
	return state
}

func (c *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logrus.WithError(err).Warn("Reading input failed")
		}
	}()
	return lines
}

func (c *Console) renderStatus(s rate.State) {
	switch s.Status {
	case rate.StatusLoading:
		c.colors.loading.Fprintln(c.out, s.Message)
	case rate.StatusLoaded:
		c.colors.ok.Fprintln(c.out, s.Message)
	case rate.StatusError:
		c.colors.fail.Fprintln(c.out, s.Message)
	}
}

func (c *Console) prompt() {
	if c.interactive {
		c.printf("> ")
	}
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
