package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"riotcli/internal/domain"
)

type Prompter interface {
	// Prompt shows label and returns the next trimmed input line. End of input
	// and context cancellation both return an ErrCancelled error.
	Prompt(ctx context.Context, label string) (string, error)
}

var errPrompterClosed = errors.New("prompter closed after an abandoned prompt")

// LinePrompter reads lines on a background goroutine so a blocked read never
// holds up cancellation. Once a prompt is abandoned on ctx the prompter is
// closed: a line typed for that prompt is never handed to a later one.
type LinePrompter struct {
	in  io.Reader
	out io.Writer

	once   sync.Once
	lines  chan string
	done   chan struct{}
	stop   chan struct{}
	closed bool
	err    error
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:    in,
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
		stop:  make(chan struct{}),
	}
}

func (p *LinePrompter) start() {
	go func() {
		defer close(p.done)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case p.lines <- scanner.Text():
			case <-p.stop:
				return
			}
		}
		p.err = scanner.Err()
	}()
}

func (p *LinePrompter) Prompt(ctx context.Context, label string) (string, error) {
	if p.closed {
		return "", errors.Mark(errPrompterClosed, domain.ErrCancelled)
	}
	p.once.Do(p.start)

	fmt.Fprint(p.out, label)

	select {
	case line := <-p.lines:
		return strings.TrimSpace(line), nil
	case <-p.done:
		if p.err != nil {
			return "", errors.Mark(fmt.Errorf("read input: %w", p.err), domain.ErrCancelled)
		}
		return "", fmt.Errorf("end of input: %w", domain.ErrCancelled)
	case <-ctx.Done():
		p.closed = true
		close(p.stop)
		return "", errors.Mark(ctx.Err(), domain.ErrCancelled)
	}
}
