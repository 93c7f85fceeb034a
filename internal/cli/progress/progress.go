package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"shoctl/internal/cli/output"
)

// Status represents the state of a tracked step
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

// Item represents a single step being tracked
type Item struct {
	Name     string
	Status   Status
	Duration time.Duration
	Error    error
	started  time.Time
}

// Tracker renders progress for a fixed sequence of steps. In TTY mode a
// spinner animates the running step; otherwise plain lines are printed.
type Tracker struct {
	mu           sync.Mutex
	wg           sync.WaitGroup
	items        []Item
	current      int
	isTTY        bool
	stopChan     chan struct{}
	stopOnce     sync.Once
	spinnerFrame int
	actionVerb   string
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

// NewTrackerWithVerb creates a tracker for the named steps with a custom
// action verb, e.g. "Installing".
func NewTrackerWithVerb(names []string, verb string) *Tracker {
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{Name: name, Status: StatusPending}
	}
	return &Tracker{
		items:      items,
		current:    -1,
		isTTY:      term.IsTerminal(int(os.Stdout.Fd())),
		stopChan:   make(chan struct{}),
		actionVerb: verb,
	}
}

// Start begins tracking and starts the spinner animation if in TTY mode
func (t *Tracker) Start() {
	if t.isTTY {
		t.wg.Add(1)
		go t.animate()
	}
}

// StartItem marks an item as running
func (t *Tracker) StartItem(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = index
	t.items[index].Status = StatusRunning
	t.items[index].started = time.Now()
	if !t.isTTY {
		fmt.Printf("%s %s...\n", t.actionVerb, t.items[index].Name)
	}
}

// CompleteItem records the outcome of an item
func (t *Tracker) CompleteItem(index int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item := &t.items[index]
	item.Duration = time.Since(item.started)
	item.Error = err
	if err != nil {
		item.Status = StatusFailed
	} else {
		item.Status = StatusSuccess
	}
}

// PrintItemComplete prints the final line for a completed item
func (t *Tracker) PrintItemComplete(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item := t.items[index]
	if t.isTTY {
		t.clearLine()
	}
	if item.Status == StatusFailed {
		fmt.Printf("%s %s (%s)\n", output.Error(output.SymbolError), item.Name, item.Duration.Round(time.Millisecond))
		return
	}
	fmt.Printf("%s %s (%s)\n", output.Success(output.SymbolSuccess), item.Name, item.Duration.Round(time.Millisecond))
}

// Stop ends the spinner animation
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopChan)
	})
	t.wg.Wait()
	if t.isTTY {
		t.mu.Lock()
		t.clearLine()
		t.mu.Unlock()
	}
}

func (t *Tracker) animate() {
	defer t.wg.Done()
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopChan:
			return
		case <-ticker.C:
			t.mu.Lock()
			if t.current >= 0 && t.items[t.current].Status == StatusRunning {
				frame := spinnerFrames[t.spinnerFrame%len(spinnerFrames)]
				t.spinnerFrame++
				fmt.Printf("\r\033[K%s %s %s", output.Info(frame), t.actionVerb, t.items[t.current].Name)
			}
			t.mu.Unlock()
		}
	}
}

// clearLine erases the spinner line. Callers hold the mutex.
func (t *Tracker) clearLine() {
	fmt.Print("\r\033[K")
}

// Failed reports whether any completed item failed.
func (t *Tracker) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, item := range t.items {
		if item.Status == StatusFailed {
			return true
		}
	}
	return false
}
