package tasklist_test

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"tasklist/internal/tasklist"
	"tasklist/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	phases []tasklist.Phase
	counts []int
}

func (o *recordingObserver) ObserveFetch(phase tasklist.Phase, elapsed time.Duration, tasks int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phases = append(o.phases, phase)
	o.counts = append(o.counts, tasks)
}

func (o *recordingObserver) calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.phases)
}

func waitState(t *testing.T, c *tasklist.Component) tasklist.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	state, err := c.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	return state
}

func TestComponent_InitialStateIsLoading(t *testing.T) {
	c := tasklist.New(testutil.NewFakeService())

	state := c.State()
	if state.Phase() != tasklist.PhaseLoading {
		t.Errorf("phase = %v, want loading", state.Phase())
	}
	if state.Err != "" || len(state.Tasks) != 0 {
		t.Errorf("unexpected initial state: %+v", state)
	}
}

func TestComponent_Populated(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")
	svc.AddTask("a2", "Walk dog")
	obs := &recordingObserver{}

	c := tasklist.New(svc, tasklist.WithObserver(obs))
	c.Mount(context.Background())
	state := waitState(t, c)

	if state.Phase() != tasklist.PhasePopulated {
		t.Fatalf("phase = %v, want populated", state.Phase())
	}
	if got := testutil.TaskNames(state.Tasks); got != "Buy milk,Walk dog" {
		t.Errorf("names = %q", got)
	}
	if state.Tasks[0].ID != "a1" || state.Tasks[1].ID != "a2" {
		t.Errorf("ids = %q,%q", state.Tasks[0].ID, state.Tasks[1].ID)
	}
	if obs.calls() != 1 || obs.phases[0] != tasklist.PhasePopulated || obs.counts[0] != 2 {
		t.Errorf("observer saw %v %v", obs.phases, obs.counts)
	}
}

func TestComponent_Empty(t *testing.T) {
	c := tasklist.New(testutil.NewFakeService())
	c.Mount(context.Background())
	state := waitState(t, c)

	if state.Phase() != tasklist.PhaseEmpty {
		t.Errorf("phase = %v, want empty", state.Phase())
	}
	if state.Loading {
		t.Error("loading should be false after the fetch")
	}
}

func TestComponent_ErrorIsLoggedAndMessageFixed(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")
	svc.Err = testutil.ErrNetwork

	var logBuf bytes.Buffer
	c := tasklist.New(svc, tasklist.WithLogger(log.New(&logBuf, "", 0)))
	c.Mount(context.Background())
	state := waitState(t, c)

	if state.Phase() != tasklist.PhaseError {
		t.Fatalf("phase = %v, want error", state.Phase())
	}
	if state.Err != tasklist.FailedMessage {
		t.Errorf("Err = %q, want %q", state.Err, tasklist.FailedMessage)
	}
	if len(state.Tasks) != 0 {
		t.Errorf("expected no tasks alongside an error, got %d", len(state.Tasks))
	}
	if !strings.Contains(logBuf.String(), "connection refused") {
		t.Errorf("expected underlying error in log, got %q", logBuf.String())
	}
}

func TestComponent_MountIsOneShot(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc)

	c.Mount(context.Background())
	c.Mount(context.Background())
	waitState(t, c)
	c.Mount(context.Background())

	if svc.Calls() != 1 {
		t.Errorf("FetchTasks called %d times, want 1", svc.Calls())
	}
}

func TestComponent_LoadingWhileInFlight(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")
	svc.Gate = make(chan struct{})
	svc.Started = make(chan struct{}, 1)

	c := tasklist.New(svc)
	c.Mount(context.Background())
	<-svc.Started

	if phase := c.State().Phase(); phase != tasklist.PhaseLoading {
		t.Errorf("phase during fetch = %v, want loading", phase)
	}

	close(svc.Gate)
	if phase := waitState(t, c).Phase(); phase != tasklist.PhasePopulated {
		t.Errorf("phase after fetch = %v, want populated", phase)
	}
}

func TestComponent_UnmountDiscardsOutcome(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")
	svc.Gate = make(chan struct{})
	svc.Started = make(chan struct{}, 1)
	obs := &recordingObserver{}

	var logBuf bytes.Buffer
	c := tasklist.New(svc, tasklist.WithObserver(obs), tasklist.WithLogger(log.New(&logBuf, "", 0)))
	c.Mount(context.Background())
	<-svc.Started

	c.Unmount()
	waitState(t, c)

	if phase := c.State().Phase(); phase != tasklist.PhaseLoading {
		t.Errorf("phase after unmount = %v, want loading", phase)
	}
	if obs.calls() != 0 {
		t.Errorf("observer called %d times after unmount", obs.calls())
	}
	if logBuf.Len() != 0 {
		t.Errorf("expected no error log after unmount, got %q", logBuf.String())
	}
}

func TestComponent_UnmountBeforeMount(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc)

	c.Unmount()
	c.Mount(context.Background())
	waitState(t, c)

	if svc.Calls() != 0 {
		t.Errorf("FetchTasks called %d times, want 0", svc.Calls())
	}
}

func TestComponent_OnChange(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")

	got := make(chan tasklist.State, 1)
	c := tasklist.New(svc)
	c.OnChange(func(s tasklist.State) { got <- s })
	c.Mount(context.Background())

	select {
	case s := <-got:
		if s.Phase() != tasklist.PhasePopulated {
			t.Errorf("phase = %v, want populated", s.Phase())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnChange not called")
	}
}

func TestComponent_WaitHonoursContext(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Gate = make(chan struct{})
	defer close(svc.Gate)

	c := tasklist.New(svc)
	c.Mount(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := c.Wait(ctx)
	if err == nil {
		t.Fatal("expected Wait to return the context error")
	}
	if state.Phase() != tasklist.PhaseLoading {
		t.Errorf("phase = %v, want loading", state.Phase())
	}
}

func TestComponent_OnChangeAllListeners(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a1", "Buy milk")

	var mu sync.Mutex
	var order []string
	c := tasklist.New(svc)
	for _, name := range []string{"first", "second", "third"} {
		c.OnChange(func(tasklist.State) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		})
	}
	c.Mount(context.Background())
	if _, err := c.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	// Done closes after the last listener returns.
	mu.Lock()
	defer mu.Unlock()
	if strings.Join(order, ",") != "first,second,third" {
		t.Errorf("listeners ran as %v, want first,second,third", order)
	}
}
