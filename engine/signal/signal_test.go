package signal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var errDecode = errors.New("decode error")

var singleResolutionTests = []struct {
	name    string
	fire    func(s *Signal[int])
	want    int
	wantErr error
}{
	{
		name: "success_then_failure",
		fire: func(s *Signal[int]) {
			s.Succeed(1)
			s.Fail(errDecode)
		},
		want: 1,
	},
	{
		name: "failure_then_success",
		fire: func(s *Signal[int]) {
			s.Fail(errDecode)
			s.Succeed(1)
		},
		wantErr: errDecode,
	},
	{
		name: "double_success",
		fire: func(s *Signal[int]) {
			s.Succeed(1)
			s.Succeed(2)
		},
		want: 1,
	},
	{
		name: "double_failure",
		fire: func(s *Signal[int]) {
			s.Fail(errDecode)
			s.Fail(errors.New("second"))
		},
		wantErr: errDecode,
	},
	{
		name: "nil_failure",
		fire: func(s *Signal[int]) {
			s.Fail(nil)
			s.Succeed(1)
		},
		wantErr: ErrUnspecified,
	},
}

func TestSingleResolution(t *testing.T) {
	for _, test := range singleResolutionTests {
		t.Run(test.name, func(t *testing.T) {
			s := New[int]()
			test.fire(s)

			for i := 0; i < 3; i++ {
				got, err := s.Wait(context.Background())
				if !errors.Is(err, test.wantErr) {
					t.Errorf("unexpected error on wait %d: got:%v want:%v", i, err, test.wantErr)
				}
				if got != test.want {
					t.Errorf("unexpected value on wait %d: got:%d want:%d", i, got, test.want)
				}
			}
		})
	}
}

func TestOnlyFirstFireResolves(t *testing.T) {
	s := New[int]()
	onSuccess, onFailure := s.Callbacks()
	if !s.Succeed(7) {
		t.Fatal("first fire did not resolve the signal")
	}
	if s.Succeed(8) {
		t.Error("second success fire resolved the signal")
	}
	if s.Fail(errDecode) {
		t.Error("failure after success resolved the signal")
	}
	onSuccess(9)
	onFailure(errDecode)

	got, err := s.Wait(context.Background())
	if err != nil || got != 7 {
		t.Errorf("unexpected outcome: got:(%d, %v) want:(7, <nil>)", got, err)
	}
}

func TestSynchronousFireBeforeWait(t *testing.T) {
	// Simulates a cached resource: the trigger fires the success handler
	// before it returns and before any waiter exists.
	s := New[string]()
	onSuccess, _ := s.Callbacks()
	trigger := func() { onSuccess("cached") }
	trigger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cached" {
		t.Errorf("unexpected value: got:%q want:%q", got, "cached")
	}
}

func TestAsynchronousFire(t *testing.T) {
	s := New[int]()
	onSuccess, _ := s.Callbacks()
	go func() {
		time.Sleep(10 * time.Millisecond)
		onSuccess(42)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("unexpected value: got:%d want:42", got)
	}
}

func TestConcurrentFires(t *testing.T) {
	for n := 0; n < 50; n++ {
		s := New[int]()
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			won []int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var ok bool
				if i%2 == 0 {
					ok = s.Succeed(i)
				} else {
					ok = s.Fail(errDecode)
				}
				if ok {
					mu.Lock()
					won = append(won, i)
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()
		if len(won) != 1 {
			t.Fatalf("expected exactly one winner, got %v", won)
		}

		got, err := s.Wait(context.Background())
		if won[0]%2 == 0 {
			if err != nil || got != won[0] {
				t.Errorf("outcome does not match winner %d: got:(%d, %v)", won[0], got, err)
			}
		} else if !errors.Is(err, errDecode) {
			t.Errorf("outcome does not match winner %d: got:(%d, %v)", won[0], got, err)
		}
	}
}

func TestWaitCancelled(t *testing.T) {
	s := New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Wait(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected error: got:%v want:%v", err, context.Canceled)
	}

	// A late fire still resolves the signal for other waiters.
	s.Succeed(3)
	got, err := s.Wait(context.Background())
	if err != nil || got != 3 {
		t.Errorf("unexpected outcome after cancelled wait: got:(%d, %v)", got, err)
	}
}

func TestResolvedWaitIgnoresCancelledContext(t *testing.T) {
	s := New[int]()
	s.Succeed(5)
	if _, err := s.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 1000; i++ {
		got, err := s.Wait(ctx)
		if err != nil || got != 5 {
			t.Fatalf("wait %d: unexpected outcome: got:(%d, %v) want:(5, <nil>)", i, got, err)
		}
	}
}

func TestDone(t *testing.T) {
	s := New[int]()
	select {
	case <-s.Done():
		t.Fatal("pending signal reported done")
	default:
	}
	s.Fail(errDecode)
	select {
	case <-s.Done():
	default:
		t.Fatal("resolved signal not reported done")
	}
}
