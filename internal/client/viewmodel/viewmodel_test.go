package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
)

type fakeLister struct {
	mu      sync.Mutex
	cats    []models.Cat
	err     error
	calls   int
	ownerID int64
	gate    chan struct{}
}

func (f *fakeLister) ListCats(ctx context.Context) ([]models.Cat, error) {
	f.mu.Lock()
	f.calls++
	gate, cats, err := f.gate, f.cats, f.err
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return append([]models.Cat(nil), cats...), nil
}

func (f *fakeLister) ListCatsByOwner(ctx context.Context, ownerID int64) ([]models.Cat, error) {
	f.mu.Lock()
	f.ownerID = ownerID
	f.mu.Unlock()
	return f.ListCats(ctx)
}

func (f *fakeLister) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeDeleter struct {
	mu    sync.Mutex
	err   error
	ids   []int64
	gate  chan struct{}
	start chan struct{}
	// per-id overrides
	gates map[int64]chan struct{}
	errs  map[int64]error
}

func (f *fakeDeleter) DeleteCat(_ context.Context, id int64) (*models.Message, error) {
	f.mu.Lock()
	f.ids = append(f.ids, id)
	gate, start, err := f.gate, f.start, f.err
	if g, ok := f.gates[id]; ok {
		gate = g
	}
	if e, ok := f.errs[id]; ok {
		err = e
	}
	f.mu.Unlock()

	if start != nil {
		start <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &models.Message{Message: "Cat deleted successfully"}, nil
}

func sampleCats() []models.Cat {
	return []models.Cat{
		{ID: 1, Name: "Tama", Breed: "Japanese Bobtail", Personality: "Calm", Origin: "Tokyo", Color: "white",
			User: &models.UserInfo{ID: 1, Name: "Ann"}},
		{ID: 2, Name: "Luna", Breed: "Siamese", Personality: "Vocal", Color: "cream"},
		{ID: 3, Name: "Kuro", Breed: "Bombay", Personality: "Playful", Origin: "Kyoto",
			User: &models.UserInfo{ID: 2, Name: "Tokiko"}},
		{ID: 4, Name: "Momo", Breed: "Scottish Fold", Personality: "Shy"},
	}
}

func mounted(t *testing.T, cats []models.Cat, del *fakeDeleter) (*ViewModel, *fakeLister) {
	t.Helper()
	l := &fakeLister{cats: cats}
	if del == nil {
		del = &fakeDeleter{}
	}
	vm := New(AllCats(l), del)
	require.NoError(t, vm.Mount(context.Background()))
	return vm, l
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "mutating", StateMutating.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestMount_LoadsOnce(t *testing.T) {
	l := &fakeLister{cats: sampleCats()}
	vm := New(AllCats(l), &fakeDeleter{})
	assert.Equal(t, StateIdle, vm.State())

	require.NoError(t, vm.Mount(context.Background()))
	require.NoError(t, vm.Mount(context.Background()))

	assert.Equal(t, 1, l.calls)
	assert.Equal(t, StateReady, vm.State())
	assert.Empty(t, cmp.Diff(sampleCats(), vm.Cats()))
	assert.NoError(t, vm.Err())
}

func TestMount_OwnedBy(t *testing.T) {
	l := &fakeLister{cats: sampleCats()[:1]}
	vm := New(OwnedBy(l, 9), &fakeDeleter{})

	require.NoError(t, vm.Mount(context.Background()))
	assert.Equal(t, int64(9), l.ownerID)
	assert.Len(t, vm.Cats(), 1)
}

func TestMount_EmptyIsNotAnError(t *testing.T) {
	vm, _ := mounted(t, []models.Cat{}, nil)

	assert.Equal(t, StateReady, vm.State())
	assert.True(t, vm.Empty())
	assert.NoError(t, vm.Err())

	nilList, _ := mounted(t, nil, nil)
	assert.True(t, nilList.Empty())
	assert.NotNil(t, nilList.Cats())
}

func TestMount_FailureThenRetry(t *testing.T) {
	boom := errors.New("list cats failed: connection refused")
	l := &fakeLister{cats: sampleCats(), err: boom}
	vm := New(AllCats(l), &fakeDeleter{})

	err := vm.Mount(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateError, vm.State())
	assert.Equal(t, boom, vm.Err())
	assert.False(t, vm.Empty())

	l.fail(nil)
	require.NoError(t, vm.Retry(context.Background()))
	assert.Equal(t, StateReady, vm.State())
	assert.NoError(t, vm.Err())
	assert.Len(t, vm.Cats(), 4)
	assert.Equal(t, 2, l.calls)
}

func TestRetry_OnlyFromError(t *testing.T) {
	vm, l := mounted(t, sampleCats(), nil)

	require.NoError(t, vm.Retry(context.Background()))
	assert.Equal(t, 1, l.calls)

	idle := New(AllCats(l), &fakeDeleter{})
	require.NoError(t, idle.Retry(context.Background()))
	assert.Equal(t, StateIdle, idle.State())
}

func TestFilter_MatchesAcrossFields(t *testing.T) {
	cats := sampleCats()

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "tokyo", want: []int64{1}},
		{query: "TOK", want: []int64{1, 3}},
		{query: "siamese", want: []int64{2}},
		{query: "play", want: []int64{3}},
		{query: "cream", want: []int64{2}},
		{query: "ann", want: []int64{1}},
		{query: "  shy ", want: []int64{4}},
		{query: "nothing", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(cats, tt.query)
			ids := make([]int64, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_AbsentFieldsNeverMatch(t *testing.T) {
	cats := []models.Cat{{ID: 1, Name: "A", Breed: "B", Personality: "C"}}
	assert.Empty(t, Filter(cats, "null"))
	assert.Empty(t, Filter(cats, "undefined"))
}

func TestFilter_BlankQueryReturnsInput(t *testing.T) {
	cats := sampleCats()
	for _, q := range []string{"", "   ", "\t\n"} {
		assert.Empty(t, cmp.Diff(cats, Filter(cats, q)))
	}
}

func TestFilter_IdempotentAndCaseInsensitive(t *testing.T) {
	cats := sampleCats()
	for _, q := range []string{"tokyo", "To", "SIAM", "a", ""} {
		once := Filter(cats, q)
		assert.Empty(t, cmp.Diff(once, Filter(once, q)), q)
		assert.Empty(t, cmp.Diff(once, Filter(cats, strings.ToLower(q))), q)
		assert.Empty(t, cmp.Diff(once, Filter(cats, strings.ToUpper(q))), q)
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	cats := sampleCats()
	_ = Filter(cats, "tokyo")
	assert.Empty(t, cmp.Diff(sampleCats(), cats))
}

func TestFiltered_DoesNotFetch(t *testing.T) {
	vm, l := mounted(t, sampleCats(), nil)

	got := vm.Filtered("tokyo")
	require.Len(t, got, 1)
	assert.Equal(t, "Tama", got[0].Name)
	assert.Equal(t, 1, l.calls)
}

func TestDelete_RemovesExactlyThatCat(t *testing.T) {
	del := &fakeDeleter{}
	vm, l := mounted(t, sampleCats(), del)

	require.NoError(t, vm.Delete(context.Background(), 2))

	want := sampleCats()
	want = append(want[:1], want[2:]...)
	assert.Empty(t, cmp.Diff(want, vm.Cats()))
	assert.Equal(t, []int64{2}, del.ids)
	assert.Equal(t, 1, l.calls)
	assert.Equal(t, StateReady, vm.State())
	assert.False(t, vm.IsDeleting(2))
}

func TestDelete_FailureLeavesCollectionUntouched(t *testing.T) {
	boom := errors.New("Cat not found")
	del := &fakeDeleter{err: boom}
	vm, l := mounted(t, sampleCats(), del)
	before := vm.Cats()

	err := vm.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, cmp.Diff(before, vm.Cats()))
	assert.Equal(t, StateError, vm.State())
	assert.Equal(t, boom, vm.Err())
	assert.False(t, vm.IsDeleting(3))
	assert.Equal(t, 1, l.calls)

	// The user may try again.
	del.mu.Lock()
	del.err = nil
	del.mu.Unlock()
	require.NoError(t, vm.Delete(context.Background(), 3))
	assert.Len(t, vm.Cats(), 3)
	assert.Equal(t, StateReady, vm.State())
}

func TestDelete_MarksCatWhileInFlight(t *testing.T) {
	del := &fakeDeleter{gate: make(chan struct{}), start: make(chan struct{})}
	vm, _ := mounted(t, sampleCats(), del)

	done := make(chan error, 1)
	go func() { done <- vm.Delete(context.Background(), 1) }()
	<-del.start

	assert.True(t, vm.IsDeleting(1))
	assert.False(t, vm.IsDeleting(2))
	assert.Equal(t, StateMutating, vm.State())
	assert.Len(t, vm.Cats(), 4, "cat stays visible until confirmed")

	err := vm.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyBusy)

	close(del.gate)
	require.NoError(t, <-done)
	assert.False(t, vm.IsDeleting(1))
	assert.Len(t, vm.Cats(), 3)
}

func TestDelete_OverlappingFailureIsKept(t *testing.T) {
	boom := errors.New("Cat not found")
	first, second := make(chan struct{}), make(chan struct{})
	del := &fakeDeleter{
		start: make(chan struct{}, 2),
		gates: map[int64]chan struct{}{1: first, 2: second},
		errs:  map[int64]error{1: boom},
	}
	vm, _ := mounted(t, sampleCats(), del)

	done1, done2 := make(chan error, 1), make(chan error, 1)
	go func() { done1 <- vm.Delete(context.Background(), 1) }()
	go func() { done2 <- vm.Delete(context.Background(), 2) }()
	<-del.start
	<-del.start

	close(first)
	assert.ErrorIs(t, <-done1, boom)
	assert.Equal(t, StateMutating, vm.State(), "another delete is still in flight")
	assert.Equal(t, boom, vm.Err())

	close(second)
	require.NoError(t, <-done2)
	assert.Equal(t, StateError, vm.State())
	assert.Equal(t, boom, vm.Err())

	ids := make([]int64, 0, 3)
	for _, c := range vm.Cats() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, ids)
}

func TestDelete_AfterFailedRetryStaysInError(t *testing.T) {
	listErr := errors.New("list cats failed: connection refused")
	del := &fakeDeleter{err: errors.New("Cat not found")}
	vm, l := mounted(t, sampleCats(), del)

	require.Error(t, vm.Delete(context.Background(), 1))
	l.fail(listErr)
	require.ErrorIs(t, vm.Retry(context.Background()), listErr)

	del.mu.Lock()
	del.err = nil
	del.mu.Unlock()
	require.NoError(t, vm.Delete(context.Background(), 2))

	assert.Equal(t, StateError, vm.State())
	assert.Equal(t, listErr, vm.Err())
	assert.Len(t, vm.Cats(), 3)

	// A good fetch clears it.
	l.fail(nil)
	require.NoError(t, vm.Retry(context.Background()))
	assert.Equal(t, StateReady, vm.State())
	assert.NoError(t, vm.Err())
}

func TestDelete_Guards(t *testing.T) {
	l := &fakeLister{cats: sampleCats()}
	del := &fakeDeleter{}
	vm := New(AllCats(l), del)

	assert.ErrorIs(t, vm.Delete(context.Background(), 1), ErrNotLoaded)

	require.NoError(t, vm.Mount(context.Background()))
	assert.ErrorIs(t, vm.Delete(context.Background(), 99), ErrUnknownCat)

	vm.Close()
	assert.ErrorIs(t, vm.Delete(context.Background(), 1), ErrClosed)
	assert.Empty(t, del.ids)
}

func TestClose_DiscardsLateFetch(t *testing.T) {
	l := &fakeLister{cats: sampleCats(), gate: make(chan struct{})}
	vm := New(AllCats(l), &fakeDeleter{})

	done := make(chan error, 1)
	go func() { done <- vm.Mount(context.Background()) }()

	require.Eventually(t, func() bool { return vm.State() == StateLoading }, time.Second, 5*time.Millisecond)
	vm.Close()
	close(l.gate)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, vm.Cats())
	assert.Equal(t, StateLoading, vm.State())
}

func TestClose_DiscardsLateDelete(t *testing.T) {
	del := &fakeDeleter{gate: make(chan struct{}), start: make(chan struct{})}
	vm, _ := mounted(t, sampleCats(), del)

	done := make(chan error, 1)
	go func() { done <- vm.Delete(context.Background(), 1) }()
	<-del.start
	vm.Close()
	close(del.gate)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Len(t, vm.Cats(), 4)
}

func TestViewModels_AreIndependent(t *testing.T) {
	l := &fakeLister{cats: sampleCats()}
	a := New(AllCats(l), &fakeDeleter{})
	b := New(AllCats(l), &fakeDeleter{})
	require.NoError(t, a.Mount(context.Background()))
	require.NoError(t, b.Mount(context.Background()))

	require.NoError(t, a.Delete(context.Background(), 1))

	assert.Len(t, a.Cats(), 3)
	assert.Len(t, b.Cats(), 4)
}

func TestCats_ReturnsCopy(t *testing.T) {
	vm, _ := mounted(t, sampleCats(), nil)

	got := vm.Cats()
	got[0].Name = "changed"

	assert.Equal(t, "Tama", vm.Cats()[0].Name)
}
