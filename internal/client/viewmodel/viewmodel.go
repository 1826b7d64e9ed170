package viewmodel

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
	"github.com/dmitrijs2005/nekolist/internal/logging"
)

// Fetcher loads the collection a screen shows.
type Fetcher func(ctx context.Context) ([]models.Cat, error)

// Lister is the read side of the resource client.
type Lister interface {
	ListCats(ctx context.Context) ([]models.Cat, error)
	ListCatsByOwner(ctx context.Context, ownerID int64) ([]models.Cat, error)
}

type Deleter interface {
	DeleteCat(ctx context.Context, id int64) (*models.Message, error)
}

// AllCats fetches every cat.
func AllCats(l Lister) Fetcher {
	return l.ListCats
}

// OwnedBy fetches the cats of one owner.
func OwnedBy(l Lister, ownerID int64) Fetcher {
	return func(ctx context.Context) ([]models.Cat, error) {
		return l.ListCatsByOwner(ctx, ownerID)
	}
}

type Option func(*ViewModel)

func WithLogger(l logging.Logger) Option {
	return func(vm *ViewModel) { vm.log = l }
}

type ViewModel struct {
	fetch   Fetcher
	deleter Deleter
	log     logging.Logger

	mu       sync.Mutex
	state    State
	cats     []models.Cat
	loaded   bool
	err      error
	mounted  bool
	closed   bool
	deleting map[int64]struct{}
	// loadFailed is set while the latest fetch is a failure; deletes never
	// clear it.
	loadFailed bool
}

func New(fetch Fetcher, deleter Deleter, opts ...Option) *ViewModel {
	vm := &ViewModel{
		fetch:    fetch,
		deleter:  deleter,
		log:      logging.Nop(),
		deleting: make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.log = vm.log.With("component", "viewmodel")
	return vm
}

// Mount performs the initial fetch. Later calls do nothing.
func (vm *ViewModel) Mount(ctx context.Context) error {
	vm.mu.Lock()
	if vm.mounted || vm.closed {
		vm.mu.Unlock()
		return nil
	}
	vm.mounted = true
	vm.state = StateLoading
	vm.mu.Unlock()

	return vm.load(ctx)
}

// Retry re-fetches after a failure. It does nothing unless the view is in
// StateError.
func (vm *ViewModel) Retry(ctx context.Context) error {
	vm.mu.Lock()
	if vm.closed || vm.state != StateError {
		vm.mu.Unlock()
		return nil
	}
	vm.state = StateLoading
	vm.err = nil
	vm.mu.Unlock()

	return vm.load(ctx)
}

func (vm *ViewModel) load(ctx context.Context) error {
	cats, err := vm.fetch(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed {
		vm.log.Debug(ctx, "discarding fetch result after close")
		return ErrClosed
	}
	if err != nil {
		vm.state = StateError
		vm.err = err
		vm.loadFailed = true
		vm.log.Warn(ctx, "fetch failed", "error", err)
		return err
	}
	if cats == nil {
		cats = []models.Cat{}
	}
	vm.cats = cats
	vm.loaded = true
	vm.loadFailed = false
	vm.err = nil
	vm.state = StateReady
	vm.log.Debug(ctx, "collection loaded", "count", len(cats))
	return nil
}

// Delete removes cat id on the server and, once confirmed, from the local
// collection. The cat stays visible and marked as deleting until then. On
// failure the collection is left as it was.
//
// Deletes of different cats may overlap. The view stays StateMutating until
// the last one finishes and then settles on StateError if any of them, or
// the latest fetch, failed.
func (vm *ViewModel) Delete(ctx context.Context, id int64) error {
	vm.mu.Lock()
	switch {
	case vm.closed:
		vm.mu.Unlock()
		return ErrClosed
	case !vm.loaded || vm.state == StateLoading:
		vm.mu.Unlock()
		return ErrNotLoaded
	case vm.indexOf(id) < 0:
		vm.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownCat, id)
	}
	if _, busy := vm.deleting[id]; busy {
		vm.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrAlreadyBusy, id)
	}
	if len(vm.deleting) == 0 && !vm.loadFailed {
		vm.err = nil
	}
	vm.deleting[id] = struct{}{}
	vm.state = StateMutating
	vm.mu.Unlock()

	_, err := vm.deleter.DeleteCat(ctx, id)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	delete(vm.deleting, id)
	if vm.closed {
		return ErrClosed
	}
	defer vm.settle()

	if err != nil {
		vm.err = err
		vm.log.Warn(ctx, "delete failed", "cat_id", id, "error", err)
		return err
	}
	if i := vm.indexOf(id); i >= 0 {
		vm.cats = slices.Delete(slices.Clone(vm.cats), i, i+1)
	}
	return nil
}

// settle picks the state once no delete is in flight. It must be called
// with vm.mu held.
func (vm *ViewModel) settle() {
	if len(vm.deleting) > 0 || vm.state == StateLoading {
		return
	}
	if vm.loadFailed || vm.err != nil {
		vm.state = StateError
		return
	}
	vm.state = StateReady
}

// indexOf must be called with vm.mu held.
func (vm *ViewModel) indexOf(id int64) int {
	return slices.IndexFunc(vm.cats, func(c models.Cat) bool { return c.ID == id })
}

// Cats returns a copy of the current collection.
func (vm *ViewModel) Cats() []models.Cat {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.Clone(vm.cats)
}

// Filtered applies Filter to the current collection without fetching.
func (vm *ViewModel) Filtered(query string) []models.Cat {
	return Filter(vm.Cats(), query)
}

// Empty reports a loaded collection with no cats in it.
func (vm *ViewModel) Empty() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loaded && vm.state == StateReady && len(vm.cats) == 0
}

func (vm *ViewModel) IsDeleting(id int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.deleting[id]
	return ok
}

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Err is the last failure, cleared by a successful fetch or delete.
func (vm *ViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Close unmounts the view. Results of calls still in flight are discarded.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.closed = true
}
