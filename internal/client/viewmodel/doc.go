// Package viewmodel holds the per-screen state of a cat list: the fetched
// collection, its load/delete lifecycle and the free-text filter.
//
// Every ViewModel owns its own copy of the collection. Its mutex is never
// held across a network call, so Cats, Filtered and IsDeleting stay
// responsive while a fetch or delete is in flight.
package viewmodel
