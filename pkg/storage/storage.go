package storage

import (
	"context"
	"errors"

	"github.com/Nackophilz/fankai-jellyfin/pkg/machine"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite/schema/gen/model"
	"github.com/go-jet/jet/v2/sqlite"
)

var ErrNotFound = errors.New("not found in storage")

type Storage interface {
	RunMigrations(ctx context.Context) error
	BindingStorage
}

// BindingKind is the library item a binding points from
type BindingKind string

const (
	BindingKindSeries  BindingKind = "series"
	BindingKindSeason  BindingKind = "season"
	BindingKindEpisode BindingKind = "episode"
)

// Valid reports whether k is one of the known kinds
func (k BindingKind) Valid() bool {
	switch k {
	case BindingKindSeries, BindingKindSeason, BindingKindEpisode:
		return true
	}
	return false
}

type BindingState string

const (
	BindingStateNew     BindingState = ""
	BindingStateBound   BindingState = "bound"
	BindingStateDrifted BindingState = "drifted"
)

// Binding ties a library path to a catalog record
type Binding struct {
	model.Binding
}

func (b Binding) Kind() BindingKind {
	return BindingKind(b.Binding.Kind)
}

func (b Binding) State() BindingState {
	return BindingState(b.Binding.State)
}

// Machine returns the allowed transitions out of the binding's state.
// A drifted binding is overwritten to bound once a new match is found.
func (b Binding) Machine() *machine.StateMachine[BindingState] {
	return BindingMachine(b.State())
}

func BindingMachine(current BindingState) *machine.StateMachine[BindingState] {
	return machine.New(current,
		machine.From(BindingStateNew).To(BindingStateBound),
		machine.From(BindingStateBound).To(BindingStateBound, BindingStateDrifted),
		machine.From(BindingStateDrifted).To(BindingStateBound, BindingStateDrifted),
	)
}

type BindingStorage interface {
	GetBinding(ctx context.Context, kind BindingKind, path string) (*Binding, error)
	UpsertBinding(ctx context.Context, binding model.Binding) (int64, error)
	MarkBindingDrifted(ctx context.Context, id int64) error
	ListBindings(ctx context.Context, where ...sqlite.BoolExpression) ([]*Binding, error)
}
