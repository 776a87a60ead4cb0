package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite/schema/gen/model"
	"github.com/Nackophilz/fankai-jellyfin/pkg/storage/sqlite/schema/gen/table"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
)

// GetBinding gets the binding of a library path
func (s *SQLite) GetBinding(ctx context.Context, kind storage.BindingKind, path string) (*storage.Binding, error) {
	return s.getBinding(ctx, table.Binding.Kind.EQ(sqlite.String(string(kind))).
		AND(table.Binding.Path.EQ(sqlite.String(path))))
}

func (s *SQLite) getBinding(ctx context.Context, where sqlite.BoolExpression) (*storage.Binding, error) {
	stmt := table.Binding.
		SELECT(table.Binding.AllColumns).
		FROM(table.Binding).
		WHERE(where)

	var binding storage.Binding
	err := stmt.QueryContext(ctx, s.db, &binding)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get binding: %w", err)
	}

	return &binding, nil
}

// UpsertBinding stores a binding keyed by kind and path, overwriting the catalog ID of an existing one.
// An empty state is stored as bound.
func (s *SQLite) UpsertBinding(ctx context.Context, binding model.Binding) (int64, error) {
	log := logger.FromCtx(ctx)

	if binding.State == "" {
		binding.State = string(storage.BindingStateBound)
	}

	current := storage.BindingStateNew
	existing, err := s.GetBinding(ctx, storage.BindingKind(binding.Kind), binding.Path)
	switch {
	case err == nil:
		current = existing.State()
	case !errors.Is(err, storage.ErrNotFound):
		return 0, err
	}

	err = storage.BindingMachine(current).ToState(storage.BindingState(binding.State))
	if err != nil {
		return 0, err
	}

	stmt := table.Binding.
		INSERT(
			table.Binding.Kind,
			table.Binding.Path,
			table.Binding.CatalogID,
			table.Binding.ParentCatalogID,
			table.Binding.State,
			table.Binding.Tier,
		).
		MODEL(binding).
		ON_CONFLICT(table.Binding.Kind, table.Binding.Path).
		DO_UPDATE(sqlite.SET(
			table.Binding.CatalogID.SET(table.Binding.EXCLUDED.CatalogID),
			table.Binding.ParentCatalogID.SET(table.Binding.EXCLUDED.ParentCatalogID),
			table.Binding.State.SET(table.Binding.EXCLUDED.State),
			table.Binding.Tier.SET(table.Binding.EXCLUDED.Tier),
			table.Binding.UpdatedAt.SET(sqlite.CURRENT_TIMESTAMP()),
		))

	_, err = s.handleInsert(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert binding: %w", err)
	}

	stored, err := s.GetBinding(ctx, storage.BindingKind(binding.Kind), binding.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to get binding ID after upsert: %w", err)
	}

	if existing != nil && existing.CatalogID != stored.CatalogID {
		log.Infow("binding overwritten", "kind", binding.Kind, "path", binding.Path, "from", existing.CatalogID, "to", stored.CatalogID)
	}

	return int64(stored.ID), nil
}

// MarkBindingDrifted flags a binding whose catalog record no longer matches the library item.
// The binding keeps its catalog ID until it is overwritten.
func (s *SQLite) MarkBindingDrifted(ctx context.Context, id int64) error {
	binding, err := s.getBinding(ctx, table.Binding.ID.EQ(sqlite.Int64(id)))
	if err != nil {
		return err
	}

	err = binding.Machine().ToState(storage.BindingStateDrifted)
	if err != nil {
		return err
	}

	stmt := table.Binding.
		UPDATE().
		SET(
			table.Binding.State.SET(sqlite.String(string(storage.BindingStateDrifted))),
			table.Binding.UpdatedAt.SET(sqlite.CURRENT_TIMESTAMP()),
		).
		WHERE(table.Binding.ID.EQ(sqlite.Int64(id)))

	_, err = s.handleUpdate(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to mark binding drifted: %w", err)
	}

	return nil
}

// ListBindings lists bindings matching every where expression
func (s *SQLite) ListBindings(ctx context.Context, where ...sqlite.BoolExpression) ([]*storage.Binding, error) {
	stmt := table.Binding.
		SELECT(table.Binding.AllColumns).
		FROM(table.Binding)

	if len(where) > 0 {
		stmt = stmt.WHERE(sqlite.AND(where...))
	}

	stmt = stmt.ORDER_BY(table.Binding.Kind.ASC(), table.Binding.Path.ASC())

	bindings := make([]*storage.Binding, 0)
	err := stmt.QueryContext(ctx, s.db, &bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings: %w", err)
	}

	return bindings, nil
}
