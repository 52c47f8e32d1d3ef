package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMapWriteError(t *testing.T) {
	unique := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "graph_arguments_pkey"}
	check := &pgconn.PgError{Code: "23514"}
	plain := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique violation", unique, ErrConflict},
		{"wrapped unique violation", fmt.Errorf("batch: %w", unique), ErrConflict},
		{"check violation", check, check},
		{"other error", plain, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapWriteError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

// row feeds fixed values to Scan in column order.
type row struct {
	values []any
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch d := d.(type) {
		case *uuid.UUID:
			*d = r.values[i].(uuid.UUID)
		case *string:
			*d = r.values[i].(string)
		case *[]string:
			*d = r.values[i].([]string)
		case *map[string]float64:
			*d = r.values[i].(map[string]float64)
		case *map[string]string:
			*d = r.values[i].(map[string]string)
		case *time.Time:
			*d = r.values[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func TestScanAudience(t *testing.T) {
	id, graphID := uuid.New(), uuid.New()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := scanAudience(row{values: []any{
		id, graphID, "jury",
		[]string{"kill", "witness1"},
		map[string]float64{"arg2": 0.3},
		map[string]string{"intent": domain.StandardBeyondReasonableDoubt},
		domain.StandardPreponderance,
		created,
	}})
	require.NoError(t, err)

	want := &domain.AudienceDefinition{
		ID:              id,
		GraphID:         graphID,
		Name:            "jury",
		Assumptions:     []string{"kill", "witness1"},
		Weights:         map[string]float64{"arg2": 0.3},
		Standards:       map[string]string{"intent": domain.StandardBeyondReasonableDoubt},
		DefaultStandard: domain.StandardPreponderance,
		CreatedAt:       created,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scanAudience mismatch (-want +got):\n%s", diff)
	}
}

func TestScanAudience_Error(t *testing.T) {
	got, err := scanAudience(row{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Nil(t, got)
}

// testPool connects to DATABASE_URL and applies the migrations. Tests that
// need it are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, Migrate(ctx, pool, "../../migrations", zap.NewNop()))
	return pool
}

var ignoreGraphMeta = cmpopts.IgnoreFields(domain.GraphDefinition{}, "ID", "CreatedAt", "UpdatedAt")

func TestPostgresGraphStore(t *testing.T) {
	pool := testPool(t)
	graphs := NewGraphStore(pool)
	ctx := context.Background()

	def := &domain.GraphDefinition{
		Name:       "murder " + uuid.NewString(),
		Statements: []string{"kill", "intent", "murder", "witness1", "unreliable1"},
		Arguments: []domain.ArgumentDefinition{
			{ID: "arg1", Conclusion: "murder", Direction: domain.DirectionPro, Weight: weight(0.8), Premises: []domain.PremiseDefinition{
				{Statement: "kill"}, {Statement: "intent"},
			}},
			{ID: "arg2", Conclusion: "intent", Direction: domain.DirectionPro, Weight: weight(0.3), Premises: []domain.PremiseDefinition{
				{Statement: "witness1"}, {Statement: "unreliable1", Exception: true},
			}},
		},
	}
	require.NoError(t, graphs.Create(ctx, def))
	t.Cleanup(func() { _ = graphs.Delete(context.Background(), def.ID) })
	assert.NotEqual(t, uuid.Nil, def.ID)
	assert.False(t, def.CreatedAt.IsZero())

	got, err := graphs.GetByID(ctx, def.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(def, got, ignoreGraphMeta); diff != "" {
		t.Errorf("GetByID mismatch (-want +got):\n%s", diff)
	}

	t.Run("append statements skips known atoms", func(t *testing.T) {
		require.NoError(t, graphs.AppendStatements(ctx, def.ID, []string{"kill", "motive", "motive"}))
		got, err := graphs.GetByID(ctx, def.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"kill", "intent", "murder", "witness1", "unreliable1", "motive"}, got.Statements)
	})

	t.Run("append argument", func(t *testing.T) {
		arg := domain.ArgumentDefinition{ID: "arg3", Conclusion: "-intent", Direction: domain.DirectionPro, Weight: weight(0.5)}
		require.NoError(t, graphs.AppendArgument(ctx, def.ID, arg))
		got, err := graphs.GetByID(ctx, def.ID)
		require.NoError(t, err)
		require.Len(t, got.Arguments, 3)
		assert.Equal(t, "arg3", got.Arguments[2].ID)

		err = graphs.AppendArgument(ctx, def.ID, arg)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown graph", func(t *testing.T) {
		_, err := graphs.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, graphs.AppendStatements(ctx, uuid.New(), []string{"x"}), ErrNotFound)
		assert.ErrorIs(t, graphs.Delete(ctx, uuid.New()), ErrNotFound)
	})

	t.Run("duplicate argument in one graph", func(t *testing.T) {
		dup := &domain.GraphDefinition{
			Name:       "dup " + uuid.NewString(),
			Statements: []string{"a"},
			Arguments: []domain.ArgumentDefinition{
				{ID: "x", Conclusion: "a", Direction: domain.DirectionPro, Weight: weight(1)},
				{ID: "x", Conclusion: "-a", Direction: domain.DirectionPro, Weight: weight(1)},
			},
		}
		assert.ErrorIs(t, graphs.Create(ctx, dup), ErrConflict)
	})
}

func TestPostgresAudienceStore(t *testing.T) {
	pool := testPool(t)
	graphs := NewGraphStore(pool)
	audiences := NewAudienceStore(pool)
	ctx := context.Background()

	g := &domain.GraphDefinition{Name: "audiences " + uuid.NewString(), Statements: []string{"kill", "intent"}}
	require.NoError(t, graphs.Create(ctx, g))
	t.Cleanup(func() { _ = graphs.Delete(context.Background(), g.ID) })

	jury := &domain.AudienceDefinition{
		GraphID:         g.ID,
		Name:            "jury",
		Assumptions:     []string{"kill"},
		Weights:         map[string]float64{"arg2": 0.3},
		Standards:       map[string]string{"intent": domain.StandardBeyondReasonableDoubt},
		DefaultStandard: domain.StandardPreponderance,
	}
	require.NoError(t, audiences.Create(ctx, jury))
	bare := &domain.AudienceDefinition{GraphID: g.ID, Name: "bare"}
	require.NoError(t, audiences.Create(ctx, bare))

	got, err := audiences.GetByID(ctx, jury.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(jury, got, cmpopts.IgnoreFields(domain.AudienceDefinition{}, "CreatedAt")); diff != "" {
		t.Errorf("GetByID mismatch (-want +got):\n%s", diff)
	}

	empty, err := audiences.GetByID(ctx, bare.ID)
	require.NoError(t, err)
	assert.Empty(t, empty.Assumptions)
	assert.Empty(t, empty.Weights)

	assert.ErrorIs(t, audiences.Create(ctx, &domain.AudienceDefinition{GraphID: g.ID, Name: "jury"}), ErrConflict)

	list, err := audiences.ListByGraph(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "jury", list[0].Name)
	assert.Equal(t, "bare", list[1].Name)

	require.NoError(t, audiences.Delete(ctx, bare.ID))
	assert.ErrorIs(t, audiences.Delete(ctx, bare.ID), ErrNotFound)

	// Deleting the graph removes its audiences.
	require.NoError(t, graphs.Delete(ctx, g.ID))
	_, err = audiences.GetByID(ctx, jury.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
