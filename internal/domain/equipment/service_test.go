package equipment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/equipment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type fakeEquipmentRepository struct {
	createFn      func(ctx context.Context, e *equipment.Equipment) error
	updateFn      func(ctx context.Context, e *equipment.Equipment) error
	getByIdFn     func(ctx context.Context, id ulid.ULID) (*equipment.Equipment, error)
	getBySerialFn func(ctx context.Context, serial string) (*equipment.Equipment, error)
}

func (f *fakeEquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEquipmentRepository) Update(ctx context.Context, e *equipment.Equipment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEquipmentRepository) GetById(ctx context.Context, id ulid.ULID) (*equipment.Equipment, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, id)
	}
	return &equipment.Equipment{Id: id, Status: equipment.StatusInStock}, nil
}

func (f *fakeEquipmentRepository) GetBySerial(ctx context.Context, serial string) (*equipment.Equipment, error) {
	if f.getBySerialFn != nil {
		return f.getBySerialFn(ctx, serial)
	}
	return nil, appErrors.ErrEquipmentNotFound
}

func (f *fakeEquipmentRepository) List(ctx context.Context, filter equipment.ListFilter, pagination *pkg.PaginationParams) ([]*equipment.Equipment, int64, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepository) ListByClient(ctx context.Context, clientID ulid.ULID) ([]*equipment.Equipment, error) {
	return nil, nil
}

type allowAllClients struct{}

func (allowAllClients) Exists(ctx context.Context, clientID ulid.ULID) error { return nil }

func newTestService(repo *fakeEquipmentRepository) equipment.Service {
	return equipment.Service{
		Repository: repo,
		BaseService: shared.BaseService{
			ClientChecker: shared.NewClientCheckerService(allowAllClients{}),
		},
	}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("serial required", func(t *testing.T) {
		svc := newTestService(&fakeEquipmentRepository{})

		_, err := svc.Create(context.Background(), &equipment.CreateRequest{Name: "Router", Serial: "   "})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("duplicate serial detected upfront", func(t *testing.T) {
		repo := &fakeEquipmentRepository{
			getBySerialFn: func(ctx context.Context, serial string) (*equipment.Equipment, error) {
				return &equipment.Equipment{Id: ulid.Make(), Serial: serial}, nil
			},
		}
		svc := newTestService(repo)

		_, err := svc.Create(context.Background(), &equipment.CreateRequest{Name: "Router", Serial: "SN-001"})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrSerialAlreadyExists.Code {
			t.Fatalf("expected %s, got %v", appErrors.ErrSerialAlreadyExists.Code, err)
		}
	})

	t.Run("duplicate serial caught at insert", func(t *testing.T) {
		repo := &fakeEquipmentRepository{
			createFn: func(ctx context.Context, e *equipment.Equipment) error {
				return errors.New(`ERROR: duplicate key value violates unique constraint "idx_equipos_serial" (SQLSTATE 23505)`)
			},
		}
		svc := newTestService(repo)

		_, err := svc.Create(context.Background(), &equipment.CreateRequest{Name: "Router", Serial: "SN-001"})
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrSerialAlreadyExists.Code {
			t.Fatalf("expected %s, got %v", appErrors.ErrSerialAlreadyExists.Code, err)
		}
	})

	t.Run("new unit lands in stock with normalized serial", func(t *testing.T) {
		var created *equipment.Equipment
		repo := &fakeEquipmentRepository{
			createFn: func(ctx context.Context, e *equipment.Equipment) error {
				created = e
				return nil
			},
		}
		svc := newTestService(repo)

		e, err := svc.Create(context.Background(), &equipment.CreateRequest{Name: "Router TP-Link", Serial: " sn-ab12 ", Cost: 45.5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Serial != "SN-AB12" {
			t.Fatalf("expected normalized serial, got %q", e.Serial)
		}
		if e.Status != equipment.StatusInStock {
			t.Fatalf("expected new unit in stock, got %s", e.Status)
		}
		if created == nil {
			t.Fatalf("expected the unit to be persisted")
		}
	})
}

func TestServiceAssign(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()

	tests := []struct {
		name        string
		status      equipment.Status
		wantErrCode string
	}{
		{name: "in stock assigns", status: equipment.StatusInStock},
		{name: "already assigned rejected", status: equipment.StatusAssigned, wantErrCode: "VALIDATION_ERROR"},
		{name: "damaged rejected", status: equipment.StatusDamaged, wantErrCode: "VALIDATION_ERROR"},
		{name: "retired rejected", status: equipment.StatusRetired, wantErrCode: "VALIDATION_ERROR"},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var updated *equipment.Equipment
			repo := &fakeEquipmentRepository{
				getByIdFn: func(ctx context.Context, id ulid.ULID) (*equipment.Equipment, error) {
					return &equipment.Equipment{Id: id, Name: "ONU", Serial: "SN-1", Status: tt.status}, nil
				},
				updateFn: func(ctx context.Context, e *equipment.Equipment) error {
					updated = e
					return nil
				},
			}
			svc := newTestService(repo)

			e, err := svc.Assign(ctx, ulid.Make(), clientID)
			if tt.wantErrCode != "" {
				appErr, ok := appErrors.AsAppError(err)
				if !ok || appErr.Code != tt.wantErrCode {
					t.Fatalf("expected %s, got %v", tt.wantErrCode, err)
				}
				if updated != nil {
					t.Fatalf("expected no update")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Status != equipment.StatusAssigned {
				t.Fatalf("expected ASIGNADO, got %s", e.Status)
			}
			if e.ClientId == nil || *e.ClientId != clientID {
				t.Fatalf("expected the unit to carry the client")
			}
			if e.AssignedAt == nil {
				t.Fatalf("expected assignment timestamp")
			}
		})
	}
}

func TestServiceReturn(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()
	now := time.Now()

	t.Run("assigned unit returns to stock", func(t *testing.T) {
		repo := &fakeEquipmentRepository{
			getByIdFn: func(ctx context.Context, id ulid.ULID) (*equipment.Equipment, error) {
				return &equipment.Equipment{Id: id, Status: equipment.StatusAssigned, ClientId: &clientID, AssignedAt: &now}, nil
			},
		}
		svc := newTestService(repo)

		e, err := svc.Return(context.Background(), ulid.Make())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != equipment.StatusInStock {
			t.Fatalf("expected EN_STOCK, got %s", e.Status)
		}
		if e.ClientId != nil || e.AssignedAt != nil {
			t.Fatalf("expected assignment data to be cleared")
		}
	})

	t.Run("unassigned unit rejected", func(t *testing.T) {
		svc := newTestService(&fakeEquipmentRepository{})

		_, err := svc.Return(context.Background(), ulid.Make())
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})
}

func TestServiceSetStatus(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()
	now := time.Now()

	t.Run("assignment must go through Assign", func(t *testing.T) {
		svc := newTestService(&fakeEquipmentRepository{})

		_, err := svc.SetStatus(context.Background(), ulid.Make(), equipment.StatusAssigned)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc := newTestService(&fakeEquipmentRepository{})

		_, err := svc.SetStatus(context.Background(), ulid.Make(), equipment.Status("PERDIDO"))
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %v", err)
		}
	})

	t.Run("marking damaged releases the client", func(t *testing.T) {
		repo := &fakeEquipmentRepository{
			getByIdFn: func(ctx context.Context, id ulid.ULID) (*equipment.Equipment, error) {
				return &equipment.Equipment{Id: id, Status: equipment.StatusAssigned, ClientId: &clientID, AssignedAt: &now}, nil
			},
		}
		svc := newTestService(repo)

		e, err := svc.SetStatus(context.Background(), ulid.Make(), equipment.StatusDamaged)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != equipment.StatusDamaged {
			t.Fatalf("expected DANADO, got %s", e.Status)
		}
		if e.ClientId != nil || e.AssignedAt != nil {
			t.Fatalf("expected assignment data to be cleared")
		}
	})
}
