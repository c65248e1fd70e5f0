package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/service"
	"github.com/kaduart/agenda-clinica-service/pkg/calendar"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeStore is an in-memory stand-in for the clinic database. The fake
// repositories below all mutate it, so a test can assert on the final state
// the way the reconciliation batch would observe it.
type fakeStore struct {
	patients        map[uuid.UUID]entity.Patient
	appointments    map[uuid.UUID]*entity.Appointment
	preAppointments map[uuid.UUID]*entity.PreAppointment

	failAppointmentMigration    bool
	failPreAppointmentMigration bool
	failPatientDelete           bool

	deletedPatients []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		patients:        make(map[uuid.UUID]entity.Patient),
		appointments:    make(map[uuid.UUID]*entity.Appointment),
		preAppointments: make(map[uuid.UUID]*entity.PreAppointment),
	}
}

func (s *fakeStore) addPatient(name string, createdAt time.Time) entity.Patient {
	p := entity.Patient{ID: uuid.New(), FullName: name, CreatedAt: createdAt}
	s.patients[p.ID] = p
	return p
}

func (s *fakeStore) addAppointment(patient entity.Patient) *entity.Appointment {
	a := &entity.Appointment{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		Date:        "2025-02-03",
		Time:        "16:00",
		Status:      entity.AppointmentStatusScheduled,
	}
	s.appointments[a.ID] = a
	return a
}

func (s *fakeStore) addPreAppointment(patient entity.Patient) *entity.PreAppointment {
	p := &entity.PreAppointment{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		Date:        "2025-02-10",
		Time:        "09:00",
		Status:      entity.PreAppointmentStatusPending,
	}
	s.preAppointments[p.ID] = p
	return p
}

type fakePatientRepo struct{ store *fakeStore }

func (r *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.store.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	if p, ok := r.store.patients[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakePatientRepo) SearchByName(ctx context.Context, db *gorm.DB, nameFilter string) ([]entity.Patient, error) {
	patients := make([]entity.Patient, 0, len(r.store.patients))
	for _, p := range r.store.patients {
		patients = append(patients, p)
	}
	return patients, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.store.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	if r.store.failPatientDelete {
		return errors.New("delete refused")
	}
	delete(r.store.patients, id)
	r.store.deletedPatients = append(r.store.deletedPatients, id)
	return nil
}

type fakeAppointmentRepo struct{ store *fakeStore }

func (r *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, a *entity.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.store.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.store.appointments[id], nil
}

func (r *fakeAppointmentRepo) List(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindActiveSlot(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, date calendar.DateString, t calendar.TimeString) (*entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) FindActiveByProfessionalBetween(ctx context.Context, db *gorm.DB, professionalID uuid.UUID, start, end calendar.DateString) ([]entity.Appointment, error) {
	var found []entity.Appointment
	for _, a := range r.store.appointments {
		if a.IsCanceled() || a.ProfessionalID != professionalID {
			continue
		}
		if a.Date.Before(start) || end.Before(a.Date) {
			continue
		}
		found = append(found, *a)
	}
	return found, nil
}

func (r *fakeAppointmentRepo) ReassignPatient(ctx context.Context, db *gorm.DB, oldPatientID, newPatientID uuid.UUID, newName string) (int64, error) {
	if r.store.failAppointmentMigration {
		return 0, errors.New("appointment migration refused")
	}
	var moved int64
	for _, a := range r.store.appointments {
		if a.PatientID == oldPatientID {
			a.PatientID = newPatientID
			a.PatientName = newName
			moved++
		}
	}
	return moved, nil
}

func (r *fakeAppointmentRepo) Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	return nil
}

func (r *fakeAppointmentRepo) FindDueForReminder(ctx context.Context, db *gorm.DB, date calendar.DateString) ([]entity.Appointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) MarkReminderSent(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return nil
}

type fakePreAppointmentRepo struct{ store *fakeStore }

func (r *fakePreAppointmentRepo) Create(ctx context.Context, db *gorm.DB, p *entity.PreAppointment) error {
	r.store.preAppointments[p.ID] = p
	return nil
}

func (r *fakePreAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PreAppointment, error) {
	return r.store.preAppointments[id], nil
}

func (r *fakePreAppointmentRepo) ListByStatus(ctx context.Context, db *gorm.DB, status entity.PreAppointmentStatus) ([]entity.PreAppointment, error) {
	return nil, nil
}

func (r *fakePreAppointmentRepo) ReassignPatient(ctx context.Context, db *gorm.DB, oldPatientID, newPatientID uuid.UUID, newName string) (int64, error) {
	if r.store.failPreAppointmentMigration {
		return 0, errors.New("pre-appointment migration refused")
	}
	var moved int64
	for _, p := range r.store.preAppointments {
		if p.PatientID == oldPatientID {
			p.PatientID = newPatientID
			p.PatientName = newName
			moved++
		}
	}
	return moved, nil
}

func (r *fakePreAppointmentRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.PreAppointmentStatus) error {
	return nil
}

type fakeAuditService struct {
	actions []string
}

func (s *fakeAuditService) Log(ctx context.Context, db *gorm.DB, action string, metadata entity.JSON) error {
	s.actions = append(s.actions, action)
	return nil
}

func newReconcileFixture(store *fakeStore) (ReconcileUsecase, *fakeAuditService) {
	audit := &fakeAuditService{}
	uc := NewReconcileUsecase(
		nil,
		testLogger(),
		&fakePatientRepo{store: store},
		&fakeAppointmentRepo{store: store},
		&fakePreAppointmentRepo{store: store},
		audit,
		nil,
	)
	return uc, audit
}

func TestRunBatch_MergesDuplicatesAndMigratesDependents(t *testing.T) {
	store := newFakeStore()
	canonical := store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana  lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	store.addPatient("Carlos Souza", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	appointment := store.addAppointment(duplicate)
	preAppointment := store.addPreAppointment(duplicate)

	uc, audit := newReconcileFixture(store)

	result, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 1, result.Merged)
	assert.Equal(t, 0, result.Skipped)
	assert.False(t, result.HasFailures())

	// Dependents now point at the canonical record with a fresh name.
	assert.Equal(t, canonical.ID, appointment.PatientID)
	assert.Equal(t, canonical.FullName, appointment.PatientName)
	assert.Equal(t, canonical.ID, preAppointment.PatientID)
	assert.Equal(t, canonical.FullName, preAppointment.PatientName)

	// The duplicate is gone, the canonical survives.
	_, duplicateExists := store.patients[duplicate.ID]
	assert.False(t, duplicateExists)
	_, canonicalExists := store.patients[canonical.ID]
	assert.True(t, canonicalExists)

	assert.Contains(t, audit.actions, entity.AuditActionPatientMerge)
}

func TestRunBatch_AppointmentMigrationFailureAbortsBeforeDelete(t *testing.T) {
	store := newFakeStore()
	store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	store.addAppointment(duplicate)
	store.failAppointmentMigration = true

	uc, _ := newReconcileFixture(store)

	result, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, StepMigrateAppointments, result.Failed[0].Step)
	assert.Equal(t, duplicate.ID, result.Failed[0].DuplicateID)

	// The central safety invariant: the duplicate must still exist because
	// its dependents were never migrated.
	_, exists := store.patients[duplicate.ID]
	assert.True(t, exists)
	assert.Empty(t, store.deletedPatients)
}

func TestRunBatch_PreAppointmentMigrationFailureAbortsBeforeDelete(t *testing.T) {
	store := newFakeStore()
	store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	store.addPreAppointment(duplicate)
	store.failPreAppointmentMigration = true

	uc, _ := newReconcileFixture(store)

	result, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, StepMigratePreAppointments, result.Failed[0].Step)

	_, exists := store.patients[duplicate.ID]
	assert.True(t, exists)
}

func TestRunBatch_DeleteFailureIsBenign(t *testing.T) {
	store := newFakeStore()
	canonical := store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	appointment := store.addAppointment(duplicate)
	store.failPatientDelete = true

	uc, _ := newReconcileFixture(store)

	result, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)

	// Migration succeeded, so the merge still counts; the failed delete is
	// logged and retried on the next run.
	assert.Equal(t, 1, result.Merged)
	assert.False(t, result.HasFailures())
	assert.Equal(t, canonical.ID, appointment.PatientID)
}

func TestRunBatch_SecondRunIsNoOp(t *testing.T) {
	store := newFakeStore()
	store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	store.addAppointment(duplicate)

	uc, _ := newReconcileFixture(store)

	first, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Merged)

	snapshot := len(store.patients)

	// The duplicate is deleted, so discovery finds nothing to do.
	second, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Groups)
	assert.Equal(t, 0, second.Merged)
	assert.False(t, second.HasFailures())
	assert.Len(t, store.patients, snapshot)
}

func TestRunBatch_DryRunMutatesNothing(t *testing.T) {
	store := newFakeStore()
	store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	appointment := store.addAppointment(duplicate)

	uc, audit := newReconcileFixture(store)

	result, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 0, result.Merged)
	assert.Len(t, store.patients, 2)
	assert.Equal(t, duplicate.ID, appointment.PatientID)
	assert.Empty(t, audit.actions)
}

func TestRunBatch_StateStoreSkipsAlreadyMerged(t *testing.T) {
	store := newFakeStore()
	canonical := store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	duplicate := store.addPatient("ana lima", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	stateStore := &fakeMergeStateStore{merged: map[uuid.UUID]uuid.UUID{duplicate.ID: canonical.ID}}
	audit := &fakeAuditService{}
	uc := NewReconcileUsecase(
		nil,
		testLogger(),
		&fakePatientRepo{store: store},
		&fakeAppointmentRepo{store: store},
		&fakePreAppointmentRepo{store: store},
		audit,
		stateStore,
	)

	result, err := uc.RunBatch(context.Background(), BatchOptions{Strategy: service.OldestWins})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Merged)
	assert.Equal(t, 1, result.Skipped)
	// The record marked merged elsewhere is left untouched here.
	_, exists := store.patients[duplicate.ID]
	assert.True(t, exists)
}

func TestMergeGroup_MostCompleteWins(t *testing.T) {
	store := newFakeStore()
	oldest := store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	complete := entity.Patient{
		ID:        uuid.New(),
		FullName:  "Ana Lima",
		Phone:     "11999990000",
		CPF:       "12345678901",
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	store.patients[complete.ID] = complete
	appointment := store.addAppointment(oldest)

	uc, _ := newReconcileFixture(store)

	groups, err := uc.FindDuplicates(context.Background(), "", service.ExactMatcher{})
	require.NoError(t, err)
	require.Len(t, groups, 1)

	merged, skipped, failures := uc.MergeGroup(context.Background(), groups[0], service.MostCompleteWins)

	assert.Equal(t, 1, merged)
	assert.Equal(t, 0, skipped)
	assert.Empty(t, failures)

	// Under MostCompleteWins the older but incomplete record is the one
	// merged away.
	_, oldestExists := store.patients[oldest.ID]
	assert.False(t, oldestExists)
	assert.Equal(t, complete.ID, appointment.PatientID)
}

type fakeMergeStateStore struct {
	merged map[uuid.UUID]uuid.UUID
}

func (s *fakeMergeStateStore) IsMerged(ctx context.Context, duplicateID uuid.UUID) bool {
	_, ok := s.merged[duplicateID]
	return ok
}

func (s *fakeMergeStateStore) MarkMerged(ctx context.Context, duplicateID, canonicalID uuid.UUID) {
	s.merged[duplicateID] = canonicalID
}
