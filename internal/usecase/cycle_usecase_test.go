package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
)

type fakeProfessionalRepo struct {
	professionals map[uuid.UUID]entity.Professional
}

func (r *fakeProfessionalRepo) Create(ctx context.Context, db *gorm.DB, p *entity.Professional) error {
	r.professionals[p.ID] = *p
	return nil
}

func (r *fakeProfessionalRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Professional, error) {
	if p, ok := r.professionals[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *fakeProfessionalRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Professional, error) {
	all := make([]entity.Professional, 0, len(r.professionals))
	for _, p := range r.professionals {
		all = append(all, p)
	}
	return all, nil
}

func (r *fakeProfessionalRepo) Update(ctx context.Context, db *gorm.DB, p *entity.Professional) error {
	r.professionals[p.ID] = *p
	return nil
}

func (r *fakeProfessionalRepo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	delete(r.professionals, id)
	return nil
}

func newCycleFixture(store *fakeStore) (CycleUsecase, entity.Patient, entity.Professional) {
	patient := store.addPatient("Ana Lima", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	professional := entity.Professional{ID: uuid.New(), FullName: "Dra. Clara Mendes", Active: true}

	professionalRepo := &fakeProfessionalRepo{
		professionals: map[uuid.UUID]entity.Professional{professional.ID: professional},
	}

	uc := NewCycleUsecase(
		nil,
		testLogger(),
		&fakeAppointmentRepo{store: store},
		&fakePatientRepo{store: store},
		professionalRepo,
		&fakeAuditService{},
	)
	return uc, patient, professional
}

// 2025-02-03 is a Monday; one calendar month later is 2025-03-03, also a
// Monday, giving five occurrences inclusive and four exclusive.
func mondayCycleRequest(patientID, professionalID uuid.UUID) *dto.GenerateCycleRequest {
	return &dto.GenerateCycleRequest{
		PatientID:      patientID,
		ProfessionalID: professionalID,
		StartDate:      "2025-02-03",
		Pattern: []dto.CyclePatternEntry{
			{DayOfWeek: 1, Time: "16:00"},
		},
		IncludeEndDate: true,
	}
}

func TestPreviewCycle_MonthOfMondays(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	preview, err := uc.Preview(context.Background(), mondayCycleRequest(patient.ID, professional.ID))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-03", preview.EndDate)
	assert.Equal(t, 5, preview.TotalSlots)
	assert.Empty(t, preview.Skipped)
	assert.Equal(t, "2025-02-03", preview.Slots[0].Date)
	assert.Equal(t, "2025-03-03", preview.Slots[4].Date)

	// Preview never persists.
	assert.Empty(t, store.appointments)
}

func TestPreviewCycle_ExclusiveEndDropsLastOccurrence(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	req := mondayCycleRequest(patient.ID, professional.ID)
	req.IncludeEndDate = false

	preview, err := uc.Preview(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4, preview.TotalSlots)
	assert.Equal(t, "2025-02-24", preview.Slots[3].Date)
}

func TestPreviewCycle_FirstEntryMustMatchStartWeekday(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	req := mondayCycleRequest(patient.ID, professional.ID)
	req.Pattern[0].DayOfWeek = 3 // start date is a Monday

	_, err := uc.Preview(context.Background(), req)
	assert.ErrorIs(t, err, ErrFirstEntryNotPinned)
}

func TestPreviewCycle_RejectsOversizedPattern(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	req := mondayCycleRequest(patient.ID, professional.ID)
	req.Pattern = []dto.CyclePatternEntry{
		{DayOfWeek: 1, Time: "08:00"},
		{DayOfWeek: 2, Time: "08:00"},
		{DayOfWeek: 3, Time: "08:00"},
		{DayOfWeek: 4, Time: "08:00"},
	}

	_, err := uc.Preview(context.Background(), req)
	assert.ErrorIs(t, err, ErrCyclePatternTooLong)
}

func TestCommitCycle_PersistsAcceptedSlots(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	result, err := uc.Commit(context.Background(), mondayCycleRequest(patient.ID, professional.ID))
	require.NoError(t, err)

	assert.Equal(t, 5, result.CreatedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Len(t, result.CreatedIDs, 5)
	assert.Len(t, store.appointments, 5)

	for _, a := range store.appointments {
		assert.Equal(t, patient.ID, a.PatientID)
		assert.Equal(t, patient.FullName, a.PatientName)
		assert.Equal(t, professional.ID, a.ProfessionalID)
		assert.Equal(t, entity.AppointmentStatusScheduled, a.Status)
	}
}

func TestCommitCycle_SkipsOccupiedSlots(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	// Another patient already holds the professional's 2025-02-10 16:00 slot.
	other := store.addPatient("Carlos Souza", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	occupied := store.addAppointment(other)
	occupied.ProfessionalID = professional.ID
	occupied.Date = "2025-02-10"
	occupied.Time = "16:00"

	result, err := uc.Commit(context.Background(), mondayCycleRequest(patient.ID, professional.ID))
	require.NoError(t, err)

	assert.Equal(t, 4, result.CreatedCount)
	assert.Equal(t, 1, result.SkippedCount)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "2025-02-10", result.Skipped[0].Date)
	assert.Equal(t, occupied.ID, result.Skipped[0].AppointmentID)
}

func TestCommitCycle_CanceledAppointmentIsNotAConflict(t *testing.T) {
	store := newFakeStore()
	uc, patient, professional := newCycleFixture(store)

	other := store.addPatient("Carlos Souza", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	canceled := store.addAppointment(other)
	canceled.ProfessionalID = professional.ID
	canceled.Date = "2025-02-10"
	canceled.Time = "16:00"
	canceled.Status = entity.AppointmentStatusCanceled

	result, err := uc.Commit(context.Background(), mondayCycleRequest(patient.ID, professional.ID))
	require.NoError(t, err)

	assert.Equal(t, 5, result.CreatedCount)
	assert.Equal(t, 0, result.SkippedCount)
}

func TestCommitCycle_UnknownPatient(t *testing.T) {
	store := newFakeStore()
	uc, _, professional := newCycleFixture(store)

	_, err := uc.Commit(context.Background(), mondayCycleRequest(uuid.New(), professional.ID))
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.Empty(t, store.appointments)
}
