package servicejobs_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/servicejobs"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeJobs struct {
	jobs      map[int64]*entity.ServiceJob
	filter    repository.ServiceJobFilter
	created   *repository.ServiceJobCreate
	patch     *repository.ServiceJobPatch
	update    *repository.JobUpdateCreate
	part      *repository.JobPartCreate
	photo     *repository.PhotoUpload
	deleted   []string
	getCalls  int
	mutateErr error
}

func newFakeJobs(jobs ...entity.ServiceJob) *fakeJobs {
	f := &fakeJobs{jobs: map[int64]*entity.ServiceJob{}}
	for i := range jobs {
		j := jobs[i]
		f.jobs[j.ID] = &j
	}
	return f
}

func (f *fakeJobs) List(_ context.Context, flt repository.ServiceJobFilter) ([]entity.ServiceJob, error) {
	f.filter = flt
	out := []entity.ServiceJob{}
	for id := int64(1); id <= int64(len(f.jobs)+10); id++ {
		if j, ok := f.jobs[id]; ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (*entity.ServiceJob, error) {
	f.getCalls++
	j, ok := f.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) Create(_ context.Context, in repository.ServiceJobCreate) (*entity.ServiceJob, error) {
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.created = &in
	j := entity.ServiceJob{ID: 50, CustomerID: in.CustomerID, Title: in.Title, Priority: in.Priority, Status: entity.JobStatusQuoted}
	f.jobs[j.ID] = &j
	return &j, nil
}

func (f *fakeJobs) Update(_ context.Context, id int64, p repository.ServiceJobPatch) error {
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.patch = &p
	if p.Status != nil {
		f.jobs[id].Status = *p.Status
	}
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id int64) error {
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobs) AddUpdate(_ context.Context, jobID int64, in repository.JobUpdateCreate) error {
	f.update = &in
	f.jobs[jobID].Updates = append(f.jobs[jobID].Updates, entity.JobUpdate{ID: 1, Title: in.Title, Description: in.Description})
	return nil
}

func (f *fakeJobs) DeleteUpdate(_ context.Context, updateID int64) error {
	f.deleted = append(f.deleted, "update")
	return nil
}

func (f *fakeJobs) AddPart(_ context.Context, _ int64, in repository.JobPartCreate) error {
	f.part = &in
	return nil
}

func (f *fakeJobs) DeletePart(context.Context, int64) error {
	f.deleted = append(f.deleted, "part")
	return nil
}

func (f *fakeJobs) UploadPhoto(_ context.Context, _ int64, in repository.PhotoUpload) error {
	f.photo = &in
	return nil
}

func (f *fakeJobs) GenerateInvoice(_ context.Context, jobID int64) (*entity.InvoiceResult, error) {
	f.jobs[jobID].WaveInvoiceID = "INV-1"
	return &entity.InvoiceResult{Message: "ok", InvoiceID: "INV-1"}, nil
}

type fakeCustomers struct {
	patches map[int64]repository.CustomerPatch
	err     error
}

func (f *fakeCustomers) List(context.Context) ([]entity.Customer, error) { return nil, nil }
func (f *fakeCustomers) Create(context.Context, repository.CustomerCreate) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomers) Update(_ context.Context, id int64, p repository.CustomerPatch) error {
	if f.err != nil {
		return f.err
	}
	if f.patches == nil {
		f.patches = map[int64]repository.CustomerPatch{}
	}
	f.patches[id] = p
	return nil
}
func (f *fakeCustomers) Inactive(context.Context, int) ([]entity.InactiveCustomer, error) {
	return nil, nil
}

type fakeResolver struct{ name string }

func (f *fakeResolver) FindOrCreate(_ context.Context, name, _, _ string) (*entity.Customer, bool, error) {
	f.name = name
	return &entity.Customer{ID: 77, Name: name}, true, nil
}

func ptr[T any](v T) *T { return &v }

func seedJobs() *fakeJobs {
	created := func(d int) *time.Time {
		t := time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return newFakeJobs(
		entity.ServiceJob{ID: 1, JobNumber: "SJ-001", Title: "Engine swap", Status: entity.JobStatusInProgress,
			Priority: entity.PriorityHigh, VehicleMake: "Honda", VehicleModel: "Civic", CreatedAt: created(1),
			Customer: &entity.CustomerRef{ID: 5, Name: "Ana"}},
		entity.ServiceJob{ID: 2, JobNumber: "SJ-002", Title: "Brake job", Status: entity.JobStatusQuoted,
			Priority: entity.PriorityNormal, VehicleMake: "Acura", VehicleModel: "Integra", CreatedAt: created(3)},
		entity.ServiceJob{ID: 3, JobNumber: "SJ-003", Title: "Tune", Status: entity.JobStatusInProgress,
			Priority: entity.PriorityUrgent, VehicleYear: "1999", VehicleMake: "Honda", VehicleModel: "Prelude"},
	)
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestList_StatusFilter(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	page, err := uc.List(context.Background(), servicejobs.Query{Status: entity.JobStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, entity.JobStatusInProgress, jobs.filter.Status)

	page, err = uc.List(context.Background(), servicejobs.Query{Status: servicejobs.StatusAll})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Empty(t, jobs.filter.Status)
}

func TestList_InvalidStatus(t *testing.T) {
	uc := servicejobs.NewUseCase(seedJobs(), nil, nil, nil)

	_, err := uc.List(context.Background(), servicejobs.Query{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_SearchByVehicleAndSortByPriority(t *testing.T) {
	uc := servicejobs.NewUseCase(seedJobs(), nil, nil, nil)

	page, err := uc.List(context.Background(), servicejobs.Query{Query: listing.Query{Search: "honda", SortField: "priority"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, "1999 Honda Prelude", page.Items[0].VehicleLabel)
	assert.Equal(t, "Ana", page.Items[1].CustomerName)
}

func TestList_CreatedAtMissingLast(t *testing.T) {
	uc := servicejobs.NewUseCase(seedJobs(), nil, nil, nil)

	page, err := uc.List(context.Background(), servicejobs.Query{Query: listing.Query{SortField: "created_at", SortDesc: true}})
	require.NoError(t, err)
	ids := []int64{}
	for _, j := range page.Items {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []int64{2, 1, 3}, ids)
}

func TestCreate_FindsCustomerAndCopiesVehicle(t *testing.T) {
	jobs := seedJobs()
	customers := &fakeCustomers{}
	resolver := &fakeResolver{}
	uc := servicejobs.NewUseCase(jobs, customers, resolver, nil)

	job, err := uc.Create(context.Background(), dto.CreateServiceJobRequest{
		CustomerName: "Nuevo",
		Title:        "Turbo kit",
		VehicleMake:  "Honda",
		VehicleModel: "S2000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), job.ID)
	assert.Equal(t, "Nuevo", resolver.name)
	assert.Equal(t, int64(77), jobs.created.CustomerID)
	assert.Equal(t, entity.PriorityNormal, jobs.created.Priority)

	p := customers.patches[77]
	require.NotNil(t, p.VehicleMake)
	assert.Equal(t, "Honda", *p.VehicleMake)
	assert.Equal(t, "S2000", *p.VehicleModel)
	assert.Nil(t, p.Notes)
}

func TestCreate_CustomerPatchFailureDoesNotFail(t *testing.T) {
	uc := servicejobs.NewUseCase(seedJobs(), &fakeCustomers{err: errors.New("caído")}, nil, nil)

	job, err := uc.Create(context.Background(), dto.CreateServiceJobRequest{CustomerID: 5, Title: "x", VehicleMake: "Acura"})
	require.NoError(t, err)
	assert.Equal(t, int64(50), job.ID)
}

func TestCreate_Validation(t *testing.T) {
	uc := servicejobs.NewUseCase(seedJobs(), nil, nil, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateServiceJobRequest{CustomerID: 1, Title: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateServiceJobRequest{CustomerID: 1, Title: "x", Priority: "asap"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateServiceJobRequest{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_QuotedTotalIsSent(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)
	q := decimal.RequireFromString("1500.00")

	_, err := uc.Create(context.Background(), dto.CreateServiceJobRequest{CustomerID: 5, Title: "x", QuotedTotal: &q})
	require.NoError(t, err)
	assert.True(t, jobs.created.QuotedTotal.Valid)
	assert.False(t, jobs.created.EstimatedHours.Valid)
}

func TestUpdate_StatusRereads(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	job, err := uc.Update(context.Background(), 2, dto.UpdateServiceJobRequest{Status: ptr(entity.JobStatusApproved)})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusApproved, job.Status)
	assert.Nil(t, jobs.patch.Priority)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	_, err := uc.Update(context.Background(), 2, dto.UpdateServiceJobRequest{Status: ptr("done")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, jobs.patch)
}

func TestUpdate_FailureLeavesJob(t *testing.T) {
	jobs := seedJobs()
	jobs.mutateErr = domain.ErrBackendUnavailable
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	_, err := uc.Update(context.Background(), 2, dto.UpdateServiceJobRequest{Status: ptr(entity.JobStatusApproved)})
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	assert.Equal(t, 0, jobs.getCalls)
}

func TestAddUpdate_Defaults(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	job, err := uc.AddUpdate(context.Background(), 1, dto.AddJobUpdateRequest{Description: "Motor instalado"})
	require.NoError(t, err)
	assert.Len(t, job.Updates, 1)
	assert.Equal(t, servicejobs.DefaultUpdateTitle, jobs.update.Title)
	assert.Equal(t, servicejobs.UpdateTypeProgress, jobs.update.UpdateType)
	assert.Equal(t, servicejobs.CreatedByAdmin, jobs.update.CreatedBy)
	assert.True(t, jobs.update.VisibleToCustomer)

	_, err = uc.AddUpdate(context.Background(), 1, dto.AddJobUpdateRequest{Description: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddPart_QuantityDefaultsToOne(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	_, err := uc.AddPart(context.Background(), 1, dto.AddJobPartRequest{Name: "Clutch"})
	require.NoError(t, err)
	assert.Equal(t, 1, jobs.part.Quantity)
	assert.False(t, jobs.part.UnitCost.Valid)

	_, err = uc.AddPart(context.Background(), 1, dto.AddJobPartRequest{Name: "Clutch", Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddPart(context.Background(), 1, dto.AddJobPartRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteUpdateAndPart_Reread(t *testing.T) {
	jobs := seedJobs()
	jobs.jobs[1].Updates = []entity.JobUpdate{{ID: 9, Title: "Progress Update"}}
	jobs.jobs[1].Parts = []entity.JobPart{{ID: 4, Name: "Filtro"}}
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	job, err := uc.DeleteUpdate(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ID)

	_, err = uc.DeletePart(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"update", "part"}, jobs.deleted)
}

func TestDeleteUpdateAndPart_DeOtroTrabajo(t *testing.T) {
	jobs := seedJobs()
	jobs.jobs[2].Updates = []entity.JobUpdate{{ID: 99, Title: "Progress Update"}}
	jobs.jobs[2].Parts = []entity.JobPart{{ID: 77, Name: "Pastillas"}}
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	job, err := uc.DeleteUpdate(context.Background(), 1, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, job)

	job, err = uc.DeletePart(context.Background(), 1, 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, job)

	assert.Empty(t, jobs.deleted)
	assert.Len(t, jobs.jobs[2].Updates, 1)
	assert.Len(t, jobs.jobs[2].Parts, 1)
}

func TestDeleteUpdate_TrabajoInexistente(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	_, err := uc.DeleteUpdate(context.Background(), 404, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, jobs.deleted)
}

func TestUploadPhoto_Defaults(t *testing.T) {
	jobs := seedJobs()
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	_, err := uc.UploadPhoto(context.Background(), 1, repository.PhotoUpload{Filename: "a.jpg", Content: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, servicejobs.PhotoTypeProgress, jobs.photo.PhotoType)
	assert.Equal(t, servicejobs.CreatedByAdmin, jobs.photo.UploadedBy)

	_, err = uc.UploadPhoto(context.Background(), 1, repository.PhotoUpload{Filename: "a.jpg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateInvoice(t *testing.T) {
	uc := servicejobs.NewUseCase(seedJobs(), nil, nil, nil)

	res, job, err := uc.GenerateInvoice(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", res.InvoiceID)
	assert.Equal(t, "INV-1", job.WaveInvoiceID)
}

func TestForCustomer_HidesInternalData(t *testing.T) {
	jobs := newFakeJobs(entity.ServiceJob{
		ID: 1, CustomerID: 5, InternalNotes: "margen bajo",
		Updates: []entity.JobUpdate{{ID: 1, VisibleToCustomer: true}, {ID: 2}},
		Photos:  []entity.JobPhoto{{ID: 1}, {ID: 2, VisibleToCustomer: true}},
	}, entity.ServiceJob{ID: 2, CustomerID: 6})
	uc := servicejobs.NewUseCase(jobs, nil, nil, nil)

	got, err := uc.ForCustomer(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].InternalNotes)
	assert.Len(t, got[0].Updates, 1)
	assert.Len(t, got[0].Photos, 1)
	assert.Equal(t, int64(5), jobs.filter.CustomerID)
}
