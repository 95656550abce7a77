package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/models"
	"github.com/mkravets/linkjournal/internal/server/repositories/journals"
)

const journalID = "3f4c6a87-5b0d-4a2e-9f61-7d28b54ce002"

type fakeJournalsRepo struct {
	journals.Repository

	created *models.Journal
	updates map[string]journals.Update
	toggled bool
}

func (f *fakeJournalsRepo) Create(ctx context.Context, j *models.Journal) (*models.Journal, error) {
	j.ID = journalID
	f.created = j
	return j, nil
}

func (f *fakeJournalsRepo) GetByID(ctx context.Context, userID, id string) (*models.Journal, error) {
	return &models.Journal{ID: id, UserID: userID, Name: "Article", Link: "https://example.com"}, nil
}

func (f *fakeJournalsRepo) Update(ctx context.Context, userID, id string, upd journals.Update) error {
	if f.updates == nil {
		f.updates = map[string]journals.Update{}
	}
	f.updates[id] = upd
	return nil
}

func (f *fakeJournalsRepo) ToggleImportant(ctx context.Context, userID, id string) (bool, error) {
	f.toggled = !f.toggled
	return f.toggled, nil
}

func TestJournalService_Create(t *testing.T) {
	repo := &fakeJournalsRepo{}
	svc := NewJournalService(repo)

	j, err := svc.Create(context.Background(), "u1", models.CreateJournalRequest{
		Name: "  Article ",
		Link: " https://example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, journalID, j.ID)
	assert.Equal(t, "Article", j.Name)
	assert.Equal(t, "https://example.com", j.Link)
	assert.Equal(t, "u1", repo.created.UserID)
}

func TestJournalService_Create_Validation(t *testing.T) {
	svc := NewJournalService(&fakeJournalsRepo{})

	_, err := svc.Create(context.Background(), "u1", models.CreateJournalRequest{Link: "https://example.com"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(context.Background(), "u1", models.CreateJournalRequest{Name: "Article"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestJournalService_Update(t *testing.T) {
	repo := &fakeJournalsRepo{}
	svc := NewJournalService(repo)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "u1", journalID, models.UpdateJournalRequest{Name: &name})
	require.NoError(t, err)
	require.Contains(t, repo.updates, journalID)
	assert.Equal(t, &name, repo.updates[journalID].Name)
}

func TestJournalService_Update_EmptyNameRejected(t *testing.T) {
	svc := NewJournalService(&fakeJournalsRepo{})

	empty := "  "
	_, err := svc.Update(context.Background(), "u1", journalID, models.UpdateJournalRequest{Name: &empty})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(context.Background(), "u1", journalID, models.UpdateJournalRequest{Link: &empty})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestJournalService_ToggleImportant(t *testing.T) {
	repo := &fakeJournalsRepo{}
	svc := NewJournalService(repo)

	v, err := svc.ToggleImportant(context.Background(), "u1", journalID)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = svc.ToggleImportant(context.Background(), "u1", journalID)
	require.NoError(t, err)
	assert.False(t, v)
}

func TestJournalService_MalformedID(t *testing.T) {
	repo := &fakeJournalsRepo{}
	svc := NewJournalService(repo)

	// a non-uuid id never reaches the repository
	_, err := svc.Get(context.Background(), "u1", "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrNotFound)

	name := "Renamed"
	_, err = svc.Update(context.Background(), "u1", "not-a-uuid", models.UpdateJournalRequest{Name: &name})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Empty(t, repo.updates)

	_, err = svc.ToggleImportant(context.Background(), "u1", "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrNotFound)

	bad := "not-a-uuid"
	_, err = svc.Create(context.Background(), "u1", models.CreateJournalRequest{
		Name: "Article", Link: "https://example.com", TopicID: bad,
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(context.Background(), "u1", journalID, models.UpdateJournalRequest{TopicID: &bad})
	assert.ErrorIs(t, err, common.ErrValidation)
}
