package verification

import (
	"errors"
	"testing"
	"time"

	"veriflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// --- mock ---

type mockRepo struct{ mock.Mock }

func (m *mockRepo) UpsertStatus(email string, fields bson.M) error {
	return m.Called(email, fields).Error(0)
}

func (m *mockRepo) SaveRegistration(rec *models.VerificationRecord) error {
	return m.Called(rec).Error(0)
}

func (m *mockRepo) GetByEmail(email string) (*models.VerificationRecord, error) {
	args := m.Called(email)
	if r, _ := args.Get(0).(*models.VerificationRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.VerificationRecord, error) {
	args := m.Called(email, projection)
	if r, _ := args.Get(0).(*models.VerificationRecord); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) FindStalePending(cutoff time.Time, limit int64) ([]models.VerificationRecord, error) {
	args := m.Called(cutoff, limit)
	return args.Get(0).([]models.VerificationRecord), args.Error(1)
}

// --- tests ---

func approvedPayload() *models.VeriffWebhookPayload {
	return &models.VeriffWebhookPayload{
		Verification: &models.VeriffVerification{
			ID:         "v1",
			Status:     models.StatusApproved,
			VendorData: "a@b.com",
			Person: &models.VeriffPerson{
				FirstName: "Jane",
			},
		},
	}
}

func TestProcessWebhook_ApprovedWritesPersonFieldsWithExplicitNulls(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	var captured bson.M
	repo.On("UpsertStatus", "a@b.com", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(bson.M)
	}).Return(nil)

	email, err := svc.ProcessWebhook(approvedPayload())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	assert.Equal(t, models.StatusApproved, captured["status"])
	assert.Equal(t, "v1", captured["verificationId"])
	assert.Equal(t, "Jane", captured["firstName"])

	// Absent payload fields are written as explicit nulls, never skipped.
	lastName, ok := captured["lastName"]
	require.True(t, ok)
	assert.Nil(t, lastName)
	dob, ok := captured["dateOfBirth"]
	require.True(t, ok)
	assert.Nil(t, dob)

	// The document section was absent entirely, so no document keys at all.
	assert.NotContains(t, captured, "documentType")
	assert.NotContains(t, captured, "documentNumber")

	repo.AssertExpectations(t)
}

func TestProcessWebhook_NonApprovedSkipsIdentityFields(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	var captured bson.M
	repo.On("UpsertStatus", "a@b.com", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(bson.M)
	}).Return(nil)

	payload := approvedPayload()
	payload.Verification.Status = models.StatusDeclined

	_, err := svc.ProcessWebhook(payload)
	require.NoError(t, err)

	assert.Equal(t, models.StatusDeclined, captured["status"])
	assert.NotContains(t, captured, "firstName")
	assert.NotContains(t, captured, "lastName")
}

func TestProcessWebhook_VendorDataFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(v *models.VeriffVerification)
		email string
	}{
		{
			name:  "vendorData",
			mut:   func(v *models.VeriffVerification) {},
			email: "a@b.com",
		},
		{
			name: "person email",
			mut: func(v *models.VeriffVerification) {
				v.VendorData = ""
				v.Person.Email = "person@b.com"
			},
			email: "person@b.com",
		},
		{
			name: "additionalData email",
			mut: func(v *models.VeriffVerification) {
				v.VendorData = ""
				v.AdditionalData = &models.VeriffAdditionalData{Email: "add@b.com"}
			},
			email: "add@b.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := &DefaultVerificationService{Repo: repo}
			repo.On("UpsertStatus", tt.email, mock.Anything).Return(nil)

			payload := approvedPayload()
			tt.mut(payload.Verification)

			email, err := svc.ProcessWebhook(payload)
			require.NoError(t, err)
			assert.Equal(t, tt.email, email)
			repo.AssertExpectations(t)
		})
	}
}

func TestProcessWebhook_NoResolvableIdentifier(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	payload := approvedPayload()
	payload.Verification.VendorData = ""
	payload.Verification.Person = nil

	_, err := svc.ProcessWebhook(payload)
	assert.ErrorIs(t, err, ErrNoVendorData)
	repo.AssertNotCalled(t, "UpsertStatus", mock.Anything, mock.Anything)
}

func TestProcessWebhook_NilVerification(t *testing.T) {
	svc := &DefaultVerificationService{Repo: new(mockRepo)}

	_, err := svc.ProcessWebhook(&models.VeriffWebhookPayload{})
	assert.ErrorIs(t, err, ErrNoVendorData)
}

func TestProcessWebhook_StoreFailureSurfaces(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	repo.On("UpsertStatus", "a@b.com", mock.Anything).Return(errors.New("write failed"))

	_, err := svc.ProcessWebhook(approvedPayload())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoVendorData)
}

func TestProcessWebhook_IdempotentFields(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	var writes []bson.M
	repo.On("UpsertStatus", "a@b.com", mock.Anything).Run(func(args mock.Arguments) {
		writes = append(writes, args.Get(1).(bson.M))
	}).Return(nil)

	_, err := svc.ProcessWebhook(approvedPayload())
	require.NoError(t, err)
	_, err = svc.ProcessWebhook(approvedPayload())
	require.NoError(t, err)

	require.Len(t, writes, 2)
	// Re-applying the same payload writes the same fields; only lastUpdated
	// advances.
	for _, w := range writes {
		delete(w, "lastUpdated")
	}
	assert.Equal(t, writes[0], writes[1])
}

func TestProcessWebhook_LastWriteWinsOrdering(t *testing.T) {
	tests := []struct {
		name     string
		statuses []models.VerificationStatus
	}{
		{"pending then approved", []models.VerificationStatus{models.StatusPending, models.StatusApproved}},
		{"approved then pending", []models.VerificationStatus{models.StatusApproved, models.StatusPending}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := &DefaultVerificationService{Repo: repo}

			var writes []bson.M
			repo.On("UpsertStatus", "a@b.com", mock.Anything).Run(func(args mock.Arguments) {
				writes = append(writes, args.Get(1).(bson.M))
			}).Return(nil)

			for _, status := range tt.statuses {
				payload := approvedPayload()
				payload.Verification.Status = status
				_, err := svc.ProcessWebhook(payload)
				require.NoError(t, err)
			}

			// Each callback overwrites unconditionally; whatever arrived last
			// is what the record holds, regardless of delivery order.
			require.Len(t, writes, len(tt.statuses))
			for i, status := range tt.statuses {
				assert.Equal(t, status, writes[i]["status"])
			}
			assert.Equal(t, tt.statuses[len(tt.statuses)-1], writes[len(writes)-1]["status"])
		})
	}
}

func TestGetStatus(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	repo.On("GetByEmailWithProjection", "a@b.com", mock.Anything).
		Return(&models.VerificationRecord{Email: "a@b.com", Status: models.StatusApproved}, nil)
	repo.On("GetByEmailWithProjection", "missing@b.com", mock.Anything).
		Return(nil, nil)

	status, found, err := svc.GetStatus("a@b.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.StatusApproved, status)

	_, found, err = svc.GetStatus("missing@b.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetDetails_DefaultsEmptyStatusToUnknown(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	repo.On("GetByEmailWithProjection", "a@b.com", mock.Anything).
		Return(&models.VerificationRecord{Email: "a@b.com"}, nil)

	rec, err := svc.GetDetails("a@b.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.StatusUnknown, rec.Status)
}

func TestGetDetails_StripsCredentialHashAtQueryLevel(t *testing.T) {
	repo := new(mockRepo)
	svc := &DefaultVerificationService{Repo: repo}

	repo.On("GetByEmailWithProjection", "a@b.com", bson.M{"passwordHash": 0}).
		Return(&models.VerificationRecord{Email: "a@b.com", Status: models.StatusPending}, nil)

	_, err := svc.GetDetails("a@b.com")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
