package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"bloodlink/internal/adapters/persistence/models"
	"bloodlink/internal/core/domain"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock DonationRepository ──

type mockDonationRepo struct {
	donations map[uint]*models.Donation
	nextID    uint
}

func newMockDonationRepo() *mockDonationRepo {
	return &mockDonationRepo{donations: make(map[uint]*models.Donation), nextID: 1}
}

func (m *mockDonationRepo) Create(_ context.Context, donation *models.Donation) error {
	if donation.ID == 0 {
		donation.ID = m.nextID
		m.nextID++
	}
	donation.CreatedAt = time.Now()
	m.donations[donation.ID] = donation
	return nil
}

func (m *mockDonationRepo) GetByID(_ context.Context, id uint) (*models.Donation, error) {
	if d, ok := m.donations[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDonationRepo) ListByDonor(_ context.Context, donorID uint) ([]*models.Donation, error) {
	var result []*models.Donation
	for _, d := range m.donations {
		if d.DonorID == donorID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduledDate.After(result[j].ScheduledDate) })
	return result, nil
}

func (m *mockDonationRepo) ListAll(_ context.Context) ([]*models.Donation, error) {
	var result []*models.Donation
	for _, d := range m.donations {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduledDate.After(result[j].ScheduledDate) })
	return result, nil
}

func (m *mockDonationRepo) Update(_ context.Context, donation *models.Donation) error {
	if _, ok := m.donations[donation.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.donations[donation.ID] = donation
	return nil
}

func (m *mockDonationRepo) ListStalePending(_ context.Context, cutoff time.Time) ([]*models.Donation, error) {
	var result []*models.Donation
	for _, d := range m.donations {
		if d.Status == domain.DonationPending && d.ScheduledDate.Before(cutoff) {
			result = append(result, d)
		}
	}
	return result, nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[uint]*models.Request
	nextID   uint
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[uint]*models.Request), nextID: 1}
}

func (m *mockRequestRepo) Create(_ context.Context, request *models.Request) error {
	if request.ID == 0 {
		request.ID = m.nextID
		m.nextID++
	}
	request.CreatedAt = time.Now()
	m.requests[request.ID] = request
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id uint) (*models.Request, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) ListByRecipient(_ context.Context, recipientID uint) ([]*models.Request, error) {
	var result []*models.Request
	for _, r := range m.requests {
		if r.RecipientID == recipientID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockRequestRepo) ListAll(_ context.Context) ([]*models.Request, error) {
	var result []*models.Request
	for _, r := range m.requests {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockRequestRepo) Update(_ context.Context, request *models.Request) error {
	if _, ok := m.requests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.requests[request.ID] = request
	return nil
}
