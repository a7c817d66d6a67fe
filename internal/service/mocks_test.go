package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"drivehire-backend/internal/domain"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateWithAvailability(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Transition(ctx context.Context, id int64, requested domain.BookingStatus, note string) (*domain.Booking, error) {
	args := m.Called(ctx, id, requested, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByDriver(ctx context.Context, driverID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, driverID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListStalePending(ctx context.Context, before string) ([]domain.Booking, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListUpcomingUnderpaid(ctx context.Context, from, to string) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Submit(ctx context.Context, p *domain.Payment) (*domain.Booking, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockPaymentRepo) Decide(ctx context.Context, paymentID, verifierID int64, approve bool, notes string) (*domain.Payment, *domain.Booking, error) {
	args := m.Called(ctx, paymentID, verifierID, approve, notes)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Booking), args.Error(2)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumVerified(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDriverRepo
type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}
func (m *MockDriverRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Driver, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}
func (m *MockDriverRepo) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Driver, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Driver), args.Get(1).(int32), args.Error(2)
}
func (m *MockDriverRepo) SetVerified(ctx context.Context, id int64, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}
func (m *MockDriverRepo) SetAccepting(ctx context.Context, id int64, accepting bool) error {
	args := m.Called(ctx, id, accepting)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) SetFCMToken(ctx context.Context, userID int64, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepo) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, driverID, page, pageSize)
	return args.Get(0).([]domain.Review), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreated(ctx context.Context, to, name, code string) error {
	args := m.Called(ctx, to, name, code)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, to, name, code, startDate string) error {
	args := m.Called(ctx, to, name, code, startDate)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, to, name, code, reason string) error {
	args := m.Called(ctx, to, name, code, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentVerified(ctx context.Context, to, name, code string, amount int64) error {
	args := m.Called(ctx, to, name, code, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentRejected(ctx context.Context, to, name, code string, amount int64) error {
	args := m.Called(ctx, to, name, code, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(ctx context.Context, to, name, code, startDate string, remaining int64) error {
	args := m.Called(ctx, to, name, code, startDate, remaining)
	return args.Error(0)
}

// MockTrackingStore
type MockTrackingStore struct {
	mock.Mock
}

func (m *MockTrackingStore) Record(ctx context.Context, point *domain.TrackingPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}
func (m *MockTrackingStore) Latest(ctx context.Context, bookingID int64) (*domain.TrackingPoint, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackingPoint), args.Error(1)
}
