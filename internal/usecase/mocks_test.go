package usecase

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"golang.org/x/text/language"
)

// MockEntityRepository is a mock implementation of EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindByExternalID(ctx context.Context, entityType model.EntityType, externalID string) (*model.ExternalEntity, error) {
	args := m.Called(ctx, entityType, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExternalEntity), args.Error(1)
}

func (m *MockEntityRepository) Create(ctx context.Context, entityType model.EntityType, entity *model.ExternalEntity) error {
	args := m.Called(ctx, entityType, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) UpdateName(ctx context.Context, entityType model.EntityType, id int64, name string) error {
	args := m.Called(ctx, entityType, id, name)
	return args.Error(0)
}

func (m *MockEntityRepository) Count(ctx context.Context, entityType model.EntityType) (int64, error) {
	args := m.Called(ctx, entityType)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerPriceRepository is a mock implementation of CustomerPriceRepository
type MockCustomerPriceRepository struct {
	mock.Mock
}

func (m *MockCustomerPriceRepository) FindBySKUAndCustomer(ctx context.Context, sku string, customerID int64) (*model.CustomerPrice, error) {
	args := m.Called(ctx, sku, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerPrice), args.Error(1)
}

func (m *MockCustomerPriceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.CustomerPrice, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerPrice), args.Error(1)
}

func (m *MockCustomerPriceRepository) Create(ctx context.Context, price *model.CustomerPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockCustomerPriceRepository) Update(ctx context.Context, price *model.CustomerPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

// MockEntitySource is a mock implementation of EntitySource
type MockEntitySource struct {
	mock.Mock
}

func (m *MockEntitySource) ListEntities(ctx context.Context, entityType model.EntityType) ([]dto.EntityRecord, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EntityRecord), args.Error(1)
}

// fakeCatalog serves a fixed bulk export and records the steps it went through
type fakeCatalog struct {
	sessionErr  error
	linkErr     error
	downloadErr error
	records     []json.RawMessage
	images     map[string]fakeImage
	steps      []string
}

type fakeImage struct {
	data        []byte
	contentType string
	err         error
}

func (f *fakeCatalog) EnsureSession(_ context.Context) error {
	f.steps = append(f.steps, "session")
	return f.sessionErr
}

func (f *fakeCatalog) RequestCatalogLink(_ context.Context) (string, error) {
	f.steps = append(f.steps, "link")
	if f.linkErr != nil {
		return "", f.linkErr
	}
	return "https://files.example.test/catalog.json", nil
}

func (f *fakeCatalog) DownloadCatalog(_ context.Context, _ string) ([]json.RawMessage, error) {
	f.steps = append(f.steps, "download")
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.records, nil
}

func (f *fakeCatalog) Download(_ context.Context, link string) ([]byte, string, error) {
	f.steps = append(f.steps, "image:"+link)
	img, ok := f.images[link]
	if !ok {
		return nil, "", context.DeadlineExceeded
	}
	return img.data, img.contentType, img.err
}

func (f *fakeCatalog) Locale() language.Tag {
	return language.Spanish
}

// memoryMediaStore keeps stored pictures in a map
type memoryMediaStore struct {
	blobs map[string][]byte
}

func newMemoryMediaStore() *memoryMediaStore {
	return &memoryMediaStore{blobs: make(map[string][]byte)}
}

func (s *memoryMediaStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.blobs[key] = data
	return "mem://" + key, nil
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}
