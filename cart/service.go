package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"Storefront/session"
)

// Store 讀寫某個Session的購物車
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
}

const sessionField = "cart"

// SessionStore 將購物車以JSON存在Session的cart欄位
type SessionStore struct {
	sessions session.Store
}

func NewSessionStore(sessions session.Store) *SessionStore {
	return &SessionStore{sessions: sessions}
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	value, err := s.sessions.Get(ctx, sessionID, sessionField)
	if err != nil {
		return nil, err
	}
	cart := &Cart{}
	if value == nil {
		return cart, nil
	}
	if err := json.Unmarshal(value, cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	value, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.sessions.Set(ctx, sessionID, sessionField, value)
}

// Service 每個操作都是讀取購物車、修改一次、再寫回
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) load(ctx context.Context, sessionID string) (*Cart, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, sessionID string, cart *Cart) error {
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Service) Add(ctx context.Context, sessionID string, item Item) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := cart.Add(item); err != nil {
		return err
	}
	return s.save(ctx, sessionID, cart)
}

func (s *Service) Remove(ctx context.Context, sessionID string, id uint) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	//購物車沒有此商品則不需寫回
	if cart.index(id) < 0 {
		return nil
	}
	cart.Remove(id)
	return s.save(ctx, sessionID, cart)
}

func (s *Service) Update(ctx context.Context, sessionID string, id uint, quantity int) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := cart.Update(id, quantity); err != nil {
		return err
	}
	return s.save(ctx, sessionID, cart)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	cart := &Cart{}
	return s.save(ctx, sessionID, cart)
}

func (s *Service) Content(ctx context.Context, sessionID string) ([]Item, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.Content(), nil
}

func (s *Service) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return cart.Total(), nil
}

func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}
