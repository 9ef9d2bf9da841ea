// Package gifttest provides an in-memory gift.Store for tests.
package gifttest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// MemStore records every call and can be told to fail individual
// operations.
type MemStore struct {
	mu    sync.Mutex
	gifts map[string]*gift.Gift
	seq   int

	Now func() time.Time

	CreateErr error
	AddErr    error
	GetErr    error
	MarkErr   error
	UploadErr error

	Calls []string
}

func NewMemStore() *MemStore {
	return &MemStore{
		gifts: make(map[string]*gift.Gift),
		Now:   func() time.Time { return time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC) },
	}
}

func (s *MemStore) record(call string) {
	s.Calls = append(s.Calls, call)
}

// CallCount returns how many times op was invoked.
func (s *MemStore) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (s *MemStore) CreateGift(ctx context.Context, f gift.Fields) (*gift.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("CreateGift")
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}

	s.seq++
	g := &gift.Gift{
		ID:            fmt.Sprintf("gift-%d", s.seq),
		SenderName:    f.SenderName,
		RecipientName: f.RecipientName,
		Message:       f.Message,
		VoiceRef:      f.VoiceRef,
		CreatedAt:     s.Now(),
	}
	s.gifts[g.ID] = g
	return g.Clone(), nil
}

func (s *MemStore) AddPhotos(ctx context.Context, giftID string, refs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("AddPhotos")
	if s.AddErr != nil {
		return s.AddErr
	}
	g, ok := s.gifts[giftID]
	if !ok {
		return gift.ErrNotFound
	}
	g.PhotoRefs = append(g.PhotoRefs, refs...)
	return nil
}

func (s *MemStore) GetGift(ctx context.Context, id string) (*gift.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetGift")
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	g, ok := s.gifts[id]
	if !ok {
		return nil, gift.ErrNotFound
	}
	return g.Clone(), nil
}

func (s *MemStore) MarkOpened(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("MarkOpened")
	if s.MarkErr != nil {
		return s.MarkErr
	}
	if g, ok := s.gifts[id]; ok && g.OpenedAt == nil {
		t := s.Now()
		g.OpenedAt = &t
	}
	return nil
}

func (s *MemStore) UploadFile(ctx context.Context, data []byte, path, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UploadFile")
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	return "mem://" + path, nil
}

// Put stores g as is, for tests that need a specific record.
func (s *MemStore) Put(g *gift.Gift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gifts[g.ID] = g.Clone()
}
