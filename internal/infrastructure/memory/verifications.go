// Package memory holds the process-local backends for verification codes.
// A restart loses all pending codes; deployments that need codes to survive
// restarts select the dynamo backend instead.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shop-access-core/internal/domain"
	"github.com/shop-access-core/internal/pkg/secrets"
)

const sweepInterval = time.Minute

// CodeStore keeps at most one live verification code per email. All
// operations take the store lock, so store/verify/delete are atomic per
// email and a verify always observes the most recently stored code.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]domain.VerificationCode
	now   func() time.Time
}

func NewCodeStore() *CodeStore {
	s := &CodeStore{
		codes: make(map[string]domain.VerificationCode),
		now:   time.Now,
	}
	go s.sweep()
	return s
}

// Put stores a fresh code for email, replacing any existing one.
func (s *CodeStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = domain.VerificationCode{
		Email:     email,
		Code:      code,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
	return nil
}

// VerifyAndConsume redeems the code for email exactly once. Expired codes
// are deleted and rejected; a wrong guess is rejected but the stored code
// survives so the caller may retry within the TTL.
func (s *CodeStore) VerifyAndConsume(_ context.Context, email, supplied string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.codes[email]
	if !ok {
		return false, nil
	}
	if s.now().Unix() > rec.ExpiresAt {
		delete(s.codes, email)
		return false, nil
	}
	if !secrets.Equal(supplied, rec.Code) {
		return false, nil
	}
	delete(s.codes, email)
	return true, nil
}

// SweepExpired deletes every entry whose expiry has passed. Expired entries
// are already logically absent; this only reclaims memory.
func (s *CodeStore) SweepExpired() {
	now := s.now().Unix()
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, rec := range s.codes {
		if now > rec.ExpiresAt {
			delete(s.codes, email)
		}
	}
}

func (s *CodeStore) sweep() {
	for {
		time.Sleep(sweepInterval)
		s.SweepExpired()
	}
}
