package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/unimatch/backend/internal/domain"
)

func TestMemoryStore_ExpiresProfiles(t *testing.T) {
	s := NewMemoryStore(1 * time.Millisecond)
	defer s.Close()
	ctx := context.Background()

	if err := s.SaveProfile(ctx, "client-1", &domain.StudentProfile{FirstName: "Noa"}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	_, err := s.GetProfile(ctx, "client-1")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("GetProfile() after expiration error = %v, want %v", err, domain.ErrProfileNotFound)
	}
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	if err := s.SaveLikes(ctx, "client-1", []string{"technion"}); err != nil {
		t.Fatalf("SaveLikes() error = %v", err)
	}

	s.removeExpired(time.Now().Add(100 * 365 * 24 * time.Hour))

	got, err := s.GetLikes(ctx, "client-1")
	if err != nil {
		t.Fatalf("GetLikes() error = %v", err)
	}
	if len(got) != 1 || got[0] != "technion" {
		t.Errorf("GetLikes() = %v, want [technion]", got)
	}
}

func TestMemoryStore_RemoveExpired(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.SaveLikes(ctx, fmt.Sprintf("client-%d", i), []string{"x"}); err != nil {
			t.Fatalf("SaveLikes() error = %v", err)
		}
	}
	if size := s.Size(); size != 3 {
		t.Fatalf("Size() = %d, want 3", size)
	}

	s.removeExpired(time.Now())
	if size := s.Size(); size != 3 {
		t.Errorf("Size() = %d, want 3 before expiry", size)
	}

	s.removeExpired(time.Now().Add(2 * time.Minute))
	if size := s.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after expiry", size)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()
	ctx := context.Background()

	p := &domain.StudentProfile{DesiredField: []string{"CS"}}
	if err := s.SaveProfile(ctx, "c", p); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	p.DesiredField[0] = "Law"

	got, err := s.GetProfile(ctx, "c")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.DesiredField[0] != "CS" {
		t.Errorf("stored profile changed through caller's slice: %v", got.DesiredField)
	}
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			clientID := fmt.Sprintf("client-%d", id)
			if err := s.SaveProfile(ctx, clientID, &domain.StudentProfile{FirstName: clientID}); err != nil {
				t.Errorf("Concurrent SaveProfile() error = %v", err)
			}
			if _, err := s.GetProfile(ctx, clientID); err != nil {
				t.Errorf("Concurrent GetProfile() error = %v", err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
