// Package flow реализует наблюдаемое состояние поверх каналов.
//
// Каждая подписка получает текущее значение сразу, затем значение после
// каждого изменения. Медленный подписчик видит только последнее значение:
// буфер канала равен одному, новое значение вытесняет непрочитанное.
package flow

import (
	"context"
	"sync"
)

// State хранит последнее значение и рассылает его подписчикам.
type State[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[uint64]chan T
	nextID uint64
	done   chan struct{}
	closed bool
}

// NewState создает состояние с начальным значением.
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value: initial,
		subs:  make(map[uint64]chan T),
		done:  make(chan struct{}),
	}
}

// Value возвращает текущее значение.
func (s *State[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set заменяет значение и уведомляет подписчиков.
// Когда Set вернулся, каждый подписчик гарантированно получит v или более новое значение.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(v)
}

// Update атомарно применяет fn к текущему значению.
func (s *State[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := fn(s.value)
	s.setLocked(v)
	return v
}

func (s *State[T]) setLocked(v T) {
	if s.closed {
		return
	}
	s.value = v
	for _, ch := range s.subs {
		offer(ch, v)
	}
}

// Subscribe возвращает канал значений. Канал закрывается при отмене ctx
// или при Close.
func (s *State[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.value
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}()

	return ch
}

// Subscribers возвращает число активных подписок.
func (s *State[T]) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close закрывает все подписки. Последующие Set игнорируются.
func (s *State[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// offer кладет v в канал с буфером 1, вытесняя непрочитанное значение.
// Вызывается под мьютексом, других отправителей у канала нет.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
