// Package storage описывает асинхронное хранилище настроек ключ-значение.
package storage

import (
	"context"
	"maps"
	"sort"
)

// Preferences - неизменяемый снимок хранилища.
type Preferences struct {
	values map[string]string
}

// NewPreferences копирует values в новый снимок.
func NewPreferences(values map[string]string) Preferences {
	return Preferences{values: maps.Clone(values)}
}

// Get возвращает значение ключа.
func (p Preferences) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p Preferences) Len() int { return len(p.values) }

// AsMap возвращает копию содержимого.
func (p Preferences) AsMap() map[string]string {
	out := make(map[string]string, len(p.values))
	maps.Copy(out, p.values)
	return out
}

// Keys возвращает отсортированный список ключей.
func (p Preferences) Keys() []string {
	out := make([]string, 0, len(p.values))
	for k := range p.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Change - одна операция редактирования. Removed означает удаление ключа.
type Change struct {
	Key     string
	Value   string
	Removed bool
}

// MutablePreferences накапливает изменения внутри Edit.
type MutablePreferences struct {
	values  map[string]string
	changes []Change
}

// NewMutablePreferences начинает редактирование поверх снимка.
func NewMutablePreferences(base Preferences) *MutablePreferences {
	return &MutablePreferences{values: base.AsMap()}
}

func (m *MutablePreferences) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MutablePreferences) Set(key, value string) {
	m.values[key] = value
	m.changes = append(m.changes, Change{Key: key, Value: value})
}

func (m *MutablePreferences) Remove(key string) {
	delete(m.values, key)
	m.changes = append(m.changes, Change{Key: key, Removed: true})
}

// Changes возвращает изменения в порядке применения.
func (m *MutablePreferences) Changes() []Change {
	return m.changes
}

// Snapshot фиксирует текущее состояние редактирования.
func (m *MutablePreferences) Snapshot() Preferences {
	return NewPreferences(m.values)
}

// PreferenceStore - асинхронное хранилище ключ-значение.
type PreferenceStore interface {
	// Data отдает текущий снимок, затем снимок после каждого изменения.
	// Канал закрывается при отмене ctx или закрытии хранилища.
	Data(ctx context.Context) <-chan Preferences
	// Snapshot возвращает текущий снимок.
	Snapshot(ctx context.Context) (Preferences, error)
	// Edit атомарно применяет fn. После успешного возврата все подписчики
	// Data получат новый снимок. При ошибке изменения не видны.
	Edit(ctx context.Context, fn func(*MutablePreferences)) error
	Close() error
}
