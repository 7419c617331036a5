// Package debounce предоставляет отменяемый одноразовый таймер для отложенного
// выполнения действий: новое планирование отменяет предыдущее, так что срабатывает
// только последний запланированный вызов.
package debounce

import (
	"sync"
	"time"
)

// Timer — отменяемый одноразовый таймер.
// Нулевое значение готово к использованию.
type Timer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule планирует вызов fn через delay, отменяя ранее запланированный вызов.
// fn выполняется в отдельной горутине.
func (t *Timer) Schedule(delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(delay, fn)
}

// Cancel отменяет запланированный вызов, если он ещё не сработал.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
