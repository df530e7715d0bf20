// Package ui хранит состояние интерфейса терминала: текущий маршрут,
// уведомления, тему и правила доступа к разделам.
package ui

import (
	"maps"
	"slices"
	"sync"
	"time"

	"posterminal/internal/terminal/domain/entities"
	ports "posterminal/internal/terminal/ports/services"
)

// RouteListener получает новый маршрут после перехода.
type RouteListener func(route string)

// Navigator хранит текущий маршрут и отложенный переход.
type Navigator struct {
	mu        sync.Mutex
	current   string
	pending   *time.Timer
	listeners map[int]RouteListener
	nextID    int
}

var _ ports.Navigator = (*Navigator)(nil)

// NewNavigator создает навигатор, начинающий с корневого маршрута.
func NewNavigator() *Navigator {
	return &Navigator{
		current:   entities.RouteRoot,
		listeners: make(map[int]RouteListener),
	}
}

// Navigate немедленно переходит на route и отменяет отложенный переход.
func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	n.stopPendingLocked()
	listeners := n.setLocked(route)
	n.mu.Unlock()

	notify(listeners, route)
}

// NavigateAfter переходит на route через delay. Новый переход
// (немедленный или отложенный) отменяет предыдущий отложенный.
func (n *Navigator) NavigateAfter(route string, delay time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopPendingLocked()
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		n.mu.Lock()
		if n.pending != timer {
			n.mu.Unlock()
			return
		}
		n.pending = nil
		listeners := n.setLocked(route)
		n.mu.Unlock()

		notify(listeners, route)
	})
	n.pending = timer
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Pending сообщает, запланирован ли отложенный переход.
func (n *Navigator) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending != nil
}

// Subscribe регистрирует слушателя переходов и возвращает функцию отписки.
func (n *Navigator) Subscribe(fn RouteListener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.listeners[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
	}
}

func (n *Navigator) stopPendingLocked() {
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
}

func (n *Navigator) setLocked(route string) []RouteListener {
	n.current = route
	listeners := make([]RouteListener, 0, len(n.listeners))
	for _, id := range slices.Sorted(maps.Keys(n.listeners)) {
		listeners = append(listeners, n.listeners[id])
	}
	return listeners
}

func notify(listeners []RouteListener, route string) {
	for _, fn := range listeners {
		fn(route)
	}
}
