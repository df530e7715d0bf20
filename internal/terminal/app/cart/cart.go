// Package cart агрегирует товары продажи: количество по товару,
// ограничение остатком, итоги и уведомления подписчиков.
package cart

import (
	"maps"
	"slices"
	"sync"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/services"
)

// Cart - корзина продавца. Безопасна для конкурентного использования.
type Cart struct {
	mu    sync.Mutex
	lines []entities.CartLine
	index map[string]int

	subMu       sync.Mutex
	subscribers map[int]func(entities.CartSnapshot)
	nextID      int
}

var _ services.CartService = (*Cart)(nil)

// New создает пустую корзину.
func New() *Cart {
	return &Cart{
		index:       make(map[string]int),
		subscribers: make(map[int]func(entities.CartSnapshot)),
	}
}

// AddProduct увеличивает количество товара на quantity, не превышая остаток p.Stock.
// Строка сохраняет товар, с которым была создана.
// Неположительное quantity игнорируется. Если после ограничения остатком
// количество не положительно, строки товара в корзине нет.
func (c *Cart) AddProduct(p entities.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	c.mu.Lock()
	changed := false
	if i, ok := c.index[p.ID]; ok {
		current := c.lines[i].Quantity
		next := clamp(current+quantity, p.Stock)
		if next <= 0 {
			c.removeAt(i)
			changed = true
		} else {
			changed = next != current
			c.lines[i].Quantity = next
		}
	} else if next := clamp(quantity, p.Stock); next > 0 {
		c.index[p.ID] = len(c.lines)
		c.lines = append(c.lines, entities.CartLine{Product: p, Quantity: next})
		changed = true
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.publish(snapshot)
	}
}

// RemoveProduct уменьшает количество товара на quantity.
// Строка удаляется, когда количество становится неположительным.
// Неположительное quantity и отсутствующий товар игнорируются.
func (c *Cart) RemoveProduct(p entities.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	c.mu.Lock()
	i, ok := c.index[p.ID]
	if !ok {
		c.mu.Unlock()
		return
	}
	if next := c.lines[i].Quantity - quantity; next <= 0 {
		c.removeAt(i)
	} else {
		c.lines[i].Quantity = next
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// ClearProduct удаляет строку товара независимо от количества.
func (c *Cart) ClearProduct(p entities.Product) {
	c.mu.Lock()
	i, ok := c.index[p.ID]
	if !ok {
		c.mu.Unlock()
		return
	}
	c.removeAt(i)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// Subtract списывает проданные строки одной операцией. Строки и количества,
// добавленные после снимка, остаются в корзине.
func (c *Cart) Subtract(sold []entities.CartLine) {
	c.mu.Lock()
	changed := false
	for _, line := range sold {
		if line.Quantity <= 0 {
			continue
		}
		i, ok := c.index[line.Product.ID]
		if !ok {
			continue
		}
		if next := c.lines[i].Quantity - line.Quantity; next <= 0 {
			c.removeAt(i)
		} else {
			c.lines[i].Quantity = next
		}
		changed = true
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.publish(snapshot)
	}
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.mu.Lock()
	if len(c.lines) == 0 {
		c.mu.Unlock()
		return
	}
	c.lines = nil
	c.index = make(map[string]int)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snapshot)
}

// Total возвращает сумму цена × количество по всем строкам.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.lines)
}

// ItemCount возвращает суммарное количество единиц товара.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return itemCount(c.lines)
}

// Products возвращает копию строк в порядке добавления.
func (c *Cart) Products() []entities.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entities.CartLine{}, c.lines...)
}

// Snapshot возвращает согласованный снимок строк и итогов.
func (c *Cart) Snapshot() entities.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe регистрирует наблюдателя изменений корзины.
// Наблюдатель вызывается после каждого изменения, вне блокировки корзины.
func (c *Cart) Subscribe(fn func(entities.CartSnapshot)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subscribers, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Cart) publish(snapshot entities.CartSnapshot) {
	c.subMu.Lock()
	fns := make([]func(entities.CartSnapshot), 0, len(c.subscribers))
	for _, id := range slices.Sorted(maps.Keys(c.subscribers)) {
		fns = append(fns, c.subscribers[id])
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// removeAt вызывается под c.mu.
func (c *Cart) removeAt(i int) {
	delete(c.index, c.lines[i].Product.ID)
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Product.ID] = j
	}
}

func (c *Cart) snapshotLocked() entities.CartSnapshot {
	lines := append([]entities.CartLine{}, c.lines...)
	return entities.CartSnapshot{
		Lines:     lines,
		Total:     total(lines),
		ItemCount: itemCount(lines),
	}
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}

func total(lines []entities.CartLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal()
	}
	return sum
}

func itemCount(lines []entities.CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
