package flow

import "context"

// Map преобразует каждое значение из in с помощью fn.
// Выходной канал сохраняет семантику вытеснения и закрывается вместе с in или при отмене ctx.
func Map[A, B any](ctx context.Context, in <-chan A, fn func(A) B) <-chan B {
	out := make(chan B, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case a, ok := <-in:
				if !ok {
					return
				}
				replace(out, fn(a))
			}
		}
	}()
	return out
}

// replace работает как offer для канала с единственным отправителем без мьютекса.
func replace[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
