package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Closer обеспечивает потокобезопасное закрытие ресурсов приложения.
// Ресурсы закрываются в порядке LIFO: последний добавленный закрывается первым.
type Closer struct {
	funcs []Func
	mu    sync.Mutex
	once  sync.Once
}

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// New создает новый экземпляр Closer.
func New() *Closer {
	return &Closer{}
}

// Add добавляет функцию в список закрытия
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close последовательно запускает закрытие всех зарегистрированных функций (LIFO).
// Если контекст отменяется до завершения, оставшиеся функции не запускаются.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var errs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			select {
			case <-ctx.Done():
				errs = append(errs, fmt.Sprintf("[!] shutdown interrupted: %v", ctx.Err()))
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
				return
			default:
			}

			done := make(chan error, 1)
			go func(f Func) {
				done <- f(ctx)
			}(funcs[i])

			select {
			case ferr := <-done:
				if ferr != nil {
					errs = append(errs, fmt.Sprintf("[!] %v", ferr))
				}
			case <-ctx.Done():
				errs = append(errs, fmt.Sprintf("[!] shutdown interrupted after %d/%d funcs: %v", len(funcs)-1-i, len(funcs), ctx.Err()))
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
				return
			}
		}

		if len(errs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
		}
	})

	return err
}
