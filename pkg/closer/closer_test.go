package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Closer_LIFO(t *testing.T) {
	// given
	c := New()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		c.Add(func(_ context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	// when
	err := c.Close(context.Background())

	// then: последний добавленный закрывается первым
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, order)
}

func Test_Closer_CollectsErrors(t *testing.T) {
	c := New()
	c.Add(func(_ context.Context) error { return nil })
	c.Add(func(_ context.Context) error { return errors.New("redis close failed") })

	err := c.Close(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis close failed")
}

func Test_Closer_CloseOnce(t *testing.T) {
	c := New()
	calls := 0
	c.Add(func(_ context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))

	assert.Equal(t, 1, calls)
}

func Test_Closer_InterruptedByContext(t *testing.T) {
	// given: первая функция (закрывается последней) не должна успеть
	c := New()
	var slowCalled bool
	c.Add(func(_ context.Context) error {
		slowCalled = true
		return nil
	})
	c.Add(func(_ context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// when
	err := c.Close(ctx)

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted")
	assert.False(t, slowCalled)
}
