// File: internal/browser/context_test.go
package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestCombineContextCancelsWhenEitherParentDoes(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("first parent", func(t *testing.T) {
		ctx1, cancel1 := context.WithCancel(context.Background())
		combined, cancel := CombineContext(ctx1, context.Background())
		defer cancel()

		cancel1()
		select {
		case <-combined.Done():
		case <-time.After(time.Second):
			t.Fatal("combined context not canceled with first parent")
		}
	})

	t.Run("second parent", func(t *testing.T) {
		ctx2, cancel2 := context.WithCancel(context.Background())
		combined, cancel := CombineContext(context.Background(), ctx2)
		defer cancel()

		cancel2()
		select {
		case <-combined.Done():
		case <-time.After(time.Second):
			t.Fatal("combined context not canceled with second parent")
		}
	})
}

func TestCombineContextInheritsValuesFromFirstParent(t *testing.T) {
	defer goleak.VerifyNone(t)

	type key struct{}
	ctx1 := context.WithValue(context.Background(), key{}, "target-info")
	ctx2 := context.WithValue(context.Background(), key{}, "caller-info")

	combined, cancel := CombineContext(ctx1, ctx2)
	defer cancel()

	assert.Equal(t, "target-info", combined.Value(key{}))
	cancel()
	<-combined.Done()
}
