package memory_test

import (
	"testing"

	"github.com/openqs/heom/internal/adapters/memory"
	"github.com/openqs/heom/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunResultStoreContract(t, memory.NewStore())
}
