package cache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Cache хранит закодированные ответы инструментов
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Key строит ключ кэша по имени инструмента и канонизированным параметрам
func Key(tool string, canonicalParams []byte) string {
	d := xxhash.New()
	_, _ = d.WriteString(tool)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(canonicalParams)
	return "amortization:" + tool + ":" + strconv.FormatUint(d.Sum64(), 16)
}
