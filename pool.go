package wordex

import (
	"context"
	"strings"

	pool "github.com/jolestar/go-commons-pool"
)

// scratch holds buffers needed while extracting the values of a single
// match. Matches are frequent and short-lived, so scratch space is pooled.
type scratch struct {
	buf    []byte
	pooled bool // borrowed from the pool, not created as a fallback
}

type scratchPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalScratchPool *scratchPool

func init() {
	globalScratchPool = &scratchPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &scratch{buf: make([]byte, 0, 64), pooled: true}, nil
		})
	globalScratchPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalScratchPool.opool = pool.NewObjectPool(globalScratchPool.ctx, factory, config)
}

// borrowScratch gets scratch space from the pool.
func borrowScratch() *scratch {
	o, err := globalScratchPool.opool.BorrowObject(globalScratchPool.ctx)
	if err != nil {
		CT().Errorf("cannot borrow scratch space: %v", err)
		return &scratch{}
	}
	return o.(*scratch)
}

// release clears the scratch space and puts it back into the pool.
// Scratch space not borrowed from the pool is left to the garbage collector.
func (s *scratch) release() {
	s.buf = s.buf[:0]
	if !s.pooled {
		return
	}
	if err := globalScratchPool.opool.ReturnObject(globalScratchPool.ctx, s); err != nil {
		CT().Errorf("cannot return scratch space: %v", err)
	}
}

// unwrap removes surrounding quotes from value and replaces the escape
// sequences \", \' and `\ ` by the escaped character. Other backslash pairs
// are kept.
func (s *scratch) unwrap(value string) string {
	if n := len(value); n >= 2 {
		if q := value[0]; (q == '"' || q == '\'') && value[n-1] == q {
			value = value[1 : n-1]
		}
	}
	if strings.IndexByte(value, '\\') < 0 {
		return value
	}
	s.buf = s.buf[:0]
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) {
			i++
			switch next := value[i]; next {
			case '"', '\'', ' ':
				s.buf = append(s.buf, next)
			default:
				s.buf = append(s.buf, c, next)
			}
			continue
		}
		s.buf = append(s.buf, c)
	}
	return string(s.buf)
}
