package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Inspect renders v as human-readable text for diagnostics and the
// inspector CLI. Function, thunk, and opaque payloads render as
// placeholders; containers render recursively.
func (v Value) Inspect() string {
	switch v.Kind() {
	case KindUndefined:
		return "undefined"
	case KindInt:
		return strconv.FormatInt(int64(v.c.data.(int32)), 10)
	case KindFloat:
		return strconv.FormatFloat(v.c.data.(float64), 'g', -1, 64)
	case KindBool:
		if v.c.data.(bool) {
			return "true"
		}
		return "false"
	case KindString:
		return strconv.Quote(v.c.data.(string))
	case KindArray:
		a := v.c.data.(*Array)
		var b strings.Builder
		b.WriteByte('[')
		for i := 0; i < a.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.slot(i).Inspect())
		}
		b.WriteByte(']')
		return b.String()
	case KindDict:
		d := v.c.data.(*Dict)
		var b strings.Builder
		b.WriteByte('{')
		for i := range d.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.entries[i].key)
			b.WriteString(": ")
			b.WriteString(d.entries[i].val.Inspect())
		}
		b.WriteByte('}')
		return b.String()
	case KindFn:
		return "<fn>"
	case KindEffFn:
		return "<effect>"
	default:
		return fmt.Sprintf("<opaque %T>", v.c.data)
	}
}
