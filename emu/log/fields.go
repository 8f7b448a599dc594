package log

import (
	"fmt"
	"strconv"
)

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindInt
	kindHex32
	kindBool
	kindError
	kindStringer
)

// ZField is a key/value pair attached to an EntryZ. The value is only
// formatted when the entry is emitted.
type ZField struct {
	Key string

	kind fieldKind
	str  string
	num  int64
	obj  any // error or fmt.Stringer
}

// Value formats the field value.
func (f *ZField) Value() string {
	switch f.kind {
	case kindString:
		return f.str
	case kindInt:
		return strconv.FormatInt(f.num, 10)
	case kindHex32:
		return fmt.Sprintf("%08x", uint32(f.num))
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindError:
		if f.obj == nil {
			return "<nil>"
		}
		return f.obj.(error).Error()
	case kindStringer:
		return f.obj.(fmt.Stringer).String()
	}
	return ""
}
