package rotlog

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// argDumper renders composite values passed to the leveled helpers.
var argDumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// FormatEvent renders an event as a single line without the trailing newline:
//
//	[2006-01-02 15:04:05.000] [LEVEL] [file.go:42] [000000000000001A] message
func FormatEvent(ev *Event) string {
	return string(AppendEvent(make([]byte, 0, 96+len(ev.Message)), ev))
}

// AppendEvent appends the formatted line for ev to buf and returns the extended buffer.
func AppendEvent(buf []byte, ev *Event) []byte {
	buf = append(buf, '[')
	buf = ev.Time.AppendFormat(buf, lineTimestampLayout)
	buf = append(buf, "] ["...)
	buf = append(buf, ev.Severity.String()...)
	buf = append(buf, "] ["...)
	buf = append(buf, ev.File...)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(ev.Line), 10)
	buf = append(buf, "] ["...)
	buf = appendHexID(buf, ev.GoroutineID)
	buf = append(buf, "] "...)
	buf = append(buf, ev.Message...)
	return buf
}

// appendHexID writes id as 16 uppercase hex digits, zero padded
func appendHexID(buf []byte, id uint64) []byte {
	const digits = "0123456789ABCDEF"
	var tmp [16]byte
	for i := len(tmp) - 1; i >= 0; i-- {
		tmp[i] = digits[id&0xF]
		id >>= 4
	}
	return append(buf, tmp[:]...)
}

// formatArgs joins args with single spaces into a message.
func formatArgs(args []any) string {
	var buf []byte
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, arg)
	}
	return string(buf)
}

// appendValue converts a value to its text form.
// Types without a natural text form fall back to go-spew.
func appendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, lineTimestampLayout)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		return hex.AppendEncode(buf, val)
	default:
		// Single-line form that follows pointers, unlike fmt
		return append(buf, argDumper.Sprintf("%+v", val)...)
	}
}
